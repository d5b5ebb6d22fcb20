package translate

import (
	"errors"
	"fmt"

	"github.com/roach88/sparql2rule/internal/rdf"
	"github.com/roach88/sparql2rule/internal/rule"
	"github.com/roach88/sparql2rule/internal/sparql"
)

// position distinguishes the two places a term can appear: the WHERE
// pattern (antecedent) or the CONSTRUCT template (consequent). Blank node
// handling differs between them.
type position int

const (
	inAntecedent position = iota
	inConsequent
)

// TranslateText parses and translates a CONSTRUCT query in one step,
// mapping parser failures into the translation error taxonomy.
func TranslateText(query string) (*rule.Rule, error) {
	parsed, err := sparql.Parse(query)
	if err != nil {
		var unsupported *sparql.UnsupportedError
		if errors.As(err, &unsupported) {
			return nil, &Error{
				Code:    ErrCodeUnsupportedShape,
				Message: "query uses a construct outside the basic graph pattern subset",
				Subject: unsupported.Construct,
			}
		}
		return nil, &Error{
			Code:    ErrCodeSyntax,
			Message: err.Error(),
		}
	}
	return Translate(parsed)
}

// Translate converts a parsed query into a rule.
//
// WHERE triples become if_all and template triples become then, both in
// source order, resolved against one shared naming table so template
// variables refer to the same identifiers as their WHERE occurrences.
// The result is immutable once returned; the naming table does not
// outlive the call.
func Translate(q *sparql.Query) (*rule.Rule, error) {
	table := newNames()

	ifAll, err := emitPatterns(q.Where, table, inAntecedent)
	if err != nil {
		return nil, err
	}
	then, err := emitPatterns(q.Template, table, inConsequent)
	if err != nil {
		return nil, err
	}

	r := &rule.Rule{IfAll: ifAll, Then: then}

	// Safety pass: a consequent cannot introduce a value the engine has
	// no way to have matched.
	if missing := r.UnboundConsequents(); len(missing) > 0 {
		return nil, newUnboundImpliedError(missing[0])
	}
	return r, nil
}

// emitPatterns resolves each triple's three positions in source order.
func emitPatterns(triples []sparql.TriplePattern, table *names, pos position) ([]rule.TriplePattern, error) {
	patterns := make([]rule.TriplePattern, 0, len(triples))
	for _, t := range triples {
		var resolved rule.TriplePattern
		for i, term := range []rdf.Term{t.Subject, t.Predicate, t.Object} {
			rt, err := resolveTerm(term, table, pos)
			if err != nil {
				return nil, err
			}
			resolved[i] = rt
		}
		patterns = append(patterns, resolved)
	}
	return patterns, nil
}

// resolveTerm maps one syntactic term to a rule term, interning variable
// names and blank node labels in the naming table.
//
// A blank node in the WHERE pattern denotes an existentially unbound
// value scoped to the query, so promoting it to a fresh Unbound loses
// nothing the rule engine can observe. A blank node in the template would
// wrongly claim the value is supplied by matching, so it is rejected.
func resolveTerm(term rdf.Term, table *names, pos position) (rule.Term, error) {
	switch t := term.(type) {
	case rdf.IRI:
		return rule.Bound{Node: rule.Iri(t.Value)}, nil
	case rdf.Literal:
		return rule.Bound{Node: rule.Literal{
			Value:    t.Value,
			Datatype: t.Datatype,
			Language: t.Language,
		}}, nil
	case rdf.Variable:
		return rule.Unbound(table.variable(t.Name)), nil
	case rdf.BlankNode:
		if pos == inConsequent {
			return nil, newBlankNodeInOutputError(t.Label)
		}
		return rule.Unbound(table.blankNode(t.Label)), nil
	default:
		return nil, fmt.Errorf("unknown term kind %T", term)
	}
}
