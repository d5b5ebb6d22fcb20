package translate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sparql2rule/internal/rule"
)

func iri(v string) rule.Term { return rule.Bound{Node: rule.Iri(v)} }

func unbound(v string) rule.Term { return rule.Unbound(v) }

func TestTranslateText_Passthrough(t *testing.T) {
	r, err := TranslateText("CONSTRUCT { ?s ?p ?o . } WHERE { ?s ?p ?o . }")
	require.NoError(t, err)

	want := []rule.TriplePattern{{unbound("s"), unbound("p"), unbound("o")}}
	assert.Equal(t, want, r.IfAll)
	assert.Equal(t, want, r.Then)
}

func TestTranslateText_ReifiedClaim(t *testing.T) {
	r, err := TranslateText(`
		PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
		CONSTRUCT { ?s ?p ?o . } WHERE {
			?a rdf:subject ?s ;
			   rdf:predicate ?p ;
			   rdf:object ?o .
		}
	`)
	require.NoError(t, err)

	rdfNS := "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	assert.Equal(t, []rule.TriplePattern{
		{unbound("a"), iri(rdfNS + "subject"), unbound("s")},
		{unbound("a"), iri(rdfNS + "predicate"), unbound("p")},
		{unbound("a"), iri(rdfNS + "object"), unbound("o")},
	}, r.IfAll)
	assert.Equal(t, []rule.TriplePattern{
		{unbound("s"), unbound("p"), unbound("o")},
	}, r.Then)
}

func TestTranslateText_BlankNodePromotion(t *testing.T) {
	r, err := TranslateText(`
		PREFIX ex: <http://example.com/>
		CONSTRUCT { } WHERE {
			[] ex:p ?x .
			_:a ex:q ?x ;
			    ex:r _:a .
		}
	`)
	require.NoError(t, err)

	// Identical labels intern to one identifier; anonymous nodes and
	// labelled nodes never collide with named variables.
	require.Len(t, r.IfAll, 3)
	assert.Equal(t, unbound("b:e26e76e98751c600"), r.IfAll[0][0])
	assert.Equal(t, unbound("b:708303ee05d09a5a"), r.IfAll[1][0])
	assert.Equal(t, r.IfAll[1][0], r.IfAll[2][0])
	assert.Equal(t, r.IfAll[1][0], r.IfAll[2][2])
	assert.Empty(t, r.Then)
}

func TestTranslateText_DistinctAnonymousNodes(t *testing.T) {
	r, err := TranslateText(`
		PREFIX ex: <http://example.com/>
		CONSTRUCT { } WHERE {
			[] ex:p ?x .
			[] ex:p ?y .
		}
	`)
	require.NoError(t, err)

	require.Len(t, r.IfAll, 2)
	assert.NotEqual(t, r.IfAll[0][0], r.IfAll[1][0])
}

func TestTranslateText_BlankNodeInOutput(t *testing.T) {
	_, err := TranslateText(`
		PREFIX ex: <http://example.com/>
		CONSTRUCT { _:new ex:p ?x . } WHERE { ?x ex:q ?y . }
	`)
	assert.Equal(t, ErrCodeBlankNodeInOutput, CodeOf(err))

	var te *Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "_:new", te.Subject)

	// Anonymous form is rejected the same way.
	_, err = TranslateText(`
		PREFIX ex: <http://example.com/>
		CONSTRUCT { [] ex:p ?x . } WHERE { ?x ex:q ?y . }
	`)
	assert.Equal(t, ErrCodeBlankNodeInOutput, CodeOf(err))
}

func TestTranslateText_UnboundImplied(t *testing.T) {
	_, err := TranslateText("CONSTRUCT { ?a ?b ?c . } WHERE { }")
	assert.Equal(t, ErrCodeUnboundImplied, CodeOf(err))

	var te *Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "a", te.Subject)
}

func TestTranslateText_SyntaxError(t *testing.T) {
	for _, query := range []string{
		"SELECT ?s WHERE { ?s ?p ?o . }",
		"CONSTRUCT { ?s ?p",
		"",
	} {
		_, err := TranslateText(query)
		assert.Equal(t, ErrCodeSyntax, CodeOf(err), "query: %q", query)
	}
}

func TestTranslateText_UnsupportedShape(t *testing.T) {
	_, err := TranslateText("CONSTRUCT { } WHERE { ?s ?p ?o . OPTIONAL { ?s ?q ?r . } }")
	assert.Equal(t, ErrCodeUnsupportedShape, CodeOf(err))

	var te *Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "OPTIONAL", te.Subject)
}

func TestTranslateText_LiteralFidelity(t *testing.T) {
	r, err := TranslateText(`
		PREFIX ex: <http://example.com/>
		CONSTRUCT { } WHERE {
			?s ex:name "Alice" .
			?s ex:greeting "hei"@no .
			?s ex:age 42 .
		}
	`)
	require.NoError(t, err)

	require.Len(t, r.IfAll, 3)
	assert.Equal(t, rule.Bound{Node: rule.Literal{
		Value:    "Alice",
		Datatype: "http://www.w3.org/2001/XMLSchema#string",
	}}, r.IfAll[0][2])
	assert.Equal(t, rule.Bound{Node: rule.Literal{
		Value:    "hei",
		Datatype: "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString",
		Language: "no",
	}}, r.IfAll[1][2])
	assert.Equal(t, rule.Bound{Node: rule.Literal{
		Value:    "42",
		Datatype: "http://www.w3.org/2001/XMLSchema#integer",
	}}, r.IfAll[2][2])
}

func TestTranslateText_Deterministic(t *testing.T) {
	query := `
		PREFIX ex: <http://example.com/>
		CONSTRUCT { ?x ex:out ?y . } WHERE {
			[] ex:p ?x .
			_:b ex:q ?y .
		}
	`
	first, err := TranslateText(query)
	require.NoError(t, err)
	second, err := TranslateText(query)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCodeOf_NonTranslationError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}
