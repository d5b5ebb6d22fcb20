package rule

// Node is a concrete RDF value carried by a Bound term.
//
// This is a sealed interface - only Iri and Literal implement it. Blank
// nodes have no Node variant: the translator either promotes them to
// Unbound or rejects the query, so a rule never contains one.
type Node interface {
	node() // Marker method - seals interface to this package
}

// Iri is an absolute IRI value.
type Iri string

func (Iri) node() {}

// Literal is a concrete literal value with full round-trip fidelity:
// lexical form, datatype IRI, and optional language tag.
type Literal struct {
	Value    string `json:"value"`
	Datatype string `json:"datatype"`
	Language string `json:"language,omitempty"`
}

func (Literal) node() {}

// Term is one position of a triple pattern.
//
// This is a sealed interface - only Bound and Unbound implement it.
type Term interface {
	term() // Marker method - seals interface to this package
}

// Bound is a concrete term that must match exactly.
type Bound struct {
	Node Node
}

func (Bound) term() {}

// Unbound is a placeholder matched by the rule engine. Identifiers that
// denote the same logical variable are textually identical everywhere in
// one rule; distinct variables never share an identifier.
type Unbound string

func (Unbound) term() {}

// TriplePattern is an ordered subject/predicate/object pattern.
type TriplePattern [3]Term

// Rule is the translated implication. IfAll preserves the WHERE pattern
// order and Then the CONSTRUCT template order.
type Rule struct {
	IfAll []TriplePattern `json:"if_all"`
	Then  []TriplePattern `json:"then"`
}

// UnboundConsequents returns Unbound identifiers used in Then that never
// occur in IfAll, in first-use order. A non-empty result means the rule
// would imply values the engine has no way to have matched.
func (r *Rule) UnboundConsequents() []string {
	known := make(map[Unbound]bool)
	for _, pattern := range r.IfAll {
		for _, term := range pattern {
			if u, ok := term.(Unbound); ok {
				known[u] = true
			}
		}
	}

	var missing []string
	seen := make(map[Unbound]bool)
	for _, pattern := range r.Then {
		for _, term := range pattern {
			u, ok := term.(Unbound)
			if !ok || known[u] || seen[u] {
				continue
			}
			seen[u] = true
			missing = append(missing, string(u))
		}
	}
	return missing
}
