package sparql

import "github.com/roach88/sparql2rule/internal/rdf"

// TriplePattern is one subject/predicate/object pattern as written in the
// query. Terms are syntactic rdf.Term values; variables and blank nodes
// are still unresolved at this stage.
type TriplePattern struct {
	Subject   rdf.Term
	Predicate rdf.Term
	Object    rdf.Term
}

// Query is a parsed CONSTRUCT query. Template holds the CONSTRUCT
// template triples and Where the basic graph pattern triples, both in
// source order.
type Query struct {
	Template []TriplePattern
	Where    []TriplePattern
}
