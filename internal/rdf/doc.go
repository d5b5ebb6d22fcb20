// Package rdf models the syntactic RDF terms that appear in a parsed
// SPARQL query: IRIs, literals, named variables, and blank nodes.
//
// Term is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the parser and translator.
//
// Blank node labels are scoped to the query text: two occurrences of the
// same label denote the same node within one query and nothing outside it.
package rdf
