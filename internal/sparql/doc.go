// Package sparql parses the supported SPARQL CONSTRUCT subset.
//
// The grammar covers exactly what the translator can represent: a
// PREFIX/BASE prologue, a flat CONSTRUCT template, and a WHERE clause
// restricted to a basic graph pattern (a conjunction of triple patterns).
// Property-list shorthand (';' and ','), the 'a' keyword, prefixed names,
// typed and language-tagged literals, and labelled or anonymous blank
// nodes are supported inside triple blocks.
//
// Anything else the SPARQL grammar allows - OPTIONAL, FILTER, UNION,
// MINUS, BIND, GRAPH, VALUES, SERVICE, subqueries, property paths, FROM
// clauses - is recognized and rejected with an UnsupportedError so the
// caller can distinguish "not SPARQL" from "SPARQL we refuse to
// mistranslate".
package sparql
