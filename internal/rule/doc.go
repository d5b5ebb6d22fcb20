// Package rule defines the logical rule emitted by the translator and its
// wire encoding.
//
// A Rule is a flat implication: if every pattern in IfAll matches, the
// patterns in Then hold. Pattern positions are Terms - either Bound (a
// concrete IRI or literal) or Unbound (an identifier matched by the rule
// engine at evaluation time).
//
// Term and Node are sealed interfaces - only types in this package
// implement them. The marker method pattern keeps term kinds a closed
// enumeration, so serialization and validation can switch exhaustively.
//
// The JSON encoding is externally tagged, matching what the consuming
// rule engine expects:
//
//	{"Unbound": "s"}
//	{"Bound": {"Iri": "http://example.com/x"}}
//	{"Bound": {"Literal": {"value": "v", "datatype": "...", "language": "en"}}}
//
// The language key is omitted when the literal has no language tag.
package rule
