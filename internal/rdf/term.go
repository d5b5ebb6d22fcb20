package rdf

import "fmt"

// Well-known datatype and vocabulary IRIs used when defaulting literal
// datatypes per the SPARQL grammar.
const (
	XSDString  = "http://www.w3.org/2001/XMLSchema#string"
	XSDInteger = "http://www.w3.org/2001/XMLSchema#integer"
	XSDDecimal = "http://www.w3.org/2001/XMLSchema#decimal"
	XSDDouble  = "http://www.w3.org/2001/XMLSchema#double"
	XSDBoolean = "http://www.w3.org/2001/XMLSchema#boolean"
	LangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
	RDFType    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
)

// Term is a syntactic RDF term as written in a query.
//
// This is a sealed interface - only IRI, Literal, Variable, and BlankNode
// implement it.
type Term interface {
	term() // Marker method - seals interface to this package
	String() string
}

// IRI is an absolute IRI term.
type IRI struct {
	Value string
}

func (IRI) term() {}

// String renders the IRI in N-Triples style.
func (i IRI) String() string { return "<" + i.Value + ">" }

// Literal is an RDF literal with its lexical form, datatype IRI, and
// optional language tag. Language is non-empty only when Datatype is
// rdf:langString.
type Literal struct {
	Value    string
	Datatype string
	Language string
}

func (Literal) term() {}

// String renders the literal in N-Triples style.
func (l Literal) String() string {
	if l.Language != "" {
		return fmt.Sprintf("%q@%s", l.Value, l.Language)
	}
	if l.Datatype != "" && l.Datatype != XSDString {
		return fmt.Sprintf("%q^^<%s>", l.Value, l.Datatype)
	}
	return fmt.Sprintf("%q", l.Value)
}

// Variable is a named query variable (?name or $name).
type Variable struct {
	Name string
}

func (Variable) term() {}

func (v Variable) String() string { return "?" + v.Name }

// BlankNode is a blank node with its query-scoped label. Anonymous blank
// nodes carry a parser-generated label.
type BlankNode struct {
	Label string
}

func (BlankNode) term() {}

func (b BlankNode) String() string { return "_:" + b.Label }

// NewStringLiteral creates a plain quoted literal. Plain literals default
// to xsd:string.
func NewStringLiteral(value string) Literal {
	return Literal{Value: value, Datatype: XSDString}
}

// NewLangLiteral creates a language-tagged literal. Language-tagged
// literals always carry rdf:langString.
func NewLangLiteral(value, lang string) Literal {
	return Literal{Value: value, Datatype: LangString, Language: lang}
}

// NewTypedLiteral creates a literal with an explicit datatype IRI.
func NewTypedLiteral(value, datatype string) Literal {
	return Literal{Value: value, Datatype: datatype}
}
