package sparql

import "fmt"

// ParseError reports input that is not a syntactically valid CONSTRUCT
// query in the supported grammar.
type ParseError struct {
	// Pos is the byte offset where parsing failed.
	Pos int

	// Message is a human-readable description.
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Message)
}

// UnsupportedError reports a construct that is valid SPARQL but outside
// the translatable subset. Kept distinct from ParseError so callers can
// surface "unsupported query shape" instead of "syntax error".
type UnsupportedError struct {
	// Pos is the byte offset of the construct.
	Pos int

	// Construct names the offending construct, e.g. "OPTIONAL".
	Construct string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported construct at offset %d: %s", e.Pos, e.Construct)
}

func (p *parser) syntaxErrorf(format string, args ...any) error {
	return &ParseError{Pos: p.pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) unsupported(construct string) error {
	return &UnsupportedError{Pos: p.pos, Construct: construct}
}
