package sparql

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/roach88/sparql2rule/internal/rdf"
)

// parser is a recursive-descent parser over the raw query text. The
// prefix table and the anonymous blank node counter live for one parse
// and are discarded with it.
type parser struct {
	input    string
	pos      int
	length   int
	prefixes map[string]string
	baseIRI  string
	anonSeq  int
}

// Keywords that open constructs outside the supported subset. Checked at
// every statement position inside a triple block.
var unsupportedKeywords = []string{
	"OPTIONAL", "FILTER", "UNION", "MINUS", "BIND", "GRAPH",
	"VALUES", "SERVICE", "SELECT", "EXISTS",
}

// Parse parses a single CONSTRUCT query.
//
// Returns *ParseError for malformed input and *UnsupportedError for valid
// SPARQL outside the translatable subset.
func Parse(input string) (*Query, error) {
	p := &parser{
		input:    input,
		length:   len(input),
		prefixes: make(map[string]string),
	}
	return p.parseQuery()
}

func (p *parser) parseQuery() (*Query, error) {
	if err := p.parsePrologue(); err != nil {
		return nil, err
	}

	if p.matchKeyword("SELECT") || p.matchKeyword("ASK") || p.matchKeyword("DESCRIBE") {
		return nil, p.syntaxErrorf("only CONSTRUCT queries can be translated")
	}
	if !p.matchKeyword("CONSTRUCT") {
		return nil, p.syntaxErrorf("expected CONSTRUCT query")
	}

	query := &Query{}

	// CONSTRUCT WHERE { pattern } is shorthand for using the WHERE
	// pattern as the template.
	if p.matchKeyword("WHERE") {
		where, err := p.parseTripleBlock()
		if err != nil {
			return nil, err
		}
		query.Where = where
		query.Template = where
		return query, p.parseEpilogue()
	}

	template, err := p.parseTripleBlock()
	if err != nil {
		return nil, err
	}
	query.Template = template

	if p.matchKeyword("FROM") {
		return nil, p.unsupported("FROM")
	}
	if !p.matchKeyword("WHERE") {
		return nil, p.syntaxErrorf("expected WHERE clause")
	}

	where, err := p.parseTripleBlock()
	if err != nil {
		return nil, err
	}
	query.Where = where

	return query, p.parseEpilogue()
}

// parsePrologue consumes PREFIX and BASE declarations.
func (p *parser) parsePrologue() error {
	for {
		if p.matchKeyword("PREFIX") {
			if err := p.parsePrefixDecl(); err != nil {
				return err
			}
			continue
		}
		if p.matchKeyword("BASE") {
			p.skipWhitespace()
			iri, err := p.parseIRIRef()
			if err != nil {
				return err
			}
			p.baseIRI = iri
			continue
		}
		return nil
	}
}

func (p *parser) parsePrefixDecl() error {
	p.skipWhitespace()
	start := p.pos
	name := p.readWhile(isNameChar)
	if p.peek() != ':' {
		p.pos = start
		return p.syntaxErrorf("expected ':' in PREFIX declaration")
	}
	p.advance()
	p.skipWhitespace()
	iri, err := p.parseIRIRef()
	if err != nil {
		return err
	}
	resolved, err := p.resolveIRI(iri)
	if err != nil {
		return err
	}
	p.prefixes[name] = resolved
	return nil
}

// parseEpilogue rejects anything after the WHERE block. Solution
// modifiers are valid SPARQL, so they surface as unsupported rather than
// as syntax errors.
func (p *parser) parseEpilogue() error {
	p.skipWhitespace()
	if p.pos >= p.length {
		return nil
	}
	for _, kw := range []string{"ORDER", "LIMIT", "OFFSET", "GROUP", "HAVING"} {
		if p.matchKeyword(kw) {
			return p.unsupported(kw + " solution modifier")
		}
	}
	return p.syntaxErrorf("unexpected input after WHERE clause")
}

// parseTripleBlock parses { triples } with '.' separators and the ';'/','
// property-list shorthand. Used for both the CONSTRUCT template and the
// WHERE basic graph pattern.
func (p *parser) parseTripleBlock() ([]TriplePattern, error) {
	p.skipWhitespace()
	if p.peek() != '{' {
		return nil, p.syntaxErrorf("expected '{'")
	}
	p.advance()

	triples := []TriplePattern{}
	for {
		p.skipWhitespace()
		if p.pos >= p.length {
			return nil, p.syntaxErrorf("unexpected end of input in triple block")
		}
		if p.peek() == '}' {
			p.advance()
			return triples, nil
		}
		if p.peek() == '{' {
			return nil, p.unsupported("group graph pattern")
		}
		for _, kw := range unsupportedKeywords {
			if p.peekKeyword(kw) {
				return nil, p.unsupported(kw)
			}
		}

		parsed, err := p.parseTriples()
		if err != nil {
			return nil, err
		}
		triples = append(triples, parsed...)

		p.skipWhitespace()
		if p.peekKeyword("UNION") {
			return nil, p.unsupported("UNION")
		}
		if p.peek() == '.' {
			p.advance()
		}
	}
}

// parseTriples parses one subject with its predicate-object list:
//
//	?s ?p1 ?o1 ; ?p2 ?o2 .   (';' repeats the subject)
//	?s ?p ?o1 , ?o2 .        (',' repeats subject and predicate)
func (p *parser) parseTriples() ([]TriplePattern, error) {
	subject, err := p.parseTerm()
	if err != nil {
		return nil, fmt.Errorf("parsing subject: %w", err)
	}
	if _, ok := subject.(rdf.Literal); ok {
		return nil, p.syntaxErrorf("literal subject is not allowed")
	}

	var triples []TriplePattern
	for {
		predicate, err := p.parseVerb()
		if err != nil {
			return nil, err
		}

		for {
			p.skipWhitespace()
			object, err := p.parseTerm()
			if err != nil {
				return nil, fmt.Errorf("parsing object: %w", err)
			}
			triples = append(triples, TriplePattern{
				Subject:   subject,
				Predicate: predicate,
				Object:    object,
			})

			p.skipWhitespace()
			if p.peek() == ',' {
				p.advance()
				continue
			}
			break
		}

		if p.peek() == ';' {
			p.advance()
			p.skipWhitespace()
			// Trailing ';' before '.' or '}' is allowed.
			if p.peek() == '.' || p.peek() == '}' {
				return triples, nil
			}
			continue
		}
		return triples, nil
	}
}

// parseVerb parses a predicate: the 'a' keyword, a variable, or an IRI.
// Property path syntax is recognized and rejected.
func (p *parser) parseVerb() (rdf.Term, error) {
	p.skipWhitespace()

	switch p.peek() {
	case '^', '(', '!':
		return nil, p.unsupported("property path")
	}

	if p.peek() == 'a' && !isNameChar(p.peekAt(1)) && p.peekAt(1) != ':' {
		p.advance()
		return rdf.IRI{Value: rdf.RDFType}, nil
	}

	term, err := p.parseTerm()
	if err != nil {
		return nil, fmt.Errorf("parsing predicate: %w", err)
	}
	switch term.(type) {
	case rdf.IRI, rdf.Variable:
	default:
		return nil, p.syntaxErrorf("predicate must be an IRI or variable")
	}

	// A path operator directly after the predicate term, or separated by
	// whitespace for the binary operators.
	switch p.peek() {
	case '+', '*', '/', '|':
		return nil, p.unsupported("property path")
	}
	mark := p.pos
	p.skipWhitespace()
	if p.peek() == '/' || p.peek() == '|' {
		return nil, p.unsupported("property path")
	}
	p.pos = mark

	return term, nil
}

// parseTerm parses one RDF term or variable.
func (p *parser) parseTerm() (rdf.Term, error) {
	p.skipWhitespace()
	ch := p.peek()

	switch {
	case ch == '?' || ch == '$':
		return p.parseVariable()
	case ch == '<':
		iri, err := p.parseIRIRef()
		if err != nil {
			return nil, err
		}
		resolved, err := p.resolveIRI(iri)
		if err != nil {
			return nil, err
		}
		return rdf.IRI{Value: resolved}, nil
	case ch == '"' || ch == '\'':
		return p.parseLiteral()
	case ch == '_':
		return p.parseBlankNodeLabel()
	case ch == '[':
		return p.parseAnonBlankNode()
	case ch == '(':
		return nil, p.unsupported("RDF collection")
	case ch >= '0' && ch <= '9' || ch == '+' || ch == '-':
		return p.parseNumericLiteral()
	}

	// Boolean keywords, unless they are the prefix of a prefixed name.
	for _, kw := range []string{"true", "false"} {
		if p.matchKeyword(kw) {
			return rdf.NewTypedLiteral(kw, rdf.XSDBoolean), nil
		}
	}

	if ch == ':' || isNameStartChar(ch) {
		return p.parsePrefixedName()
	}

	if p.pos >= p.length {
		return nil, p.syntaxErrorf("unexpected end of input")
	}
	return nil, p.syntaxErrorf("unexpected character %q", ch)
}

func (p *parser) parseVariable() (rdf.Term, error) {
	p.advance() // '?' or '$'
	name := p.readWhile(isNameChar)
	if name == "" {
		return nil, p.syntaxErrorf("empty variable name")
	}
	return rdf.Variable{Name: name}, nil
}

func (p *parser) parseIRIRef() (string, error) {
	if p.peek() != '<' {
		return "", p.syntaxErrorf("expected '<' to start IRI")
	}
	p.advance()
	iri := p.readWhile(func(ch byte) bool {
		return ch != '>' && ch != '\n' && ch != '\r'
	})
	if p.peek() != '>' {
		return "", p.syntaxErrorf("unterminated IRI")
	}
	p.advance()
	return iri, nil
}

func (p *parser) parseLiteral() (rdf.Term, error) {
	quote := p.peek()
	p.advance()

	var value strings.Builder
	for {
		if p.pos >= p.length {
			return nil, p.syntaxErrorf("unterminated string literal")
		}
		ch := p.input[p.pos]
		if ch == quote {
			p.advance()
			break
		}
		if ch == '\\' {
			p.advance()
			if p.pos >= p.length {
				return nil, p.syntaxErrorf("unterminated escape sequence")
			}
			esc := p.input[p.pos]
			p.advance()
			switch esc {
			case 't':
				value.WriteByte('\t')
			case 'n':
				value.WriteByte('\n')
			case 'r':
				value.WriteByte('\r')
			case 'b':
				value.WriteByte('\b')
			case 'f':
				value.WriteByte('\f')
			case '"', '\'', '\\':
				value.WriteByte(esc)
			default:
				return nil, p.syntaxErrorf("invalid escape sequence '\\%c'", esc)
			}
			continue
		}
		value.WriteByte(ch)
		p.advance()
	}

	// Optional language tag or datatype annotation.
	if p.peek() == '@' {
		p.advance()
		lang := p.readWhile(func(ch byte) bool {
			return isNameStartChar(ch) || ch >= '0' && ch <= '9' || ch == '-'
		})
		if lang == "" {
			return nil, p.syntaxErrorf("empty language tag")
		}
		return rdf.NewLangLiteral(value.String(), lang), nil
	}
	if p.peek() == '^' && p.peekAt(1) == '^' {
		p.advance()
		p.advance()
		p.skipWhitespace()
		var datatype string
		if p.peek() == '<' {
			iri, err := p.parseIRIRef()
			if err != nil {
				return nil, err
			}
			datatype, err = p.resolveIRI(iri)
			if err != nil {
				return nil, err
			}
		} else {
			term, err := p.parsePrefixedName()
			if err != nil {
				return nil, err
			}
			datatype = term.(rdf.IRI).Value
		}
		return rdf.NewTypedLiteral(value.String(), datatype), nil
	}

	return rdf.NewStringLiteral(value.String()), nil
}

func (p *parser) parseBlankNodeLabel() (rdf.Term, error) {
	p.advance() // '_'
	if p.peek() != ':' {
		return nil, p.syntaxErrorf("expected ':' after '_' in blank node label")
	}
	p.advance()
	label := p.readWhile(isNameChar)
	if label == "" {
		return nil, p.syntaxErrorf("empty blank node label")
	}
	return rdf.BlankNode{Label: label}, nil
}

// parseAnonBlankNode parses '[]'. The generated label uses '-', which the
// labelled blank node grammar above cannot produce, so generated labels
// never alias user labels.
func (p *parser) parseAnonBlankNode() (rdf.Term, error) {
	p.advance() // '['
	p.skipWhitespace()
	if p.peek() != ']' {
		return nil, p.unsupported("blank node property list")
	}
	p.advance()
	label := fmt.Sprintf("anon-%d", p.anonSeq)
	p.anonSeq++
	return rdf.BlankNode{Label: label}, nil
}

func (p *parser) parseNumericLiteral() (rdf.Term, error) {
	start := p.pos
	if p.peek() == '+' || p.peek() == '-' {
		p.advance()
	}
	digits := 0
	for p.pos < p.length && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.advance()
		digits++
	}
	hasDot := false
	if p.peek() == '.' && p.peekAt(1) >= '0' && p.peekAt(1) <= '9' {
		hasDot = true
		p.advance()
		for p.pos < p.length && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
			p.advance()
			digits++
		}
	}
	if digits == 0 {
		return nil, p.syntaxErrorf("malformed numeric literal")
	}
	hasExp := false
	if p.peek() == 'e' || p.peek() == 'E' {
		hasExp = true
		p.advance()
		if p.peek() == '+' || p.peek() == '-' {
			p.advance()
		}
		expDigits := p.readWhile(func(ch byte) bool { return ch >= '0' && ch <= '9' })
		if expDigits == "" {
			return nil, p.syntaxErrorf("malformed numeric literal exponent")
		}
	}

	text := p.input[start:p.pos]
	switch {
	case hasExp:
		return rdf.NewTypedLiteral(text, rdf.XSDDouble), nil
	case hasDot:
		return rdf.NewTypedLiteral(text, rdf.XSDDecimal), nil
	default:
		return rdf.NewTypedLiteral(text, rdf.XSDInteger), nil
	}
}

func (p *parser) parsePrefixedName() (rdf.Term, error) {
	start := p.pos
	prefix := p.readWhile(isNameChar)
	if p.peek() != ':' {
		p.pos = start
		return nil, p.syntaxErrorf("expected ':' in prefixed name")
	}
	p.advance()
	local := p.readWhile(func(ch byte) bool {
		return isNameChar(ch) || ch == '-' || ch == '.'
	})
	// A trailing '.' belongs to the triple separator, not the local name.
	for strings.HasSuffix(local, ".") {
		local = local[:len(local)-1]
		p.pos--
	}

	base, ok := p.prefixes[prefix]
	if !ok {
		return nil, &ParseError{Pos: start, Message: fmt.Sprintf("undefined prefix %q", prefix)}
	}
	return rdf.IRI{Value: base + local}, nil
}

// resolveIRI resolves a relative IRI reference against the BASE
// declaration per RFC 3986, so dot segments and network-path forms
// resolve instead of concatenating. An IRI with a scheme is returned
// unchanged.
func (p *parser) resolveIRI(iri string) (string, error) {
	if p.baseIRI == "" || hasScheme(iri) {
		return iri, nil
	}
	base, err := url.Parse(p.baseIRI)
	if err != nil {
		return "", p.syntaxErrorf("invalid BASE IRI %q", p.baseIRI)
	}
	ref, err := url.Parse(iri)
	if err != nil {
		return "", p.syntaxErrorf("invalid relative IRI %q", iri)
	}
	return base.ResolveReference(ref).String(), nil
}

func hasScheme(iri string) bool {
	for i := 0; i < len(iri); i++ {
		ch := iri[i]
		if ch == ':' {
			return i > 0
		}
		if !(ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' ||
			i > 0 && (ch >= '0' && ch <= '9' || ch == '+' || ch == '-' || ch == '.')) {
			return false
		}
	}
	return false
}

// Scanner helpers.

func (p *parser) peek() byte {
	if p.pos >= p.length {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) peekAt(offset int) byte {
	if p.pos+offset >= p.length {
		return 0
	}
	return p.input[p.pos+offset]
}

func (p *parser) advance() {
	if p.pos < p.length {
		p.pos++
	}
}

func (p *parser) skipWhitespace() {
	for p.pos < p.length {
		ch := p.input[p.pos]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			p.pos++
			continue
		}
		// '#' starts a comment running to end of line.
		if ch == '#' {
			for p.pos < p.length && p.input[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		break
	}
}

func (p *parser) readWhile(pred func(byte) bool) string {
	start := p.pos
	for p.pos < p.length && pred(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

// matchKeyword consumes a case-insensitive keyword followed by a
// non-name character.
func (p *parser) matchKeyword(keyword string) bool {
	if !p.peekKeyword(keyword) {
		return false
	}
	p.skipWhitespace()
	p.pos += len(keyword)
	return true
}

// peekKeyword reports whether the keyword is next, without consuming it.
// A following ':' means a prefixed name whose prefix spells the keyword,
// not the keyword itself.
func (p *parser) peekKeyword(keyword string) bool {
	mark := p.pos
	p.skipWhitespace()
	next := p.peekAt(len(keyword))
	ok := p.pos+len(keyword) <= p.length &&
		strings.EqualFold(p.input[p.pos:p.pos+len(keyword)], keyword) &&
		!isNameChar(next) && next != ':'
	p.pos = mark
	return ok
}

func isNameStartChar(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStartChar(ch) || ch >= '0' && ch <= '9'
}
