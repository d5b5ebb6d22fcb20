package rule

import (
	"encoding/json"
	"fmt"
)

// nodeEnvelope is the externally tagged encoding of a Node. Exactly one
// field is set.
type nodeEnvelope struct {
	Iri     *string  `json:"Iri,omitempty"`
	Literal *Literal `json:"Literal,omitempty"`
}

// termEnvelope is the externally tagged encoding of a Term. Exactly one
// field is set.
type termEnvelope struct {
	Bound   *nodeEnvelope `json:"Bound,omitempty"`
	Unbound *string       `json:"Unbound,omitempty"`
}

// MarshalJSON encodes a Bound term as {"Bound": {"Iri": ...}} or
// {"Bound": {"Literal": {...}}}.
func (b Bound) MarshalJSON() ([]byte, error) {
	env := termEnvelope{Bound: &nodeEnvelope{}}
	switch n := b.Node.(type) {
	case Iri:
		s := string(n)
		env.Bound.Iri = &s
	case Literal:
		lit := n
		env.Bound.Literal = &lit
	default:
		return nil, fmt.Errorf("bound term has no node")
	}
	return json.Marshal(env)
}

// MarshalJSON encodes an Unbound term as {"Unbound": "name"}.
func (u Unbound) MarshalJSON() ([]byte, error) {
	s := string(u)
	return json.Marshal(termEnvelope{Unbound: &s})
}

// UnmarshalJSON decodes the three positions of a pattern.
func (tp *TriplePattern) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("triple pattern has %d terms, want 3", len(raw))
	}
	for i, elem := range raw {
		term, err := unmarshalTerm(elem)
		if err != nil {
			return fmt.Errorf("term %d: %w", i, err)
		}
		tp[i] = term
	}
	return nil
}

func unmarshalTerm(data []byte) (Term, error) {
	var env termEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	switch {
	case env.Unbound != nil && env.Bound == nil:
		return Unbound(*env.Unbound), nil
	case env.Bound != nil && env.Unbound == nil:
		switch {
		case env.Bound.Iri != nil && env.Bound.Literal == nil:
			return Bound{Node: Iri(*env.Bound.Iri)}, nil
		case env.Bound.Literal != nil && env.Bound.Iri == nil:
			return Bound{Node: *env.Bound.Literal}, nil
		}
		return nil, fmt.Errorf("bound term must carry exactly one of Iri or Literal")
	}
	return nil, fmt.Errorf("term must be exactly one of Bound or Unbound")
}

// MarshalJSON guarantees empty pattern lists encode as [] rather than
// null, keeping output byte-stable regardless of how the rule was built.
func (r Rule) MarshalJSON() ([]byte, error) {
	type plain Rule
	out := plain(r)
	if out.IfAll == nil {
		out.IfAll = []TriplePattern{}
	}
	if out.Then == nil {
		out.Then = []TriplePattern{}
	}
	return json.Marshal(out)
}
