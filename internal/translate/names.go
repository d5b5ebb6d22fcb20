package translate

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// Domain prefix for blank node identity derivation. Version suffix
// enables future algorithm migration.
const domainBlankNode = "sparql2rule/bnode/v1"

// derivedIDLen is the hex width of a derived identifier's hash portion.
// 64 bits keeps intra-query collision probability negligible.
const derivedIDLen = 16

// names is the per-query naming table: it maps source variable names and
// blank node labels to their assigned Unbound identifiers. Variables and
// blank nodes are separate scopes, so a variable ?x and a blank node _:x
// never share an entry. The table lives for one translation and is
// discarded with it.
type names struct {
	vars   map[string]string
	blanks map[string]string
}

func newNames() *names {
	return &names{
		vars:   make(map[string]string),
		blanks: make(map[string]string),
	}
}

// variable interns a named variable. The identifier is the source name
// verbatim, so template occurrences line up with WHERE occurrences for
// free.
func (n *names) variable(name string) string {
	if id, ok := n.vars[name]; ok {
		return id
	}
	n.vars[name] = name
	return name
}

// blankNode interns a blank node label and returns its derived
// identifier. Identical labels map to the same identifier within one
// query; separate translations derive the same identifier for the same
// label because derivation has no global state.
func (n *names) blankNode(label string) string {
	if id, ok := n.blanks[label]; ok {
		return id
	}
	id := derivedID(label)
	n.blanks[label] = id
	return id
}

// derivedID computes the Unbound identifier for a blank node label:
// a domain-separated SHA-256 of the NFC-normalized label, truncated to a
// fixed width. The "b:" prefix puts derived identifiers outside the
// named-variable namespace, since ':' cannot occur in a variable name.
func derivedID(label string) string {
	h := sha256.New()
	h.Write([]byte(domainBlankNode))
	h.Write([]byte{0x00}) // Null separator between domain and data
	h.Write([]byte(norm.NFC.String(label)))
	return "b:" + hex.EncodeToString(h.Sum(nil))[:derivedIDLen]
}
