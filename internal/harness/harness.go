package harness

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sparql2rule/internal/rule"
	"github.com/roach88/sparql2rule/internal/translate"
)

// Document renders a rule the way the CLI does: two-space indented JSON
// with a trailing newline. Golden files store exactly these bytes.
func Document(r *rule.Rule) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run executes one scenario and asserts its expectation.
func Run(t *testing.T, scenario *Scenario) {
	t.Helper()

	r, err := translate.TranslateText(scenario.Query)

	if scenario.Expect.Error != "" {
		require.Error(t, err, "scenario %s: expected error %s", scenario.Name, scenario.Expect.Error)
		assert.Equal(t, translate.ErrorCode(scenario.Expect.Error), translate.CodeOf(err),
			"scenario %s: wrong error code: %v", scenario.Name, err)
		assert.Nil(t, r, "scenario %s: no rule may be emitted on failure", scenario.Name)
		return
	}

	require.NoError(t, err, "scenario %s: unexpected translation error", scenario.Name)

	doc, err := Document(r)
	require.NoError(t, err, "scenario %s: encoding rule", scenario.Name)

	// Translating again must be byte-identical.
	again, err := translate.TranslateText(scenario.Query)
	require.NoError(t, err)
	docAgain, err := Document(again)
	require.NoError(t, err)
	assert.Equal(t, string(doc), string(docAgain),
		"scenario %s: translation is not deterministic", scenario.Name)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, doc)
}
