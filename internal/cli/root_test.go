package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command tree against the given stdin and args and
// returns stdout, stderr, and the exit code.
func execute(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), GetExitCode(err)
}

func TestRoot_TranslateToStdout(t *testing.T) {
	stdout, stderr, code := execute(t, "CONSTRUCT { ?s ?p ?o . } WHERE { ?s ?p ?o . }")

	assert.Equal(t, ExitSuccess, code)
	assert.Empty(t, stderr)

	var doc struct {
		IfAll []json.RawMessage `json:"if_all"`
		Then  []json.RawMessage `json:"then"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Len(t, doc.IfAll, 1)
	assert.Len(t, doc.Then, 1)

	// Indented output ends with a newline.
	assert.True(t, strings.HasSuffix(stdout, "\n"))
	assert.Contains(t, stdout, "\n  ")
}

func TestRoot_CompactOutput(t *testing.T) {
	stdout, _, code := execute(t, "CONSTRUCT { ?s ?p ?o . } WHERE { ?s ?p ?o . }", "--compact")

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, 1, strings.Count(stdout, "\n"))
	assert.True(t, strings.HasSuffix(stdout, "\n"))
}

func TestRoot_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rule.json")
	stdout, _, code := execute(t, "CONSTRUCT { ?s ?p ?o . } WHERE { ?s ?p ?o . }", "-o", path)

	assert.Equal(t, ExitSuccess, code)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"if_all"`)
}

func TestRoot_TranslationFailureExitCode(t *testing.T) {
	stdout, stderr, code := execute(t, "SELECT ?s WHERE { ?s ?p ?o . }")

	assert.Equal(t, ExitFailure, code)
	assert.Empty(t, stdout, "nothing partial may reach stdout")
	assert.Contains(t, stderr, "Error [SYNTAX_ERROR]:")
}

func TestRoot_UnsupportedShapeDiagnostic(t *testing.T) {
	_, stderr, code := execute(t, "CONSTRUCT { } WHERE { ?s ?p ?o . FILTER(?o) }")

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "Error [UNSUPPORTED_QUERY_SHAPE]:")
	assert.Contains(t, stderr, "FILTER")
}

func TestRoot_JSONDiagnostics(t *testing.T) {
	_, stderr, code := execute(t, "not sparql", "--format", "json")

	assert.Equal(t, ExitFailure, code)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stderr), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SYNTAX_ERROR", resp.Error.Code)

	// Trace ids are time-ordered v7 UUIDs.
	id, err := uuid.Parse(resp.TraceID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestRoot_InvalidFormatFlag(t *testing.T) {
	_, _, code := execute(t, "", "--format", "yaml")
	assert.Equal(t, ExitCommandError, code)
}

func TestRoot_RejectsPositionalArgs(t *testing.T) {
	_, _, code := execute(t, "", "query.sparql")
	assert.Equal(t, ExitCommandError, code)
}

func TestRoot_UnknownFlag(t *testing.T) {
	_, _, code := execute(t, "", "--bogus")
	assert.Equal(t, ExitCommandError, code)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestRoot_StdinReadFailure(t *testing.T) {
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(failingReader{})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(nil)

	err := cmd.Execute()
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr.String(), "READ_FAILED")
	assert.Empty(t, stdout.String())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "outer", assert.AnError)))
}
