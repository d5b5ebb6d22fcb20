package rule

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var ruleSchema string

// ValidationError describes one problem found in a rule document.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validation error codes.
const (
	CodeSchemaViolation = "SCHEMA_VIOLATION"
	CodeMalformedJSON   = "MALFORMED_JSON"
	CodeUnboundImplied  = "UNBOUND_VARIABLE_NOT_IN_ANTECEDENT"
)

// ValidateDocument checks a serialized rule document against the CUE
// schema and the unbound-consequent safety invariant. Returns nil when
// the document is a well-formed, safe rule.
func ValidateDocument(data []byte) []ValidationError {
	if errs := validateSchema(data); len(errs) > 0 {
		return errs
	}

	var r Rule
	if err := json.Unmarshal(data, &r); err != nil {
		return []ValidationError{{
			Code:    CodeMalformedJSON,
			Message: err.Error(),
		}}
	}

	var errs []ValidationError
	for _, name := range r.UnboundConsequents() {
		errs = append(errs, ValidationError{
			Field:   "then",
			Code:    CodeUnboundImplied,
			Message: fmt.Sprintf("unbound identifier %q is implied but never matched in if_all", name),
		})
	}
	return errs
}

// validateSchema unifies the document with the #Rule schema definition.
func validateSchema(data []byte) []ValidationError {
	ctx := cuecontext.New()

	schema := ctx.CompileString(ruleSchema).LookupPath(cue.ParsePath("#Rule"))
	if err := schema.Err(); err != nil {
		return []ValidationError{{
			Code:    CodeSchemaViolation,
			Message: fmt.Sprintf("internal schema error: %v", err),
		}}
	}

	expr, err := cuejson.Extract("rule.json", data)
	if err != nil {
		return []ValidationError{{
			Code:    CodeMalformedJSON,
			Message: err.Error(),
		}}
	}
	doc := ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return []ValidationError{{
			Code:    CodeMalformedJSON,
			Message: err.Error(),
		}}
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		var errs []ValidationError
		for _, cueErr := range cueerrors.Errors(err) {
			errs = append(errs, ValidationError{
				Field:   strings.Join(cueErr.Path(), "."),
				Code:    CodeSchemaViolation,
				Message: cueErr.Error(),
			})
		}
		return errs
	}
	return nil
}
