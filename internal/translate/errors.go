package translate

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes translation failures.
type ErrorCode string

const (
	// ErrCodeSyntax indicates the input is not a valid CONSTRUCT query.
	ErrCodeSyntax ErrorCode = "SYNTAX_ERROR"

	// ErrCodeUnsupportedShape indicates a SPARQL construct outside the
	// basic-graph-pattern / flat-template subset.
	ErrCodeUnsupportedShape ErrorCode = "UNSUPPORTED_QUERY_SHAPE"

	// ErrCodeBlankNodeInOutput indicates a blank node in the CONSTRUCT
	// template.
	ErrCodeBlankNodeInOutput ErrorCode = "BLANK_NODE_IN_OUTPUT"

	// ErrCodeUnboundImplied indicates a then identifier that never occurs
	// in if_all.
	ErrCodeUnboundImplied ErrorCode = "UNBOUND_VARIABLE_NOT_IN_ANTECEDENT"
)

// Error is a translation failure. All translation errors are fatal;
// nothing is retried and no partial rule is emitted.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Subject names the offending variable, label, or construct, when one
	// exists.
	Subject string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Subject)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the translation error code. Returns empty string when
// err is not a translation error. Uses errors.As to handle wrapping.
func CodeOf(err error) ErrorCode {
	var te *Error
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

func newBlankNodeInOutputError(label string) *Error {
	return &Error{
		Code:    ErrCodeBlankNodeInOutput,
		Message: "blank node in CONSTRUCT template; the rule consequent has no fresh-value term kind",
		Subject: "_:" + label,
	}
}

func newUnboundImpliedError(name string) *Error {
	return &Error{
		Code:    ErrCodeUnboundImplied,
		Message: "consequent uses an identifier never matched in the antecedent",
		Subject: name,
	}
}
