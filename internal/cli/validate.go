package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/sparql2rule/internal/rule"
)

// NewValidateCommand creates the validate command. It checks an existing
// rule document against the rule schema and the safety invariant, without
// retranslating anything.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <rule.json>",
		Short: "Validate a rule document",
		Long: `Validate a serialized rule document.

Checks the document against the rule schema (term tagging, pattern
arity, literal shape) and the safety invariant that every unbound
identifier in then also occurs in if_all. Use '-' to read from stdin.`,
		Args:          exitCodeArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		formatter.Error("READ_FAILED", fmt.Sprintf("reading rule document: %v", err), nil)
		return WrapExitError(ExitCommandError, "reading rule document", err)
	}
	formatter.VerboseLog("Validating %d byte(s)", len(data))

	if errs := rule.ValidateDocument(data); len(errs) > 0 {
		for _, verr := range errs {
			formatter.Error(verr.Code, verr.Error(), nil)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Rule document is valid")
	return nil
}
