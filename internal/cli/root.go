package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/sparql2rule/internal/translate"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" diagnostic format
	Compact bool   // one-line rule output instead of indented
	Output  string // output file path, empty means stdout
}

// ValidFormats defines the allowed diagnostic formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. The root command itself is the
// translator: it reads one CONSTRUCT query from stdin and writes the rule
// document to stdout.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sparql2rule",
		Short: "Translate a SPARQL CONSTRUCT query to a logical rule",
		Long: `Translate a SPARQL CONSTRUCT query into a flat logical rule.

Reads one CONSTRUCT query from stdin and writes a JSON rule document
with if_all (WHERE patterns) and then (template patterns) to stdout.

  cat input.sparql | sparql2rule > rule.json`,
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return WrapExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
			}
			return nil
		},
		Args: exitCodeArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, cmd)
		},
	}

	// Flag parse errors are command errors, not translation failures.
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "diagnostic format (json|text)")
	cmd.Flags().BoolVar(&opts.Compact, "compact", false, "write the rule on one line")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the rule to a file instead of stdout")

	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

func runTranslate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	query, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		formatter.Error("READ_FAILED", fmt.Sprintf("reading stdin: %v", err), nil)
		return WrapExitError(ExitCommandError, "reading stdin", err)
	}
	formatter.VerboseLog("Read %d byte(s) of query text", len(query))

	r, err := translate.TranslateText(string(query))
	if err != nil {
		code := translate.CodeOf(err)
		if code == "" {
			code = translate.ErrCodeSyntax
		}
		formatter.Error(string(code), err.Error(), nil)
		return WrapExitError(ExitFailure, "translation failed", err)
	}

	// Buffer the document so nothing partial ever reaches stdout.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if !opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(r); err != nil {
		formatter.Error("ENCODE_FAILED", fmt.Sprintf("encoding rule: %v", err), nil)
		return WrapExitError(ExitCommandError, "encoding rule", err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, buf.Bytes(), 0644); err != nil {
			formatter.Error("WRITE_FAILED", fmt.Sprintf("writing output file: %v", err), nil)
			return WrapExitError(ExitCommandError, "writing output file", err)
		}
		formatter.VerboseLog("Wrote rule to %s", opts.Output)
		return nil
	}

	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}

// exitCodeArgs wraps a positional-args validator so argument errors
// carry the command-error exit code.
func exitCodeArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return nil
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
