package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/vlei/internal/credential"
	"github.com/roach88/vlei/internal/said"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Variant string // skip label detection and check against this schema
}

// VerifyResult is the output of a successful verification.
type VerifyResult struct {
	SAID     credential.SAID      `json:"said"`
	Code     said.Code            `json:"code"`
	Variants []credential.Variant `json:"variants"`
}

// RenderText prints a one-line verdict.
func (r VerifyResult) RenderText(w io.Writer) error {
	names := make([]string, len(r.Variants))
	for i, v := range r.Variants {
		names[i] = string(v)
	}
	_, err := fmt.Fprintf(w, "\u2713 %s verified (%s, %s)\n", r.SAID, strings.Join(names, "|"), r.Code)
	return err
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <file|->",
		Short: "Verify the SAID of a credential attribute block",
		Long: `Verify that a credential attribute block carries its own SAID.

The schema is detected from the block's labels unless --variant is
given. The digest algorithm is read from the SAID's derivation code.

Exit codes:
  0 - SAID verified
  1 - SAID does not match the content
  2 - Command error (unreadable input, unknown schema, etc.)

Examples:
  vlei verify le.json
  vlei saidify le --issuee EAbc123 --lei 254900OPPU84GM83MG36 | vlei verify -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Variant, "variant", "", "credential variant (le|ecr|ecr_auth|oor|oor_auth)")

	return cmd
}

func runVerify(opts *VerifyOptions, path string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	sad, err := readSad(cmd, path)
	if err != nil {
		return out.Fail(ExitCommandError, CodeInvalidInput, err, nil)
	}

	rec, variants, err := opts.parseAs(sad, opts.Variant)
	if err != nil {
		return reportParseError(out, err)
	}

	slog.Debug("credential verified", "said", rec.Digest(), "variant", rec.Variant())

	code, _ := said.CodeOf(string(rec.Digest()))
	return out.Success(VerifyResult{
		SAID:     rec.Digest(),
		Code:     code,
		Variants: variants,
	})
}
