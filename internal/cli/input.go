package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/vlei/internal/credential"
	"github.com/roach88/vlei/internal/said"
	"github.com/roach88/vlei/internal/schema"
)

// readSad reads an attribute block from path, or from stdin when path is "-".
func readSad(cmd *cobra.Command, path string) (said.Sad, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return said.ParseSad(data)
}

// detectVariants returns the variants whose label table matches sad, or
// just want when set; credential.Parse checks the labels in that case. The
// two authorization schemas share a table, so more than one variant may match.
func detectVariants(sad said.Sad, want string) ([]credential.Variant, error) {
	reg, err := schema.Default()
	if err != nil {
		return nil, fmt.Errorf("load schema tables: %w", err)
	}

	if want != "" {
		v, err := credential.ParseVariant(want)
		if err != nil {
			return nil, err
		}
		return []credential.Variant{v}, nil
	}

	matches := reg.Match(sad.Labels())
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: labels %v match no credential schema", credential.ErrSchemaDrift, sad.Labels())
	}

	variants := make([]credential.Variant, len(matches))
	for i, m := range matches {
		variants[i] = credential.Variant(m)
	}
	return variants, nil
}

// parseAs detects the variant of sad, or checks it against variant when
// set, and rebuilds a verified record.
func (o *RootOptions) parseAs(sad said.Sad, variant string) (credential.Record, []credential.Variant, error) {
	variants, err := detectVariants(sad, variant)
	if err != nil {
		return nil, nil, err
	}

	v, err := o.saider()
	if err != nil {
		return nil, nil, err
	}

	rec, err := credential.Parse(variants[0], sad, v)
	if err != nil {
		return nil, nil, err
	}
	return rec, variants, nil
}

// reportParseError maps a detection or verification error to an exit code.
func reportParseError(out *OutputFormatter, err error) error {
	var unknown *credential.UnknownVariantError
	switch {
	case errors.Is(err, said.ErrDigestMismatch):
		return out.Fail(ExitFailure, CodeDigestMismatch, err, nil)
	case errors.Is(err, credential.ErrSchemaDrift), errors.As(err, &unknown):
		return out.Fail(ExitCommandError, CodeUnknownSchema, err, nil)
	default:
		return out.Fail(ExitCommandError, CodeInvalidInput, err, nil)
	}
}
