package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/vlei/internal/schema"
)

// SchemaOptions holds flags for the schema command.
type SchemaOptions struct {
	*RootOptions
	Source bool // print the embedded CUE document instead
}

// SchemaResult lists field-order tables.
type SchemaResult struct {
	Tables []schema.Table `json:"tables"`
}

// RenderText prints each table with its labels in digest order.
func (r SchemaResult) RenderText(w io.Writer) error {
	for i, t := range r.Tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s: %s\n", t.Variant, t.Title)
		fmt.Fprintf(w, "  schema: %s\n", t.Schema)
		if _, err := fmt.Fprintf(w, "  labels: %s\n", strings.Join(t.Labels, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SchemaOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "schema [variant]",
		Short: "Print the credential field-order tables",
		Long: `Print the field-order table of every credential variant, or of one.

Labels are listed in the order they are serialized for digesting.

Examples:
  vlei schema
  vlei schema ecr_auth --format json
  vlei schema --source`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var variant string
			if len(args) == 1 {
				variant = args[0]
			}
			return runSchema(opts, variant, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Source, "source", false, "print the CUE source of the tables")

	return cmd
}

func runSchema(opts *SchemaOptions, variant string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	if opts.Source {
		_, err := cmd.OutOrStdout().Write(schema.Source())
		return err
	}

	reg, err := schema.Default()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load schema tables", err)
	}

	if variant == "" {
		return out.Success(SchemaResult{Tables: reg.Tables()})
	}

	table, err := reg.Lookup(variant)
	if err != nil {
		return out.Fail(ExitCommandError, CodeUnknownSchema, err, nil)
	}
	return out.Success(SchemaResult{Tables: []schema.Table{table}})
}
