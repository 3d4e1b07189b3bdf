package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/roach88/vlei/internal/credential"
	"github.com/roach88/vlei/internal/metrics"
	"github.com/roach88/vlei/internal/said"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose         bool
	Format          string // "json" | "text"
	Code            string // digest derivation code or algorithm name
	StrictNFC       bool
	MetricsTextfile string

	// Now and NewNonce supply defaults for --timestamp and --nonce.
	// Tests replace them with deterministic sources.
	Now      func() time.Time
	NewNonce func() (string, error)

	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the vlei CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{
		Now:      time.Now,
		NewNonce: credential.NewNonce,
	})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vlei",
		Short: "vLEI credential data with self-addressing identifiers",
		Long: `Build, verify and store vLEI ACDC attribute blocks.

Each block carries its own SAID in the "d" field, derived with the
KERI saidify procedure over the block's fields in schema order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if _, err := said.ParseCode(opts.Code); err != nil {
				return WrapExitError(ExitCommandError, "invalid --code", err)
			}
			configureLogging(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.writeMetrics()
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Code, "code", string(said.DefaultCode), "digest derivation code (E|F|G|H|I) or algorithm name")
	cmd.PersistentFlags().BoolVar(&opts.StrictNFC, "strict-nfc", false, "reject values that are not NFC-normalized")
	cmd.PersistentFlags().StringVar(&opts.MetricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file on exit")

	// Add subcommands
	cmd.AddCommand(NewSaidifyCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewLedgerCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// configureLogging installs a text handler on w, at debug level when
// verbose.
func configureLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// saider builds the digester configured by the global flags.
func (o *RootOptions) saider() (*said.Saider, error) {
	var sopts []said.Option
	if o.Code != "" {
		code, err := said.ParseCode(o.Code)
		if err != nil {
			return nil, err
		}
		sopts = append(sopts, said.WithCode(code))
	}
	if o.StrictNFC {
		sopts = append(sopts, said.WithStrictNFC())
	}
	return said.New(sopts...)
}

// digester returns the configured saider wrapped with metrics.
func (o *RootOptions) digester() (credential.Digester, error) {
	s, err := o.saider()
	if err != nil {
		return nil, err
	}
	return metrics.InstrumentWith(s, o.metricSet()), nil
}

// metricSet registers the CLI metrics on first use.
func (o *RootOptions) metricSet() *metrics.Metrics {
	if o.metrics == nil {
		o.registry = prometheus.NewRegistry()
		o.metrics = metrics.New(o.registry)
	}
	return o.metrics
}

// writeMetrics writes the text exposition when --metrics-textfile is set.
func (o *RootOptions) writeMetrics() error {
	if o.MetricsTextfile == "" {
		return nil
	}
	o.metricSet()
	if err := prometheus.WriteToTextfile(o.MetricsTextfile, o.registry); err != nil {
		return WrapExitError(ExitCommandError, "failed to write metrics", err)
	}
	return nil
}

// formatter returns an OutputFormatter bound to cmd's writers.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// now returns the current time from the configured clock.
func (o *RootOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// nonce returns a fresh nonce from the configured source.
func (o *RootOptions) nonce() (string, error) {
	if o.NewNonce == nil {
		return credential.NewNonce()
	}
	return o.NewNonce()
}

// commandContext returns cmd's context or a background context.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
