package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/vlei/internal/credential"
	"github.com/roach88/vlei/internal/said"
	"github.com/roach88/vlei/internal/store"
)

// EnvDatabase names the environment variable holding the default ledger path.
const EnvDatabase = "VLEI_DB"

const defaultDatabase = "vlei.db"

// LedgerOptions holds flags for the ledger commands.
type LedgerOptions struct {
	*RootOptions
	Database string
	Variant  string // put: skip label detection
}

// LedgerEntry is one stored credential as reported by the ledger commands.
type LedgerEntry struct {
	Seq      int64              `json:"seq"`
	SAID     credential.SAID    `json:"said"`
	Variant  credential.Variant `json:"variant"`
	Code     said.Code          `json:"code"`
	Sad      said.Sad           `json:"sad,omitempty"`
	Inserted *bool              `json:"inserted,omitempty"`
}

func newLedgerEntry(e store.Entry) LedgerEntry {
	return LedgerEntry{
		Seq:     e.Seq,
		SAID:    e.SAID,
		Variant: e.Variant,
		Code:    e.Code,
		Sad:     e.Sad,
	}
}

// RenderText prints the stored attribute block.
func (e LedgerEntry) RenderText(w io.Writer) error {
	if e.Inserted != nil {
		verb := "stored"
		if !*e.Inserted {
			verb = "already stored"
		}
		_, err := fmt.Fprintf(w, "%s %s as seq %d (%s)\n", verb, e.SAID, e.Seq, e.Variant)
		return err
	}
	data, err := said.Serialize(e.Sad)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// LedgerList is the output of ledger list.
type LedgerList struct {
	Entries []LedgerEntry `json:"entries"`
	Total   int           `json:"total"`
}

// RenderText prints one row per entry.
func (l LedgerList) RenderText(w io.Writer) error {
	if len(l.Entries) == 0 {
		_, err := fmt.Fprintln(w, "No credentials stored.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tSAID\tVARIANT\tCODE")
	for _, e := range l.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.Seq, e.SAID, e.Variant, string(e.Code))
	}
	return tw.Flush()
}

// NewLedgerCommand creates the ledger command and its subcommands.
func NewLedgerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LedgerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Store and retrieve credential attribute blocks",
		Long: `Store and retrieve credential attribute blocks in a SQLite ledger.

Blocks are keyed by SAID and verified on the way in and on the way out.
The ledger path defaults to $VLEI_DB, or vlei.db when unset.

Examples:
  vlei ledger put le.json
  vlei ledger get EI-DomGgiO688OmVHOuW5zwGp4pwxTEmD_CrQnsVNlVF
  vlei ledger list oor --db /tmp/vlei.db`,
	}

	defaultDB := os.Getenv(EnvDatabase)
	if defaultDB == "" {
		defaultDB = defaultDatabase
	}
	cmd.PersistentFlags().StringVar(&opts.Database, "db", defaultDB, "path to SQLite ledger (env "+EnvDatabase+")")

	put := &cobra.Command{
		Use:           "put <file|->",
		Short:         "Verify and store an attribute block",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerPut(opts, args[0], cmd)
		},
	}
	put.Flags().StringVar(&opts.Variant, "variant", "", "credential variant (le|ecr|ecr_auth|oor|oor_auth)")

	get := &cobra.Command{
		Use:           "get <said>",
		Short:         "Print a stored attribute block after re-verifying it",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerGet(opts, credential.SAID(args[0]), cmd)
		},
	}

	list := &cobra.Command{
		Use:           "list [variant]",
		Short:         "List stored attribute blocks in insertion order",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var variant string
			if len(args) == 1 {
				variant = args[0]
			}
			return runLedgerList(opts, variant, cmd)
		},
	}

	cmd.AddCommand(put, get, list)
	return cmd
}

// openLedger opens the configured ledger. mustExist refuses to create a new
// database file for read-only commands.
func (o *LedgerOptions) openLedger(mustExist bool) (*store.Store, error) {
	if mustExist && o.Database != ":memory:" {
		if _, err := os.Stat(o.Database); errors.Is(err, os.ErrNotExist) {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("ledger not found: %s", o.Database))
		}
	}
	st, err := store.Open(o.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	return st, nil
}

func runLedgerPut(opts *LedgerOptions, path string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	sad, err := readSad(cmd, path)
	if err != nil {
		return out.Fail(ExitCommandError, CodeInvalidInput, err, nil)
	}

	rec, _, err := opts.parseAs(sad, opts.Variant)
	if err != nil {
		return reportParseError(out, err)
	}

	st, err := opts.openLedger(false)
	if err != nil {
		return err
	}
	defer st.Close()
	out.VerboseLog("using ledger %s", opts.Database)

	seq, inserted, err := st.Put(commandContext(cmd), rec)
	if errors.Is(err, store.ErrVariantConflict) {
		return out.Fail(ExitFailure, CodeConflict, err, nil)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to store credential", err)
	}

	code, _ := said.CodeOf(string(rec.Digest()))
	return out.Success(LedgerEntry{
		Seq:      seq,
		SAID:     rec.Digest(),
		Variant:  rec.Variant(),
		Code:     code,
		Inserted: &inserted,
	})
}

func runLedgerGet(opts *LedgerOptions, id credential.SAID, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	st, err := opts.openLedger(true)
	if err != nil {
		return err
	}
	defer st.Close()
	out.VerboseLog("using ledger %s", opts.Database)

	entry, err := st.Get(commandContext(cmd), id)
	if errors.Is(err, store.ErrNotFound) {
		return out.Fail(ExitFailure, CodeNotFound, err, nil)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read ledger", err)
	}

	v, err := opts.saider()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid digest configuration", err)
	}
	if _, err := credential.Parse(entry.Variant, entry.Sad, v); err != nil {
		return reportParseError(out, err)
	}

	return out.Success(newLedgerEntry(entry))
}

func runLedgerList(opts *LedgerOptions, variant string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	var v credential.Variant
	if variant != "" {
		parsed, err := credential.ParseVariant(variant)
		if err != nil {
			return out.Fail(ExitCommandError, CodeUnknownSchema, err, nil)
		}
		v = parsed
	}

	st, err := opts.openLedger(true)
	if err != nil {
		return err
	}
	defer st.Close()
	out.VerboseLog("using ledger %s", opts.Database)

	entries, err := st.List(commandContext(cmd), v)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read ledger", err)
	}

	result := LedgerList{Entries: make([]LedgerEntry, 0, len(entries)), Total: len(entries)}
	for _, e := range entries {
		le := newLedgerEntry(e)
		le.Sad = nil
		result.Entries = append(result.Entries, le)
	}
	return out.Success(result)
}
