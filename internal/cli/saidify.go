package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/vlei/internal/credential"
	"github.com/roach88/vlei/internal/said"
)

// SaidifyOptions holds flags for the saidify subcommands. Each subcommand
// registers only the flags its variant uses.
type SaidifyOptions struct {
	*RootOptions
	Issuee          string
	QVI             string
	Timestamp       string
	LEI             string
	Nonce           string
	PersonLegalName string
	Role            string
}

// SaidifyResult is the output of a saidify subcommand.
type SaidifyResult struct {
	Variant credential.Variant `json:"variant"`
	SAID    credential.SAID    `json:"said"`
	Code    said.Code          `json:"code"`
	Sad     said.Sad           `json:"sad"`
}

// RenderText prints the attribute block as compact JSON, ready to be piped
// into verify or ledger put.
func (r SaidifyResult) RenderText(w io.Writer) error {
	data, err := said.Serialize(r.Sad)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// NewSaidifyCommand creates the saidify command and its per-variant
// subcommands.
func NewSaidifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saidify",
		Short: "Build a credential attribute block and derive its SAID",
		Long: `Build a vLEI credential attribute block and derive its SAID.

The nonce of ECR and OOR blocks defaults to a fresh salty nonce, and
every timestamp defaults to the current time in KERI format.

Examples:
  vlei saidify le --issuee EAbc123 --lei 254900OPPU84GM83MG36
  vlei saidify oor --issuee EAbc123 --lei 254900OPPU84GM83MG36 \
    --person-legal-name "John Smith" --role Chairman
  vlei saidify oor-auth --qvi EHMn... --issuee ENsb... --lei 254900OPPU84GM83MG36 \
    --person-legal-name "John Smith" --role Chairman --format json`,
	}

	cmd.AddCommand(newSaidifyVariantCommand(rootOpts, "le", "Legal Entity credential", credential.VariantLegalEntity))
	cmd.AddCommand(newSaidifyVariantCommand(rootOpts, "ecr", "Engagement Context Role credential", credential.VariantEngagementContextRole))
	cmd.AddCommand(newSaidifyVariantCommand(rootOpts, "ecr-auth", "ECR Authorization credential", credential.VariantEngagementContextRoleAuthorization))
	cmd.AddCommand(newSaidifyVariantCommand(rootOpts, "oor", "Official Organizational Role credential", credential.VariantOfficialOrganizationalRole))
	cmd.AddCommand(newSaidifyVariantCommand(rootOpts, "oor-auth", "OOR Authorization credential", credential.VariantOfficialOrganizationalRoleAuthorization))

	return cmd
}

func newSaidifyVariantCommand(rootOpts *RootOptions, use, short string, variant credential.Variant) *cobra.Command {
	opts := &SaidifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           use,
		Short:         "Build a " + short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSaidify(opts, variant, cmd)
		},
	}

	f := cmd.Flags()
	authorization := variant == credential.VariantEngagementContextRoleAuthorization ||
		variant == credential.VariantOfficialOrganizationalRoleAuthorization

	if authorization {
		f.StringVar(&opts.QVI, "qvi", "", "AID of the qualified vLEI issuer")
		_ = cmd.MarkFlagRequired("qvi")
	}
	if variant == credential.VariantEngagementContextRole || variant == credential.VariantOfficialOrganizationalRole {
		f.StringVar(&opts.Nonce, "nonce", "", "salty nonce (default: fresh nonce)")
	}
	f.StringVar(&opts.Issuee, "issuee", "", "AID of the credential holder")
	f.StringVar(&opts.Timestamp, "timestamp", "", "issuance date-time (default: now)")
	f.StringVar(&opts.LEI, "lei", "", "Legal Entity Identifier")
	_ = cmd.MarkFlagRequired("issuee")
	_ = cmd.MarkFlagRequired("lei")

	if variant != credential.VariantLegalEntity {
		f.StringVar(&opts.PersonLegalName, "person-legal-name", "", "legal name of the role holder")
		f.StringVar(&opts.Role, "role", "", "engagement context or official organizational role")
		_ = cmd.MarkFlagRequired("person-legal-name")
		_ = cmd.MarkFlagRequired("role")
	}

	return cmd
}

func runSaidify(opts *SaidifyOptions, variant credential.Variant, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	d, err := opts.digester()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid digest configuration", err)
	}

	if opts.Timestamp == "" {
		opts.Timestamp = credential.FormatTimestamp(opts.now())
	}
	if opts.Nonce == "" && cmd.Flags().Lookup("nonce") != nil {
		if opts.Nonce, err = opts.nonce(); err != nil {
			return WrapExitError(ExitFailure, "failed to generate nonce", err)
		}
	}

	rec, err := buildRecord(d, variant, opts)
	if err != nil {
		return out.Fail(ExitCommandError, CodeInvalidInput, err, map[string]string{"variant": string(variant)})
	}

	slog.Debug("credential saidified", "variant", variant, "said", rec.Digest())

	code, err := said.CodeOf(string(rec.Digest()))
	if err != nil {
		return WrapExitError(ExitFailure, "digester returned an unrecognized SAID", err)
	}

	return out.Success(SaidifyResult{
		Variant: rec.Variant(),
		SAID:    rec.Digest(),
		Code:    code,
		Sad:     rec.Sad(),
	})
}

// buildRecord calls the constructor of variant with the flag values.
func buildRecord(d credential.Digester, variant credential.Variant, o *SaidifyOptions) (credential.Record, error) {
	switch variant {
	case credential.VariantLegalEntity:
		return credential.NewLegalEntityCredentialData(d, credential.LegalEntityArgs{
			Issuee:    credential.AID(o.Issuee),
			Timestamp: o.Timestamp,
			LEI:       o.LEI,
		})
	case credential.VariantEngagementContextRole:
		return credential.NewEngagementContextRoleCredentialData(d, credential.EngagementContextRoleArgs{
			Nonce:                 o.Nonce,
			Issuee:                credential.AID(o.Issuee),
			Timestamp:             o.Timestamp,
			LEI:                   o.LEI,
			PersonLegalName:       o.PersonLegalName,
			EngagementContextRole: o.Role,
		})
	case credential.VariantEngagementContextRoleAuthorization:
		return credential.NewEngagementContextRoleAuthorizationCredentialData(d, credential.EngagementContextRoleAuthorizationArgs{
			QVI:                   credential.AID(o.QVI),
			Timestamp:             o.Timestamp,
			Issuee:                credential.AID(o.Issuee),
			LEI:                   o.LEI,
			PersonLegalName:       o.PersonLegalName,
			EngagementContextRole: o.Role,
		})
	case credential.VariantOfficialOrganizationalRole:
		return credential.NewOfficialOrganizationalRoleCredentialData(d, credential.OfficialOrganizationalRoleArgs{
			Nonce:                      o.Nonce,
			Issuee:                     credential.AID(o.Issuee),
			Timestamp:                  o.Timestamp,
			LEI:                        o.LEI,
			PersonLegalName:            o.PersonLegalName,
			OfficialOrganizationalRole: o.Role,
		})
	case credential.VariantOfficialOrganizationalRoleAuthorization:
		return credential.NewOfficialOrganizationalRoleAuthorizationCredentialData(d, credential.OfficialOrganizationalRoleAuthorizationArgs{
			QVI:                        credential.AID(o.QVI),
			Timestamp:                  o.Timestamp,
			Issuee:                     credential.AID(o.Issuee),
			LEI:                        o.LEI,
			PersonLegalName:            o.PersonLegalName,
			OfficialOrganizationalRole: o.Role,
		})
	default:
		return nil, &credential.UnknownVariantError{Name: string(variant)}
	}
}
