package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ccollicutt/pdbdiff/pkg/compare"
	"github.com/ccollicutt/pdbdiff/pkg/config"
	"github.com/ccollicutt/pdbdiff/pkg/output"
	"github.com/ccollicutt/pdbdiff/pkg/peeringdb"
	"github.com/ccollicutt/pdbdiff/pkg/printer"
	"github.com/ccollicutt/pdbdiff/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// CompareOptions holds command-line options for a comparison.
type CompareOptions struct {
	Common   bool
	IX       bool
	Facility bool
	First    bool
	Second   bool

	Output      string
	Quiet       bool
	Color       string
	ConfigPath  string
	RegistryURL string
	ExitCode    bool
	Debug       bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// Selection converts the view flags into an output selection.
func (o *CompareOptions) Selection() output.Selection {
	return output.Selection{
		Common:     o.Common,
		Exchanges:  o.IX,
		Facilities: o.Facility,
		First:      o.First,
		Second:     o.Second,
	}
}

const compareLong = `Compare the facility and exchange memberships of two autonomous systems
as published by PeeringDB.

By default the entries unique to each AS are listed, exchanges first and
then facilities. Use --common to list the entries both networks share.

Exit codes:
  0 - Comparison completed
  1 - Entries were listed and --exit-code was given
  2 - Usage, configuration, or registry error`

// NewCompareCommand creates the compare command.
func NewCompareCommand() *cobra.Command {
	opts := &CompareOptions{}

	cmd := &cobra.Command{
		Use:   "compare <asn> <asn>",
		Short: "Compare two networks' facilities and exchanges",
		Long:  compareLong,
		Example: `  pdbdiff compare 13335 15169
  pdbdiff compare --common --ix AS13335 AS15169`,
		Args: ASNArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunCompare(cmd, args, opts)
		},
	}

	BindCompareFlags(cmd.Flags(), opts)
	return cmd
}

// BindCompareFlags registers comparison flags on fs.
func BindCompareFlags(fs *pflag.FlagSet, opts *CompareOptions) {
	fs.BoolVarP(&opts.Common, "common", "c", false, "Display common entities (default is unique)")
	fs.BoolVarP(&opts.IX, "ix", "i", false, "Display exchanges")
	fs.BoolVarP(&opts.Facility, "facility", "f", false, "Display facilities")
	fs.BoolVarP(&opts.First, "first", "1", false, "Only display entries for the first ASN")
	fs.BoolVarP(&opts.Second, "second", "2", false, "Only display entries for the second ASN")

	fs.StringVarP(&opts.Output, "output", "o", config.DefaultOutput, "Output format (text|json)")
	fs.BoolVarP(&opts.Quiet, "quiet", "q", false, "Only print entry counts")
	fs.StringVar(&opts.Color, "color", config.DefaultColor, "Colorize output (auto|always|never)")
	fs.StringVar(&opts.ConfigPath, "config", "", "Config file (default $PDBDIFF_CONFIG or ~/.pdbdiff/config.yaml)")
	fs.StringVar(&opts.RegistryURL, "registry-url", "", "PeeringDB API root (default "+config.DefaultRegistryURL+")")
	fs.BoolVar(&opts.ExitCode, "exit-code", false, "Exit with status 1 when any entries are listed")
	fs.BoolVar(&opts.Debug, "debug", false, "Print registry requests to stderr")

	fs.StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	fs.StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	fs.StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerOnDifferences), "When to fire webhook (on_differences|always|never)")
}

// ASNArgs requires exactly two AS numbers.
func ASNArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("requires exactly two AS numbers, received %d", len(args))
	}
	for _, a := range args {
		if _, err := ParseASN(a); err != nil {
			return err
		}
	}
	return nil
}

// ParseASN parses "13335" or "AS13335" into a positive AS number.
func ParseASN(s string) (int, error) {
	trimmed := s
	if len(trimmed) > 2 && strings.EqualFold(trimmed[:2], "AS") {
		trimmed = trimmed[2:]
	}
	asn, err := strconv.Atoi(trimmed)
	if err != nil || asn < 1 {
		return 0, fmt.Errorf("invalid AS number %q", s)
	}
	return asn, nil
}

// RunCompare fetches both networks, builds the report and writes it to cmd's output.
func RunCompare(cmd *cobra.Command, args []string, opts *CompareOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	printer.SetDebug(opts.Debug)

	first, err := ParseASN(args[0])
	if err != nil {
		return err
	}
	second, err := ParseASN(args[1])
	if err != nil {
		return err
	}

	cfg, cfgPath, err := config.Resolve(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfgPath != "" {
		printer.Debugf("using config %s\n", cfgPath)
	}
	if err := applyFlagOverrides(cmd.Flags(), opts, cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colorMode := printer.ColorMode(cfg.Color)
	printer.SetColor(printer.UseColor(colorMode, os.Stderr))

	formatter, err := output.NewFormatter(cfg.Output, output.FormatOptions{
		Quiet: opts.Quiet,
		Color: printer.UseColor(colorMode, asFile(out)),
	})
	if err != nil {
		return err
	}

	client := peeringdb.NewClient(
		peeringdb.WithBaseURL(cfg.Registry.URL),
		peeringdb.WithUserAgent(cfg.Registry.UserAgent),
		peeringdb.WithTimeout(cfg.Registry.Timeout),
	)

	start := time.Now()
	a, b, err := client.FetchPair(ctx, first, second)
	if err != nil {
		return err
	}

	report := output.NewReport(compare.New(a, b), opts.Selection())
	report.Metadata.Registry = client.BaseURL()
	report.Metadata.Duration = time.Since(start)

	if err := formatter.Format(ctx, report, out); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Send webhooks (errors logged but don't fail the comparison)
	sendWebhooks(ctx, cfg.Webhooks, report)

	if opts.ExitCode && report.HasEntries() {
		ExitCode = 1
	}

	return nil
}

// applyFlagOverrides lets explicitly set flags win over config file and environment.
// A --webhook-url webhook is validated like a config file webhook and appended.
func applyFlagOverrides(fs *pflag.FlagSet, opts *CompareOptions, cfg *config.Config) error {
	if fs.Changed("output") {
		cfg.Output = opts.Output
	}
	if fs.Changed("color") {
		cfg.Color = opts.Color
	}
	if opts.RegistryURL != "" {
		cfg.Registry.URL = opts.RegistryURL
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if opts.WebhookURL != "" {
		wh := config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: config.WebhookTrigger(opts.WebhookTrigger),
			Timeout: config.DefaultWebhookTimeout,
		}
		if err := config.ValidateWebhook(&wh); err != nil {
			return fmt.Errorf("invalid webhook flags: %w", err)
		}
		cfg.Webhooks = append(cfg.Webhooks, wh)
	}
	return nil
}

func asFile(w io.Writer) *os.File {
	f, _ := w.(*os.File)
	return f
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged to stderr but don't fail the comparison.
func sendWebhooks(ctx context.Context, webhooks []config.WebhookConfig, report *output.Report) {
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasEntries()) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		if resp.Success() {
			printer.Infof("Webhook %s: sent (%d, %s)\n", wh.DisplayName(), resp.StatusCode, resp.Duration.Round(time.Millisecond))
		} else {
			printer.Warningf("Webhook %s: failed (%v)\n", wh.DisplayName(), resp.Error)
		}
	}
}

// shouldFireWebhook determines if a webhook should fire based on trigger and report contents.
func shouldFireWebhook(trigger config.WebhookTrigger, hasEntries bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasEntries
	}
}
