package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pdbdiff/pkg/config"
	"github.com/ccollicutt/pdbdiff/pkg/peeringdb"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Verbose     bool
	ConfigPath  string
	RegistryURL string
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose [asn...]",
		Short: "Diagnose configuration and registry access",
		Long: `Diagnose configuration and registry access.

This command checks:
- Config file syntax and structure
- Registry URL and reachability
- That each given AS number resolves in the registry
- Webhook configuration

Example:
  pdbdiff diagnose
  pdbdiff diagnose 13335 15169
  pdbdiff diagnose -v --config pdbdiff.yaml  # verbose output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Config file to check")
	cmd.Flags().StringVar(&opts.RegistryURL, "registry-url", "", "PeeringDB API root to check")

	return cmd
}

func runDiagnose(ctx context.Context, w io.Writer, args []string, opts *DiagnoseOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	asns := make([]int, 0, len(args))
	for _, a := range args {
		asn, err := ParseASN(a)
		if err != nil {
			return err
		}
		asns = append(asns, asn)
	}

	results := []DiagnosticResult{}

	// 1. Config file
	cfg, cfgResults := checkConfig(ctx, opts.ConfigPath)
	results = append(results, cfgResults...)
	if cfg == nil {
		printDiagnostics(w, results, opts)
		return nil
	}
	if opts.RegistryURL != "" {
		cfg.Registry.URL = opts.RegistryURL
	}

	// 2. Registry
	client := peeringdb.NewClient(
		peeringdb.WithBaseURL(cfg.Registry.URL),
		peeringdb.WithUserAgent(cfg.Registry.UserAgent),
		peeringdb.WithTimeout(cfg.Registry.Timeout),
	)
	regResult := checkRegistry(ctx, client, opts)
	results = append(results, regResult)

	// 3. AS lookups
	if regResult.Status != "error" {
		for _, asn := range asns {
			results = append(results, checkASN(ctx, client, asn, opts))
		}
	}

	// 4. Webhooks
	results = append(results, checkWebhooks(cfg, opts)...)

	printDiagnostics(w, results, opts)
	return nil
}

func checkConfig(ctx context.Context, path string) (*config.Config, []DiagnosticResult) {
	path = config.ResolvePath(path)
	if path == "" {
		cfg, _, err := config.Resolve(ctx, "")
		if err != nil {
			return nil, []DiagnosticResult{{
				Check:   "Config File",
				Status:  "error",
				Message: fmt.Sprintf("Default configuration is invalid: %v", err),
				Suggests: []string{
					"Check the " + config.EnvRegistryURL + " and " + config.EnvOutput + " environment variables",
				},
			}}
		}
		return cfg, []DiagnosticResult{{
			Check:   "Config File",
			Status:  "ok",
			Message: "No config file, using defaults",
		}}
	}

	result := checkConfigExists(path)
	if result.Status == "error" {
		return nil, []DiagnosticResult{result}
	}
	cfg, parsed := checkConfigParseable(ctx, path)
	return cfg, []DiagnosticResult{result, parsed}
}

func checkConfigExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Config File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Config file not found: %s", path)
		result.Suggests = []string{
			"Check the file path is correct",
			"pdbdiff runs without a config file; omit --config to use defaults",
		}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access config file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

func checkConfigParseable(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Config Syntax",
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to parse config: %v", err)
		if strings.Contains(err.Error(), "yaml") {
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		}
		return nil, result
	}

	result.Status = "ok"
	result.Message = "Config file parsed successfully"
	result.Details = []string{
		fmt.Sprintf("Registry: %s", cfg.Registry.URL),
		fmt.Sprintf("Webhooks: %d", len(cfg.Webhooks)),
	}
	return cfg, result
}

// checkRegistry reports whether the API root answers HTTP at all.
func checkRegistry(ctx context.Context, client *peeringdb.Client, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Registry: %s", client.BaseURL()),
	}

	u, err := url.Parse(client.BaseURL())
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		result.Status = "error"
		result.Message = "Registry URL must be an absolute http or https URL"
		result.Suggests = []string{"Set registry.url to an http(s) URL such as " + peeringdb.DefaultBaseURL}
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status, err := client.Ping(ctx)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot connect: %v", err)
		result.Suggests = []string{
			"Check if the registry URL is correct",
			"Verify network connectivity",
		}
		return result
	}

	// Any response means the server is reachable
	if status < 500 {
		result.Status = "ok"
		result.Message = fmt.Sprintf("Reachable (status %d)", status)
	} else {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Reachable but returned status %d", status)
	}
	if opts.Verbose {
		result.Details = []string{fmt.Sprintf("User agent: %s", client.UserAgent())}
	}
	return result
}

func checkASN(ctx context.Context, client *peeringdb.Client, asn int, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Lookup: AS%d", asn),
	}

	n, err := client.Fetch(ctx, asn)
	if err != nil {
		result.Status = "error"
		result.Message = err.Error()

		var he *peeringdb.HTTPError
		var mfe *peeringdb.MissingFieldError
		switch {
		case errors.Is(err, peeringdb.ErrNotFound):
			result.Suggests = []string{"Check the AS number; networks without a registry record cannot be compared"}
		case errors.As(err, &he) && he.StatusCode == http.StatusTooManyRequests:
			result.Suggests = []string{"Anonymous registry queries are rate limited; wait and retry"}
		case errors.As(err, &mfe):
			result.Suggests = []string{"The registry response shape changed; check registry.url points at the PeeringDB API"}
		}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("%s: %d facilities, %d exchange LANs", n.DisplayName(), len(n.Facilities), len(n.Exchanges))
	if opts.Verbose {
		for _, f := range n.Facilities {
			result.Details = append(result.Details, fmt.Sprintf("fac %d: %s (%s, %s)", f.FacID, f.Name, f.City, f.Country))
		}
		for _, x := range n.Exchanges {
			result.Details = append(result.Details, fmt.Sprintf("ixlan %d: %s", x.IXLanID, x.Name))
		}
	}
	return result
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== pdbdiff Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before comparing networks.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nSetup is usable but has warnings.")
	} else {
		fmt.Fprintln(w, "\nSetup looks good!")
	}
}

func checkWebhooks(cfg *config.Config, opts *DiagnoseOptions) []DiagnosticResult {
	results := []DiagnosticResult{}

	if len(cfg.Webhooks) == 0 {
		// Webhooks are optional, just note they're not configured
		if opts.Verbose {
			results = append(results, DiagnosticResult{
				Check:   "Webhooks",
				Status:  "ok",
				Message: "No webhooks configured (optional)",
			})
		}
		return results
	}

	for _, wh := range cfg.Webhooks {
		result := DiagnosticResult{
			Check:   fmt.Sprintf("Webhook: %s", wh.DisplayName()),
			Status:  "ok",
			Message: fmt.Sprintf("Trigger: %s", wh.Trigger),
		}
		if opts.Verbose {
			result.Details = []string{
				fmt.Sprintf("URL: %s", wh.URL),
				fmt.Sprintf("Timeout: %s", wh.Timeout),
			}
			if wh.Token == "" {
				result.Details = append(result.Details, "No token configured; the endpoint must accept unauthenticated posts")
			}
		}

		results = append(results, result)
	}

	if opts.Verbose {
		for _, wh := range cfg.Webhooks {
			result := checkWebhookConnectivity(wh)
			result.Check = fmt.Sprintf("Webhook Connectivity: %s", wh.DisplayName())
			results = append(results, result)
		}
	}

	return results
}

func checkWebhookConnectivity(wh config.WebhookConfig) DiagnosticResult {
	result := DiagnosticResult{}

	// Just do a HEAD request to check if the endpoint is reachable
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	req, err := http.NewRequest(http.MethodHead, wh.URL, nil)
	if err != nil {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Cannot create request: %v", err)
		return result
	}

	if wh.Token != "" {
		req.Header.Set("Authorization", "Bearer "+wh.Token)
	}

	resp, err := client.Do(req)
	if err != nil {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Cannot connect: %v", err)
		result.Suggests = []string{
			"Check if the webhook URL is correct",
			"Verify network connectivity",
		}
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.Status = "ok"
		result.Message = fmt.Sprintf("Reachable (status %d)", resp.StatusCode)
	} else {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Reachable but returned status %d", resp.StatusCode)
		result.Suggests = []string{
			"The endpoint may require POST method (will work during actual webhook send)",
			"Check authentication if using a token",
		}
	}

	return result
}
