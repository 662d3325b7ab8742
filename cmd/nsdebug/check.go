package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lucas-albers-lz4/nsdebug/pkg/exitcodes"
	"github.com/lucas-albers-lz4/nsdebug/pkg/namespace"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

// CheckResult is the verdict for one namespace.
type CheckResult struct {
	Namespace string `yaml:"namespace"`
	Enabled   bool   `yaml:"enabled"`
	MatchedBy string `yaml:"matchedBy,omitempty"`
}

// CheckReport is the output of the check command.
type CheckReport struct {
	Allowed []string      `yaml:"allowed"`
	Results []CheckResult `yaml:"results"`
}

// checkNamespaces evaluates every namespace against one allowed set.
func checkNamespaces(allowed []string, namespaces []string) CheckReport {
	report := CheckReport{Allowed: allowed, Results: make([]CheckResult, 0, len(namespaces))}
	for _, ns := range namespaces {
		pattern, ok := namespace.FirstMatch(allowed, ns)
		report.Results = append(report.Results, CheckResult{Namespace: ns, Enabled: ok, MatchedBy: pattern})
	}
	return report
}

func newCheckCmd() *cobra.Command {
	var (
		output string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "check <namespace>...",
		Short: "Report whether namespaces are enabled",
		Long: `Report whether each namespace would be enabled for a debug emitter created now,
and which pattern enabled it.`,
		Example: `  DEBUG='[app:*]' nsdebug check app:db worker
  nsdebug --debug='[@acme/{api:web}]' check @acme/api --output yaml
  nsdebug check app:db --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &exitcodes.ExitCodeError{
					Code: exitcodes.ExitMissingRequiredArg,
					Err:  errors.New("at least one namespace is required"),
				}
			}

			allowed := namespace.Allowed(source(cmd))
			cliDebug.Dump("allowed", allowed)
			report := checkNamespaces(allowed, args)

			if err := writeCheckReport(cmd.OutOrStdout(), report, output); err != nil {
				return err
			}

			if strict {
				var disabled []string
				for _, r := range report.Results {
					if !r.Enabled {
						disabled = append(disabled, r.Namespace)
					}
				}
				if len(disabled) > 0 {
					return &exitcodes.ExitCodeError{
						Code: exitcodes.ExitNamespaceDisabled,
						Err:  fmt.Errorf("disabled namespaces: %s", strings.Join(disabled, ", ")),
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format (text, yaml)")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with a non-zero code if any namespace is disabled")
	return cmd
}

func writeCheckReport(w io.Writer, report CheckReport, format string) error {
	switch format {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return &exitcodes.ExitCodeError{
				Code: exitcodes.ExitIOError,
				Err:  fmt.Errorf("failed to encode report: %w", err),
			}
		}
		return enc.Close()
	case outputText, "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, r := range report.Results {
			state := "disabled"
			if r.Enabled {
				state = "enabled"
			}
			if r.MatchedBy != "" {
				fmt.Fprintf(tw, "%s\t%s\t(matched %s)\n", r.Namespace, state, r.MatchedBy)
			} else {
				fmt.Fprintf(tw, "%s\t%s\t\n", r.Namespace, state)
			}
		}
		return tw.Flush()
	default:
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInvalidOutputFormat,
			Err:  fmt.Errorf("unsupported output format %q (use %s or %s)", format, outputText, outputYAML),
		}
	}
}
