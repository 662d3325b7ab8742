package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lucas-albers-lz4/nsdebug/pkg/namespace"
)

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "Show the merged allowed set",
		Long: `Show the allowed set merged from DEBUG and --debug, one pattern per line with
its kind. Scoped patterns list the namespaces they expand to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			allowed := namespace.Allowed(source(cmd))
			out := cmd.OutOrStdout()
			if len(allowed) == 0 {
				_, err := fmt.Fprintln(out, "No namespaces enabled.")
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATTERN\tKIND\tMATCHES")
			for _, p := range allowed {
				kind := namespace.Classify(p)
				var matches string
				switch kind {
				case namespace.KindAll:
					matches = "every namespace"
				case namespace.KindPrefix:
					matches = strings.TrimSuffix(p, namespace.Wildcard) + "..."
				case namespace.KindScoped:
					matches = strings.Join(namespace.Expand(p), ", ")
				default:
					matches = p
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p, kind, matches)
			}
			return tw.Flush()
		},
	}
}
