package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available detectors and output formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Detectors:")
			detectors := tablewriter.NewWriter(out)
			detectors.Header([]string{"Name", "Description"})
			detectors.Append([]string{"lingua", "in-process n-gram models, widest vocabulary"})
			detectors.Append([]string{"whatlang", "in-process trigram classifier, fast"})
			detectors.Append([]string{"remote", "HTTP service configured via remote.base_url"})
			detectors.Append([]string{"mock", "scripted verdicts for dry runs"})
			detectors.Render()

			fmt.Fprintln(out, "Report formats:")
			formats := tablewriter.NewWriter(out)
			formats.Header([]string{"Name", "Description"})
			formats.Append([]string{"table", "terminal summary and per-language tables"})
			formats.Append([]string{"json", "full report as indented JSON"})
			formats.Append([]string{"markdown", "report as markdown tables"})
			formats.Append([]string{"csv", "per-language rows for spreadsheets"})
			formats.Append([]string{"html", "standalone HTML page"})
			formats.Render()

			fmt.Fprintln(out, "Run log formats: archive (zip), json, none")
			return nil
		},
	}
}
