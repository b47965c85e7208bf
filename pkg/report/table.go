package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

type TableReporter struct {
	Writer io.Writer
}

func (r TableReporter) Report(report Report) error {
	summary := tablewriter.NewWriter(r.Writer)
	summary.Header([]string{"Metric", "Value"})
	summary.Append([]string{"Detector", report.Run.Detector})
	summary.Append([]string{"Total samples", fmt.Sprintf("%d", report.Metrics.TotalSamples)})
	summary.Append([]string{"Mapped samples", fmt.Sprintf("%d", report.Metrics.MappedSamples)})
	summary.Append([]string{"Micro accuracy (mapped)", fmt.Sprintf("%.2f%%", report.Metrics.MicroMapped*100)})
	summary.Append([]string{"Micro accuracy (full)", fmt.Sprintf("%.2f%%", report.Metrics.MicroFull*100)})
	summary.Append([]string{"Macro recall (mapped)", fmt.Sprintf("%.2f%%", report.Metrics.MacroMapped*100)})
	summary.Append([]string{"Macro recall (full)", fmt.Sprintf("%.2f%%", report.Metrics.MacroFull*100)})
	summary.Append([]string{"Unknown rate", fmt.Sprintf("%.1f%%", report.Metrics.UnknownRate*100)})
	summary.Append([]string{"Failure rate", fmt.Sprintf("%.1f%%", report.Metrics.FailureRate*100)})
	summary.Append([]string{"Languages evaluated", fmt.Sprintf("%d / %d", report.Metrics.EvaluatedLangs, report.Metrics.LabelSpace)})
	summary.Render()

	langs := tablewriter.NewWriter(r.Writer)
	langs.Header([]string{"Tag", "Code", "Total", "Correct", "Unknown", "Failed", "Acc", "Note"})
	for _, lang := range report.Languages {
		note := ""
		if !lang.Mapped {
			note = "unmapped"
		} else if lang.LowSample {
			note = "low-sample"
		}
		accuracy := "-"
		if lang.Mapped && lang.Total > 0 {
			accuracy = fmt.Sprintf("%.1f%%", lang.Accuracy*100)
		}
		langs.Append([]string{
			lang.Tag,
			lang.Code,
			fmt.Sprintf("%d", lang.Total),
			fmt.Sprintf("%d", lang.Correct),
			fmt.Sprintf("%d", lang.Unknown),
			fmt.Sprintf("%d", lang.Failed),
			accuracy,
			note,
		})
	}
	langs.Render()

	if len(report.Unmapped) > 0 {
		fmt.Fprintf(r.Writer, "Unmapped tags (%d): %s\n", len(report.Unmapped), strings.Join(report.Unmapped, ", "))
	}
	return nil
}
