package report

import (
	"fmt"
	"io"
	"strings"
)

type MarkdownReporter struct {
	Writer io.Writer
}

func (r MarkdownReporter) Report(report Report) error {
	if _, err := fmt.Fprintf(r.Writer, "# LID Benchmark Report\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "- Detector: %s\n- Corpus: %s\n- Seed: %d\n\n",
		report.Run.Detector, report.Run.Corpus, report.Run.Seed); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(r.Writer, "## Summary\n\n| Metric | Value |\n|---|---|\n"); err != nil {
		return err
	}
	rows := []struct {
		Name  string
		Value string
	}{
		{"Total samples", fmt.Sprintf("%d", report.Metrics.TotalSamples)},
		{"Mapped samples", fmt.Sprintf("%d", report.Metrics.MappedSamples)},
		{"Micro accuracy (mapped)", fmt.Sprintf("%.2f%%", report.Metrics.MicroMapped*100)},
		{"Micro accuracy (full)", fmt.Sprintf("%.2f%%", report.Metrics.MicroFull*100)},
		{"Macro recall (mapped)", fmt.Sprintf("%.2f%%", report.Metrics.MacroMapped*100)},
		{"Macro recall (full)", fmt.Sprintf("%.2f%%", report.Metrics.MacroFull*100)},
		{"Unknown rate", fmt.Sprintf("%.1f%%", report.Metrics.UnknownRate*100)},
		{"Failure rate", fmt.Sprintf("%.1f%%", report.Metrics.FailureRate*100)},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(r.Writer, "| %s | %s |\n", row.Name, row.Value); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(r.Writer, "\n## Languages\n\n| Tag | Code | Total | Correct | Accuracy | Note |\n|---|---|---|---|---|---|\n"); err != nil {
		return err
	}
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
		if _, err := fmt.Fprintf(r.Writer, "| %s | %s | %d | %d | %s | %s |\n",
			lang.Tag, lang.Code, lang.Total, lang.Correct, accuracy, note); err != nil {
			return err
		}
	}

	if len(report.Unmapped) > 0 {
		if _, err := fmt.Fprintf(r.Writer, "\nUnmapped tags: %s\n", strings.Join(report.Unmapped, ", ")); err != nil {
			return err
		}
	}
	return nil
}
