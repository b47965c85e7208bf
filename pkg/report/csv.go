package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

type CSVReporter struct {
	Writer io.Writer
}

func (r CSVReporter) Report(report Report) error {
	writer := csv.NewWriter(r.Writer)
	header := []string{"tag", "code", "mapped", "total", "correct", "unknown", "failed", "accuracy", "low_sample"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, lang := range report.Languages {
		record := []string{
			lang.Tag,
			lang.Code,
			strconv.FormatBool(lang.Mapped),
			strconv.Itoa(lang.Total),
			strconv.Itoa(lang.Correct),
			strconv.Itoa(lang.Unknown),
			strconv.Itoa(lang.Failed),
			strconv.FormatFloat(lang.Accuracy, 'f', 4, 64),
			strconv.FormatBool(lang.LowSample),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
