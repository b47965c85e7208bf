// Package runlog persists the full per-sample record of a run so
// mistakes can be analyzed offline without re-running the detector.
package runlog

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lidbench/pkg/core"
	"lidbench/pkg/langmap"
	"lidbench/pkg/report"
)

const (
	logVersion  = 1
	maxMistakes = 20
	excerptLen  = 200
)

// Mistake is one misclassified sample, with the text truncated to an
// excerpt.
type Mistake struct {
	Tag       string `json:"tag"`
	Expected  string `json:"expected"`
	Predicted string `json:"predicted"`
	Text      string `json:"text"`
}

// Log is the complete record of one evaluation run.
type Log struct {
	Version     int               `json:"version"`
	Report      report.Report     `json:"report"`
	Predictions []core.Prediction `json:"predictions,omitempty"`
	Mistakes    []Mistake         `json:"mistakes,omitempty"`
}

// New assembles a Log, collecting the first misclassifications of
// mapped languages the way an error-analysis pass wants them.
func New(rep report.Report, predictions []core.Prediction, mapping *langmap.Mapping) Log {
	var mistakes []Mistake
	for _, pred := range predictions {
		if len(mistakes) >= maxMistakes {
			break
		}
		expected, ok := mapping.Resolve(pred.Sample.Tag)
		if !ok || pred.Outcome != core.OutcomeCode || pred.Code == expected {
			continue
		}
		mistakes = append(mistakes, Mistake{
			Tag:       pred.Sample.Tag,
			Expected:  expected,
			Predicted: pred.Code,
			Text:      excerpt(pred.Sample.Text),
		})
	}

	return Log{
		Version:     logVersion,
		Report:      rep,
		Predictions: predictions,
		Mistakes:    mistakes,
	}
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLen {
		return text
	}
	return string(runes[:excerptLen])
}

// WriteJSON writes the log as one indented JSON file and returns its
// path.
func WriteJSON(logDir string, log Log) (string, error) {
	if logDir == "" {
		return "", fmt.Errorf("runlog: logDir is required")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(logDir, buildFileName(log, "json"))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(log); err != nil {
		return "", err
	}
	return path, nil
}

// WriteArchive writes the log as a zip with the header split from the
// bulky prediction list, and returns its path.
func WriteArchive(logDir string, log Log) (string, error) {
	if logDir == "" {
		return "", fmt.Errorf("runlog: logDir is required")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(logDir, buildFileName(log, "zip"))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	zipWriter := zip.NewWriter(file)

	header := log
	header.Predictions = nil
	if err := writeZipJSON(zipWriter, "header.json", header); err != nil {
		zipWriter.Close()
		return "", err
	}
	if err := writeZipJSON(zipWriter, "predictions.json", log.Predictions); err != nil {
		zipWriter.Close()
		return "", err
	}
	if err := writeZipJSON(zipWriter, "mistakes.json", log.Mistakes); err != nil {
		zipWriter.Close()
		return "", err
	}

	if err := zipWriter.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// ReadArchive loads a log written by WriteArchive.
func ReadArchive(path string) (Log, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return Log{}, err
	}
	defer reader.Close()

	var log Log
	for _, f := range reader.File {
		switch f.Name {
		case "header.json":
			if err := decodeZipJSON(f, &log); err != nil {
				return Log{}, err
			}
		}
	}
	for _, f := range reader.File {
		if f.Name == "predictions.json" {
			if err := decodeZipJSON(f, &log.Predictions); err != nil {
				return Log{}, err
			}
		}
	}
	return log, nil
}

// FailedSamples returns the samples whose detector call failed, for
// re-running against a recovered detector.
func FailedSamples(log Log) []core.Sample {
	var out []core.Sample
	for _, pred := range log.Predictions {
		if pred.Outcome == core.OutcomeError {
			out = append(out, pred.Sample)
		}
	}
	return out
}

func writeZipJSON(writer *zip.Writer, name string, data any) error {
	entry, err := writer.Create(name)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(entry)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func decodeZipJSON(f *zip.File, target any) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return json.NewDecoder(rc).Decode(target)
}

func buildFileName(log Log, ext string) string {
	timestamp := time.Now().Format("2006-01-02T15-04-05")
	detector := sanitizeName(log.Report.Run.Detector)
	corpus := sanitizeName(log.Report.Run.Corpus)
	if detector == "" {
		detector = "detector"
	}
	if corpus == "" {
		corpus = "corpus"
	}
	return fmt.Sprintf("%s_%s_%s.%s", timestamp, detector, corpus, ext)
}

func sanitizeName(input string) string {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			out = append(out, r)
		}
	}
	return string(out)
}
