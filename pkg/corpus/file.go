// Package corpus loads benchmark records from disk without holding the
// whole file in memory.
package corpus

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lidbench/pkg/core"
)

const maxLineBytes = 1024 * 1024

// FileCorpus streams records from a JSONL file ({"tag","text"} per
// line) or a TSV file (tag<TAB>text per line).
type FileCorpus struct {
	Path     string
	NameHint string
}

func NewFileCorpus(path string) *FileCorpus {
	return &FileCorpus{Path: path}
}

func (c *FileCorpus) Name() string {
	if c.NameHint != "" {
		return c.NameHint
	}
	return filepath.Base(c.Path)
}

func (c *FileCorpus) Len(ctx context.Context) (int, error) {
	file, err := os.Open(c.Path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := newLineScanner(file)
	count := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if len(strings.TrimSpace(scanner.Text())) > 0 {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *FileCorpus) Records(ctx context.Context) (<-chan core.Record, <-chan error) {
	recordCh := make(chan core.Record)
	errCh := make(chan error, 1)

	go func() {
		defer close(recordCh)
		defer close(errCh)

		format, err := detectFormat(c.Path)
		if err != nil {
			errCh <- err
			return
		}

		file, err := os.Open(c.Path)
		if err != nil {
			errCh <- err
			return
		}
		defer file.Close()

		scanner := newLineScanner(file)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record, err := parseLine(format, line)
			if err != nil {
				errCh <- fmt.Errorf("corpus: %s line %d: %w", c.Name(), lineNo, err)
				return
			}

			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case recordCh <- record:
			}
		}
		if err := scanner.Err(); err != nil {
			errCh <- err
		}
	}()

	return recordCh, errCh
}

func newLineScanner(file *os.File) *bufio.Scanner {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, maxLineBytes), maxLineBytes)
	return scanner
}

func detectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl":
		return "jsonl", nil
	case ".tsv", ".txt":
		return "tsv", nil
	}

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(string(b)) == "" {
			continue
		}
		if b == '{' {
			return "jsonl", nil
		}
		return "tsv", nil
	}
}

func parseLine(format, line string) (core.Record, error) {
	switch format {
	case "jsonl":
		var record core.Record
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return core.Record{}, err
		}
		if record.Tag == "" {
			return core.Record{}, errors.New("missing tag")
		}
		return record, nil
	case "tsv":
		tag, text, ok := strings.Cut(line, "\t")
		if !ok || tag == "" {
			return core.Record{}, errors.New("expected tag<TAB>text")
		}
		return core.Record{Tag: tag, Text: text}, nil
	default:
		return core.Record{}, errors.New("unsupported format")
	}
}
