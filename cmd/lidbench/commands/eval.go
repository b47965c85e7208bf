package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"lidbench/pkg/cache"
	"lidbench/pkg/core"
	"lidbench/pkg/corpus"
	"lidbench/pkg/detector"
	"lidbench/pkg/langmap"
	"lidbench/pkg/report"
	"lidbench/pkg/runlog"
	"lidbench/pkg/sampler"
	"lidbench/pkg/score"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEvalCommand() *cobra.Command {
	var (
		corpusPath     string
		detectorName   string
		samplePerLang  int
		seed           int64
		limit          int
		minSamples     int
		workers        int
		timeoutSeconds int
		outputPath     string
		format         string
		logDir         string
		logFormat      string
		mappedOnly     bool
		useCache       bool
		mockCode       string
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run a detector over the benchmark and report accuracy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			path := resolveString(corpusPath, appConfig.Corpus)
			if path == "" {
				return errors.New("corpus path is required")
			}
			detectorResolved := resolveString(detectorName, appConfig.Detector)
			if detectorResolved == "" {
				detectorResolved = "lingua"
			}
			formatResolved := resolveString(format, appConfig.Format)
			if formatResolved == "" {
				formatResolved = report.FormatTable
			}
			outputResolved := resolveString(outputPath, appConfig.Output)
			logFormatResolved := resolveString(logFormat, appConfig.LogFormat)
			if logFormatResolved == "" {
				logFormatResolved = "archive"
			}
			logDirResolved := resolveString(logDir, appConfig.LogDir)
			perLang := resolveInt(samplePerLang, appConfig.SamplePerLang, 0)
			seedResolved := resolveInt64(seed, appConfig.Seed, 42)
			limitResolved := resolveInt(limit, appConfig.Limit, 0)
			minSamplesResolved := resolveInt(minSamples, appConfig.MinSamples, 1)
			workerCount := resolveInt(workers, appConfig.Workers, 1)

			det, stop, err := buildDetector(detectorResolved, mockCode)
			if err != nil {
				return err
			}
			defer stop()

			if useCache {
				diskCache, err := cache.New(appConfig.CacheDir, 0)
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
				det = detector.Cached{Detector: det, Cache: diskCache}
			}

			logger.Info("loading corpus", zap.String("path", path))
			bench := corpus.NewFileCorpus(path)
			groups, tags, err := corpus.Collect(ctx, bench, limitResolved)
			if err != nil {
				return fmt.Errorf("load corpus: %w", err)
			}

			// The label space is fixed here, before sampling.
			mapping := langmap.New(tags, det.Codes())
			logger.Info("label space fixed",
				zap.Int("languages", len(tags)),
				zap.Int("mapped", len(mapping.Mapped())),
				zap.Int("unmapped", len(mapping.Unmapped())),
			)

			if mappedOnly || appConfig.MappedOnly {
				for _, tag := range mapping.Unmapped() {
					delete(groups, tag)
				}
			}

			samples := sampler.Stratified{PerLang: perLang, Seed: seedResolved}.Select(groups)
			logger.Info("samples selected",
				zap.Int("samples", len(samples)),
				zap.Int("per_lang", perLang),
				zap.Int64("seed", seedResolved),
			)

			var limiter core.RateLimiter
			if rps := appConfig.Remote.RateLimitRPS; detectorResolved == "remote" && rps > 0 {
				rateLimiter, stopLimiter, err := core.NewRateLimiter(rps, appConfig.Remote.RateLimitBurst)
				if err != nil {
					return err
				}
				defer stopLimiter()
				limiter = rateLimiter
			}

			bar := newProgressBar(progressWriter(cmd), len(samples))
			runner := core.Runner{
				Detector: det,
				Workers:  workerCount,
				Timeout:  time.Duration(timeoutSeconds) * time.Second,
				Limiter:  limiter,
				Progress: bar.Update,
			}

			started := time.Now()
			predictions, err := runner.Run(ctx, samples)
			if err != nil {
				return fmt.Errorf("run detector: %w", err)
			}

			aggregator := score.Aggregator{Mapping: mapping, MinSamples: minSamplesResolved}
			result := aggregator.Aggregate(predictions)

			info := report.RunInfo{
				Detector:   det.Name(),
				Corpus:     bench.Name(),
				Seed:       seedResolved,
				PerLang:    perLang,
				Workers:    workerCount,
				StartedAt:  started,
				FinishedAt: time.Now(),
			}
			rep := report.Build(info, result, mapping.Unmapped())

			writer := io.Writer(os.Stdout)
			if outputResolved != "" {
				file, err := os.Create(outputResolved)
				if err != nil {
					return err
				}
				defer file.Close()
				writer = file
			}

			reporter, err := buildReporter(formatResolved, writer)
			if err != nil {
				return err
			}
			if err := reporter.Report(rep); err != nil {
				return err
			}

			if logFormatResolved != "none" {
				if logDirResolved == "" {
					logDirResolved = "./logs"
				}
				if err := writeRunLog(logFormatResolved, logDirResolved, rep, predictions, mapping); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "path to benchmark corpus (jsonl or tsv)")
	cmd.Flags().StringVar(&detectorName, "detector", "", "detector name (lingua, whatlang, remote, mock)")
	cmd.Flags().IntVar(&samplePerLang, "sample-per-lang", 0, "max samples per language (0 = all)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for sampling")
	cmd.Flags().IntVar(&limit, "limit", 0, "max corpus rows to load (0 = all)")
	cmd.Flags().IntVar(&minSamples, "min-samples", 0, "flag languages with fewer samples as unreliable")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of workers")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "per-call timeout in seconds (0 = none)")
	cmd.Flags().StringVar(&outputPath, "output", "", "output file path")
	cmd.Flags().StringVar(&format, "format", "", "output format (table, json, markdown, csv, html)")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for run logs")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "run log format (archive, json, none)")
	cmd.Flags().BoolVar(&mappedOnly, "mapped-only", false, "skip languages the detector cannot express")
	cmd.Flags().BoolVar(&useCache, "cache", false, "cache detector verdicts on disk")
	cmd.Flags().StringVar(&mockCode, "mock-code", "", "fixed verdict for the mock detector")

	return cmd
}

func buildDetector(name, mockCode string) (core.Detector, func(), error) {
	noop := func() {}
	switch name {
	case "lingua":
		return detector.NewLingua(appConfig.Lingua.MinConfidence), noop, nil
	case "whatlang":
		return detector.Whatlang{ReliableOnly: appConfig.Whatlang.ReliableOnly}, noop, nil
	case "remote":
		remote, err := detector.NewRemote(appConfig.Remote.BaseURL, appConfig.Remote.Codes)
		if err != nil {
			return nil, noop, err
		}
		if appConfig.Remote.TimeoutSeconds > 0 {
			remote.Timeout = time.Duration(appConfig.Remote.TimeoutSeconds) * time.Second
		}
		if appConfig.Remote.MaxRetries > 0 {
			remote.MaxRetries = appConfig.Remote.MaxRetries
		}
		if appConfig.Remote.BackoffMillis > 0 {
			remote.Backoff = time.Duration(appConfig.Remote.BackoffMillis) * time.Millisecond
		}
		return remote, noop, nil
	case "mock":
		mock := detector.Mock{Code: mockCode}
		if mockCode != "" {
			mock.CodesValue = []string{mockCode}
		}
		return mock, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown detector: %s", name)
	}
}

func buildReporter(format string, writer io.Writer) (report.Reporter, error) {
	switch format {
	case report.FormatJSON:
		return report.JSONReporter{Writer: writer, Pretty: true}, nil
	case report.FormatTable:
		return report.TableReporter{Writer: writer}, nil
	case report.FormatMarkdown:
		return report.MarkdownReporter{Writer: writer}, nil
	case report.FormatCSV:
		return report.CSVReporter{Writer: writer}, nil
	case report.FormatHTML:
		return report.HTMLReporter{Writer: writer}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func writeRunLog(format, logDir string, rep report.Report, predictions []core.Prediction, mapping *langmap.Mapping) error {
	log := runlog.New(rep, predictions, mapping)
	switch format {
	case "archive", "zip":
		_, err := runlog.WriteArchive(logDir, log)
		return err
	case "json":
		_, err := runlog.WriteJSON(logDir, log)
		return err
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}
}

type progressBar struct {
	writer io.Writer
	total  int
	start  time.Time
	isTTY  bool
}

func newProgressBar(writer io.Writer, total int) *progressBar {
	return &progressBar{
		writer: writer,
		total:  total,
		start:  time.Now(),
		isTTY:  isTerminal(writer),
	}
}

func (p *progressBar) Update(completed, total int) {
	if total <= 0 {
		total = p.total
	}
	if !p.isTTY && completed%1000 != 0 && completed != total {
		return
	}

	width := 30
	ratio := 1.0
	if total > 0 {
		ratio = float64(completed) / float64(total)
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))

	bar := strings.Repeat("=", filled) + strings.Repeat(".", width-filled)
	percent := int(ratio * 100)
	elapsed := time.Since(p.start)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(completed) / elapsed.Seconds()
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	line := fmt.Sprintf("[%s] %3d%% (%d/%d) %.0f/s %s",
		barStyle.Render(bar), percent, completed, total, rate, elapsed.Truncate(time.Second))
	if p.isTTY {
		fmt.Fprintf(p.writer, "\r%s", line)
	} else {
		fmt.Fprintf(p.writer, "%s\n", line)
	}

	if completed >= total {
		fmt.Fprintln(p.writer)
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func progressWriter(cmd *cobra.Command) io.Writer {
	stderr := cmd.ErrOrStderr()
	stdout := cmd.OutOrStdout()

	if isTerminal(stderr) {
		return stderr
	}
	if isTerminal(stdout) {
		return stdout
	}
	return stderr
}

func resolveString(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func resolveInt(value, fallback, defaultValue int) int {
	if value > 0 {
		return value
	}
	if fallback > 0 {
		return fallback
	}
	return defaultValue
}

func resolveInt64(value, fallback, defaultValue int64) int64 {
	if value > 0 {
		return value
	}
	if fallback > 0 {
		return fallback
	}
	return defaultValue
}
