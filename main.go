package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/logstat/analyzer"
	"github.com/logstat/config"
	"github.com/logstat/logging"
	"github.com/logstat/reporter"
)

const version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("logstat", flag.ContinueOnError)
	fs.SetOutput(stderr)

	logFile := fs.String("file", "", "Path to access log file (or pass it as the first argument)")
	configPath := fs.String("config", "", "Path to YAML config file")
	outputFmt := fs.String("output", "", "Output format: json, yaml, table, csv (default: json)")
	outputFile := fs.String("out", "", "Write report to file instead of stdout")
	quiet := fs.Bool("quiet", false, "Only log warnings and errors")
	debug := fs.Bool("debug", false, "Log skipped lines and scan details")
	showVersion := fs.Bool("version", false, "Show version")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "logstat v%s - access log statistics\n", version)
		fmt.Fprintf(stderr, "\nUsage:\n")
		fmt.Fprintf(stderr, "  logstat [options] <logfile>\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  logstat /var/log/nginx/access.log\n")
		fmt.Fprintf(stderr, "  logstat -output table -file access.log\n")
		fmt.Fprintf(stderr, "  logstat -config logstat.yaml -out report.yaml -output yaml access.log\n")
		fmt.Fprintf(stderr, "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "logstat v%s\n", version)
		return 0
	}

	path := *logFile
	if path == "" && fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if path == "" {
		fmt.Fprintln(stderr, "Error. NO file")
		fs.Usage()
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	applyFlags(cfg, *outputFmt, *outputFile, *quiet, *debug)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := logging.Setup(&cfg.Log); err != nil {
		fmt.Fprintf(stderr, "Error setting up logging: %v\n", err)
		return 1
	}

	agg, err := newAggregator(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize aggregator")
		return 1
	}

	log.Info().Str("path", path).Msg("Parsing access log")
	report, err := agg.ParseFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Scan failed")
		fmt.Fprintln(stderr, errorMessage(err))
		return 1
	}
	log.Info().
		Int("views", report.Views).
		Int("urls", report.URLCount()).
		Int("skipped", report.Skipped).
		Msg("Scan complete")

	outFmt := reporter.Format(strings.ToLower(cfg.Report.Format))
	if cfg.Report.Output != "" {
		if err := reporter.WriteToFile(report, outFmt, cfg.Report.Output); err != nil {
			log.Error().Err(err).Msg("Failed to write report")
			return 1
		}
		log.Info().Str("path", cfg.Report.Output).Msg("Report written")
		return 0
	}

	if err := reporter.Report(report, outFmt, stdout); err != nil {
		log.Error().Err(err).Msg("Failed to generate report")
		return 1
	}
	return 0
}

// applyFlags lets command-line flags win over config file values.
func applyFlags(cfg *config.Config, outputFmt, outputFile string, quiet, debug bool) {
	if outputFmt != "" {
		cfg.Report.Format = strings.ToLower(outputFmt)
	}
	if outputFile != "" {
		cfg.Report.Output = outputFile
	}
	if quiet {
		cfg.Log.Level = zerolog.WarnLevel.String()
	}
	if debug {
		cfg.Log.Level = zerolog.DebugLevel.String()
	}
}

func newAggregator(cfg *config.Config) (*analyzer.Aggregator, error) {
	opts := []analyzer.Option{analyzer.WithMaxLineBytes(cfg.Scanner.MaxLineBytes)}
	if cfg.Classifier.CacheSize > 0 {
		cc, err := analyzer.NewCachedClassifier(analyzer.BotTable{}, cfg.Classifier.CacheSize)
		if err != nil {
			return nil, err
		}
		opts = append(opts, analyzer.WithClassifier(cc))
	}
	return analyzer.New(opts...), nil
}

// errorMessage renders a scan failure for the user.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, analyzer.ErrInvalidPath):
		return "Error file path is empty!"
	case errors.Is(err, analyzer.ErrFile):
		return "Error file error!"
	default:
		return fmt.Sprintf("Error %v!", err)
	}
}
