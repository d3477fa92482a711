package analyzer

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/logstat/parsers"
)

// DefaultMaxLineBytes bounds the longest line handed to the parser.
const DefaultMaxLineBytes = 1 << 20

// ErrLineTooLong marks a line skipped for exceeding the configured maximum.
var ErrLineTooLong = errors.New("line exceeds maximum length")

// Report aggregates one pass over an access log.
type Report struct {
	Views       int                 // non-blank lines, parsed or not
	UniqueURLs  map[string]struct{} // request paths of parsed lines
	Traffic     int64               // bytes sent with status 200
	StatusCodes map[int]int         // status code -> hits
	Crawlers    map[Crawler]int     // always holds every KnownCrawlers entry

	Parsed  int
	Skipped int
}

// NewReport returns an empty Report with every known crawler seeded at zero.
func NewReport() *Report {
	r := &Report{
		UniqueURLs:  make(map[string]struct{}),
		StatusCodes: make(map[int]int),
		Crawlers:    make(map[Crawler]int, len(KnownCrawlers)),
	}
	for _, c := range KnownCrawlers {
		r.Crawlers[c] = 0
	}
	return r
}

// URLCount returns the number of distinct request paths.
func (r *Report) URLCount() int {
	return len(r.UniqueURLs)
}

// Handle is an opened log file waiting to be scanned.
type Handle struct {
	path string
	file *os.File
}

// Path returns the path the handle was opened from.
func (h *Handle) Path() string {
	return h.path
}

// Close releases the file. Calling it more than once is safe.
func (h *Handle) Close() error {
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	return err
}

// Aggregator drives a single sequential pass over an access log.
type Aggregator struct {
	parser       parsers.Parser
	classifier   Classifier
	maxLineBytes int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithParser replaces the default combined-format parser.
func WithParser(p parsers.Parser) Option {
	return func(a *Aggregator) { a.parser = p }
}

// WithClassifier replaces the default crawler table.
func WithClassifier(c Classifier) Option {
	return func(a *Aggregator) { a.classifier = c }
}

// WithMaxLineBytes sets the longest accepted line. Non-positive values keep the default.
func WithMaxLineBytes(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxLineBytes = n
		}
	}
}

// New creates an Aggregator using the combined log format and the built-in crawler table.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		parser:       &parsers.CombinedParser{},
		classifier:   BotTable{},
		maxLineBytes: DefaultMaxLineBytes,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Open validates path and opens the file for reading.
func (a *Aggregator) Open(path string) (*Handle, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrInvalidPath
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "opening", Path: path, Err: err}
	}
	if info, err := file.Stat(); err == nil && info.IsDir() {
		file.Close()
		return nil, &FileError{Op: "opening", Path: path, Err: errors.New("is a directory")}
	}

	log.Debug().Str("path", path).Msg("Log file opened")
	return &Handle{path: path, file: file}, nil
}

// Run scans h to the end and returns the aggregated report.
// The handle is closed on every return path.
func (a *Aggregator) Run(h *Handle) (*Report, error) {
	if h == nil {
		return nil, &FileError{Op: "reading", Err: os.ErrInvalid}
	}
	defer h.Close()

	if h.file == nil {
		return nil, &FileError{Op: "reading", Path: h.path, Err: os.ErrClosed}
	}

	report := NewReport()
	lr := newLineReader(h.file, a.maxLineBytes)

	lineNo := 0
	for {
		line, tooLong, blank, err := lr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &FileError{Op: "reading", Path: h.path, Err: err}
		}
		lineNo++
		if blank {
			continue
		}

		if tooLong {
			report.Views++
			report.Skipped++
			log.Debug().Err(ErrLineTooLong).Str("path", h.path).Int("line", lineNo).Msg("Skipping malformed line")
			continue
		}

		if err := a.accumulate(report, string(line)); err != nil {
			log.Debug().Err(err).Str("path", h.path).Int("line", lineNo).Msg("Skipping malformed line")
		}
	}

	log.Debug().
		Str("path", h.path).
		Str("format", a.parser.Name()).
		Int("views", report.Views).
		Int("parsed", report.Parsed).
		Int("skipped", report.Skipped).
		Msg("Log file scanned")

	return report, nil
}

// ParseFile opens path and runs a full pass over it.
func (a *Aggregator) ParseFile(path string) (*Report, error) {
	h, err := a.Open(path)
	if err != nil {
		return nil, err
	}
	return a.Run(h)
}

// accumulate folds one non-blank line into r. A returned error means
// the line was counted as a view but otherwise skipped.
func (a *Aggregator) accumulate(r *Report, line string) error {
	r.Views++

	rec, err := a.parser.ParseLine(line)
	if err != nil {
		r.Skipped++
		return err
	}
	r.Parsed++

	r.UniqueURLs[rec.URL] = struct{}{}
	r.StatusCodes[rec.StatusCode]++
	if rec.StatusCode == 200 {
		r.Traffic += rec.Traffic
	}

	if crawler, ok := a.classifier.Classify(rec.UserAgent); ok {
		r.Crawlers[crawler]++
	}
	return nil
}
