package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/logstat/analyzer"
)

// Format specifies the output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
)

// Report outputs the aggregated log report in the requested format.
func Report(r *analyzer.Report, format Format, w io.Writer) error {
	switch format {
	case FormatJSON:
		return reportJSON(r, w)
	case FormatYAML:
		return reportYAML(r, w)
	case FormatTable:
		return reportTable(r, w)
	case FormatCSV:
		return reportCSV(r, w)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteToFile writes the report to a file instead of stdout.
func WriteToFile(r *analyzer.Report, format Format, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := Report(r, format, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// summary is the wire shape of a report. Key names are relied on by
// existing consumers and must not change.
type summary struct {
	Views       int            `json:"views" yaml:"views"`
	URLs        int            `json:"urls" yaml:"urls"`
	Traffic     int64          `json:"traffic" yaml:"traffic"`
	Crawlers    map[string]int `json:"crawlers" yaml:"crawlers"`
	StatusCodes map[int]int    `json:"status_codes" yaml:"status_codes"`
}

func newSummary(r *analyzer.Report) summary {
	s := summary{
		Views:       r.Views,
		URLs:        r.URLCount(),
		Traffic:     r.Traffic,
		Crawlers:    make(map[string]int, len(analyzer.KnownCrawlers)),
		StatusCodes: make(map[int]int, len(r.StatusCodes)),
	}
	for _, c := range analyzer.KnownCrawlers {
		s.Crawlers[string(c)] = r.Crawlers[c]
	}
	for code, n := range r.StatusCodes {
		s.StatusCodes[code] = n
	}
	return s
}

func reportJSON(r *analyzer.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(newSummary(r))
}

func reportYAML(r *analyzer.Report, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newSummary(r)); err != nil {
		return err
	}
	return enc.Close()
}

func reportTable(r *analyzer.Report, w io.Writer) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  ACCESS LOG SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 40))
	fmt.Fprintf(w, "  Views:          %d\n", r.Views)
	fmt.Fprintf(w, "  Parsed lines:   %d\n", r.Parsed)
	fmt.Fprintf(w, "  Skipped lines:  %d\n", r.Skipped)
	fmt.Fprintf(w, "  Unique URLs:    %d\n", r.URLCount())
	fmt.Fprintf(w, "  Traffic (200):  %d bytes\n", r.Traffic)
	fmt.Fprintln(w, strings.Repeat("=", 40))

	fmt.Fprintln(w, "\n  CRAWLERS")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, c := range analyzer.KnownCrawlers {
		fmt.Fprintf(tw, "  %s\t%d hits\n", c, r.Crawlers[c])
	}
	tw.Flush()

	fmt.Fprintln(w, "\n  STATUS CODES")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	if len(r.StatusCodes) == 0 {
		fmt.Fprintln(w, "  (none)")
		fmt.Fprintln(w)
		return nil
	}
	tw = tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, code := range sortedCodes(r.StatusCodes) {
		fmt.Fprintf(tw, "  %d\t%d hits\n", code, r.StatusCodes[code])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	return nil
}

// reportCSV flattens the report into section,key,value rows.
func reportCSV(r *analyzer.Report, w io.Writer) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"section", "key", "value"},
		{"summary", "views", strconv.Itoa(r.Views)},
		{"summary", "urls", strconv.Itoa(r.URLCount())},
		{"summary", "traffic", strconv.FormatInt(r.Traffic, 10)},
	}
	for _, c := range analyzer.KnownCrawlers {
		rows = append(rows, []string{"crawlers", string(c), strconv.Itoa(r.Crawlers[c])})
	}
	for _, code := range sortedCodes(r.StatusCodes) {
		rows = append(rows, []string{"status_codes", strconv.Itoa(code), strconv.Itoa(r.StatusCodes[code])})
	}

	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func sortedCodes(m map[int]int) []int {
	codes := make([]int, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}
