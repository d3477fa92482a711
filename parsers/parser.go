package parsers

import "errors"

var (
	// ErrNoMatch is returned when a line does not have the access-log shape.
	ErrNoMatch = errors.New("line does not match access log format")

	// ErrMalformedField is returned when the status or byte count is not numeric.
	ErrMalformedField = errors.New("malformed numeric field")
)

// LogRecord is the normalized form of one access-log line.
type LogRecord struct {
	URL        string
	StatusCode int
	Traffic    int64
	UserAgent  string // lowercased
}

// Parser turns one raw log line into a LogRecord.
type Parser interface {
	Name() string
	ParseLine(line string) (LogRecord, error)
}
