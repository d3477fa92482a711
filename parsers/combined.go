package parsers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CombinedParser handles the extended (combined) access-log format.
// Format: remote ident authuser [date:time tz] "method path protocol" status bytes "referrer" "user-agent"
// Example: 93.180.71.3 - - [17/May/2015:08:05:32 +0000] "GET /downloads/product_1 HTTP/1.1" 304 0 "-" "Debian APT-HTTP/1.3 (0.8.16~exp12ubuntu10.21)"
//
// Leading whitespace and anything after the quoted user-agent are ignored.
type CombinedParser struct{}

var combinedLineRegex = regexp.MustCompile(
	`^\s*(\S+) (\S+) (\S+) \[([^:\]]+):(\d+:\d+:\d+) ([^\]]+)\] "(\S+) (.*?) (\S+)" (\S+) (\S+) "(.*?)" "(.*?)"`)

// Capture positions within a match; index 0 is the whole match.
const (
	groupPath      = 8
	groupStatus    = 10
	groupBytes     = 11
	groupUserAgent = 13
	groupCount     = 14
)

func (p *CombinedParser) Name() string {
	return "combined"
}

func (p *CombinedParser) ParseLine(line string) (LogRecord, error) {
	m := combinedLineRegex.FindStringSubmatch(line)
	if len(m) != groupCount {
		return LogRecord{}, ErrNoMatch
	}

	status, err := parseUnsigned(m[groupStatus])
	if err != nil {
		return LogRecord{}, fmt.Errorf("%w: status %q", ErrMalformedField, m[groupStatus])
	}

	traffic, err := parseBytes(m[groupBytes])
	if err != nil {
		return LogRecord{}, fmt.Errorf("%w: bytes %q", ErrMalformedField, m[groupBytes])
	}

	return LogRecord{
		URL:        m[groupPath],
		StatusCode: int(status),
		Traffic:    traffic,
		UserAgent:  strings.ToLower(m[groupUserAgent]),
	}, nil
}

// parseBytes reads the body size field. Servers write "-" when no body was sent.
func parseBytes(s string) (int64, error) {
	if s == "-" {
		return 0, nil
	}
	return parseUnsigned(s)
}

// parseUnsigned accepts only ASCII digits, so signs like "+200" or "-1" are rejected.
func parseUnsigned(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid digit %q", s[i])
		}
	}
	return strconv.ParseInt(s, 10, 64)
}
