package parsers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func combinedLine(path string, status, bytes, userAgent string) string {
	return fmt.Sprintf(`84.242.208.111 - - [11/May/2013:06:31:00 +0200] "GET %s HTTP/1.1" %s %s "http://example.com/" "%s"`,
		path, status, bytes, userAgent)
}

func TestCombinedParser_ParseLine(t *testing.T) {
	p := &CombinedParser{}

	tests := []struct {
		name    string
		line    string
		want    LogRecord
		wantErr error
	}{
		{
			name: "googlebot hit",
			line: combinedLine("/index.html", "200", "512", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"),
			want: LogRecord{
				URL:        "/index.html",
				StatusCode: 200,
				Traffic:    512,
				UserAgent:  "mozilla/5.0 (compatible; googlebot/2.1; +http://www.google.com/bot.html)",
			},
		},
		{
			name: "not found",
			line: combinedLine("/missing", "404", "1024", "curl/8.0"),
			want: LogRecord{URL: "/missing", StatusCode: 404, Traffic: 1024, UserAgent: "curl/8.0"},
		},
		{
			name: "dash byte count",
			line: combinedLine("/cached", "304", "-", "Mozilla/5.0"),
			want: LogRecord{URL: "/cached", StatusCode: 304, Traffic: 0, UserAgent: "mozilla/5.0"},
		},
		{
			name: "path with query string",
			line: combinedLine("/search?q=go&page=2", "200", "10", "Mozilla/5.0"),
			want: LogRecord{URL: "/search?q=go&page=2", StatusCode: 200, Traffic: 10, UserAgent: "mozilla/5.0"},
		},
		{
			name: "trailing fields ignored",
			line: combinedLine("/a", "200", "7", "Mozilla/5.0") + ` "0.001"`,
			want: LogRecord{URL: "/a", StatusCode: 200, Traffic: 7, UserAgent: "mozilla/5.0"},
		},
		{
			name: "empty user agent",
			line: combinedLine("/a", "500", "0", ""),
			want: LogRecord{URL: "/a", StatusCode: 500, Traffic: 0, UserAgent: ""},
		},
		{
			name:    "non-numeric status",
			line:    combinedLine("/a", "OK", "7", "Mozilla/5.0"),
			wantErr: ErrMalformedField,
		},
		{
			name:    "non-numeric bytes",
			line:    combinedLine("/a", "200", "lots", "Mozilla/5.0"),
			wantErr: ErrMalformedField,
		},
		{
			name:    "negative bytes",
			line:    combinedLine("/a", "200", "-5", "Mozilla/5.0"),
			wantErr: ErrMalformedField,
		},
		{
			name: "leading whitespace",
			line: "  \t" + combinedLine("/lead", "200", "3", "Mozilla/5.0"),
			want: LogRecord{URL: "/lead", StatusCode: 200, Traffic: 3, UserAgent: "mozilla/5.0"},
		},
		{
			name:    "signed status",
			line:    combinedLine("/a", "+200", "7", "Mozilla/5.0"),
			wantErr: ErrMalformedField,
		},
		{
			name:    "negative status",
			line:    combinedLine("/a", "-1", "7", "Mozilla/5.0"),
			wantErr: ErrMalformedField,
		},
		{
			name:    "signed bytes",
			line:    combinedLine("/a", "200", "+5", "Mozilla/5.0"),
			wantErr: ErrMalformedField,
		},
		{
			name:    "status overflow",
			line:    combinedLine("/a", "99999999999999999999", "5", "Mozilla/5.0"),
			wantErr: ErrMalformedField,
		},
		{
			name:    "missing user agent",
			line:    `84.242.208.111 - - [11/May/2013:06:31:00 +0200] "GET / HTTP/1.1" 200 5 "-"`,
			wantErr: ErrNoMatch,
		},
		{
			name:    "missing timestamp brackets",
			line:    `84.242.208.111 - - 11/May/2013:06:31:00 +0200 "GET / HTTP/1.1" 200 5 "-" "ua"`,
			wantErr: ErrNoMatch,
		},
		{
			name:    "request line without protocol",
			line:    `84.242.208.111 - - [11/May/2013:06:31:00 +0200] "GET" 200 5 "-" "ua"`,
			wantErr: ErrNoMatch,
		},
		{
			name:    "free text",
			line:    "this is not an access log line",
			wantErr: ErrNoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.ParseLine(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, LogRecord{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCombinedParser_RoundTrip(t *testing.T) {
	p := &CombinedParser{}

	records := []LogRecord{
		{URL: "/", StatusCode: 200, Traffic: 0, UserAgent: "mozilla/5.0"},
		{URL: "/img/logo.png", StatusCode: 301, Traffic: 99999, UserAgent: "mozilla/5.0 (compatible; bingbot/2.0)"},
		{URL: "/path with spaces", StatusCode: 503, Traffic: 1, UserAgent: "mozilla/5.0 (compatible; yahoo! slurp; http://help.yahoo.com/help/us/ysearch/slurp)"},
	}

	for _, want := range records {
		line := combinedLine(want.URL, fmt.Sprint(want.StatusCode), fmt.Sprint(want.Traffic), want.UserAgent)
		got, err := p.ParseLine(line)
		require.NoError(t, err, line)
		assert.Equal(t, want, got)
	}
}

func TestCombinedParser_Name(t *testing.T) {
	assert.Equal(t, "combined", (&CombinedParser{}).Name())
}
