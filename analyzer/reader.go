package analyzer

import (
	"bufio"
	"bytes"
	"io"
)

// lineReader yields lines of at most max bytes. Longer lines are drained
// without being kept so one oversized line cannot stop the scan.
type lineReader struct {
	br  *bufio.Reader
	max int
	buf []byte
}

func newLineReader(r io.Reader, max int) *lineReader {
	return &lineReader{
		br:  bufio.NewReaderSize(r, min(64*1024, max)),
		max: max,
	}
}

// next returns the following line without its terminator. tooLong reports a
// line over the limit; line is then nil and blank tells whether it held only
// whitespace. err is io.EOF once input is exhausted.
func (lr *lineReader) next() (line []byte, tooLong, blank bool, err error) {
	lr.buf = lr.buf[:0]
	blank = true
	read := false

	for {
		chunk, isPrefix, err := lr.br.ReadLine()
		if err != nil {
			if err == io.EOF && read {
				break
			}
			return nil, false, false, err
		}
		read = true

		if blank && len(bytes.TrimSpace(chunk)) > 0 {
			blank = false
		}
		if !tooLong {
			if len(lr.buf)+len(chunk) > lr.max {
				tooLong = true
				lr.buf = lr.buf[:0]
			} else {
				lr.buf = append(lr.buf, chunk...)
			}
		}
		if !isPrefix {
			break
		}
	}

	if tooLong {
		return nil, true, blank, nil
	}
	return lr.buf, false, blank, nil
}
