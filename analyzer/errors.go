package analyzer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPath is returned when the log path is empty or blank.
	ErrInvalidPath = errors.New("file path is empty")

	// ErrFile matches every *FileError through errors.Is.
	ErrFile = errors.New("file error")
)

// FileError reports a log file that could not be opened or read.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func (e *FileError) Is(target error) bool {
	return target == ErrFile
}
