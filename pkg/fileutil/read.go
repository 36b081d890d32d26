// Package fileutil provides bounded file reads for preference sources.
package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/prefs/internal/errors"
)

// MaxFileSize is the maximum file size we'll read (1MB).
// Preference files are small; anything larger is rejected.
const MaxFileSize = 1024 * 1024 // 1MB

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file up to MaxFileSize.
// It returns an error if the file is larger than the limit. A missing file
// yields an error satisfying errors.Is(err, fs.ErrNotExist).
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast if the size is already known to be too large
	info, err := f.Stat()
	if err == nil {
		if info.IsDir() {
			return nil, errors.Newf("%s is a directory", path)
		}
		if info.Size() > MaxFileSize {
			return nil, ErrFileTooLarge
		}
	}

	r := io.LimitReader(f, MaxFileSize+1)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}
