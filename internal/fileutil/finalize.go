// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const ownerReadWrite = 0o600

// AppendSuffix returns the path of the file produced from filename by adding suffix.
func AppendSuffix(filename, suffix string) string {
	return filename + suffix
}

// StripSuffix removes suffix from filename.
// It reports false if filename does not end with suffix or consists of the suffix alone.
func StripSuffix(filename, suffix string) (string, bool) {
	stripped, found := strings.CutSuffix(filename, suffix)
	if !found || stripped == "" || strings.HasSuffix(stripped, "/") {
		return "", false
	}

	return stripped, true
}

// CreateOutput opens path for writing, creating it owner read/write or truncating an existing file.
func CreateOutput(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_RDWR, ownerReadWrite) //nolint:gosec // path is chosen by the caller
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w", path, err)
	}

	return file, nil
}

// FinalizeOutput optionally copies modTime onto the output and returns its size.
func FinalizeOutput(outPath string, preserveTimestamps bool, modTime time.Time) (int64, error) {
	if preserveTimestamps {
		if err := os.Chtimes(outPath, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", outPath, err)
	}

	return info.Size(), nil
}
