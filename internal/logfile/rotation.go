package logfile

import (
	"bytes"
	"os"
	"time"
)

// newline is the segment delimiter countLines scans for.
var newline = []byte{'\n'}

const (
	// maxLineScan caps the per-write line count scan. Files past the cap
	// report exactly maxLineScan lines, so pathologically large files do not
	// incur an unbounded scan on every write. A file over the cap whose
	// MaxLines threshold is above the cap will stop rotating on line count;
	// size-based rotation still applies. This is a documented approximation,
	// not a precision guarantee.
	maxLineScan = 20000

	// rotationTimeLayout is the suffix appended to rotated files.
	rotationTimeLayout = "20060102_150405"

	bytesPerKB = 1024
)

// Thresholds are the per-write rotation limits.
type Thresholds struct {
	// MaxLines is the maximum line count before the file is rotated.
	MaxLines int
	// MaxSizeKB is the maximum size in KiB before the file is rotated.
	MaxSizeKB int
}

// shouldRotate decides whether a file with the given size and line count must
// be rotated before the next append. It is only meaningful for files that
// already exist; a fresh file never rotates.
func shouldRotate(sizeBytes int64, lineCount int, t Thresholds) bool {
	if t.MaxSizeKB > 0 && sizeBytes/bytesPerKB > int64(t.MaxSizeKB) {
		return true
	}

	if t.MaxLines > 0 && lineCount > t.MaxLines {
		return true
	}

	return false
}

// countLines returns the number of newline-delimited segments in the file at
// path, capped at maxLineScan. A newline-terminated file of n entries counts
// n+1 segments; this is the historical semantics the rotation thresholds were
// tuned against, so a file holding exactly MaxLines entries rotates on the
// next write. A file that cannot be opened counts zero, which simply
// suppresses line-based rotation for this write.
func countLines(path string) int {
	file, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer file.Close()

	lines := 1
	buf := make([]byte, 32*bytesPerKB)

	for {
		n, err := file.Read(buf)

		lines += bytes.Count(buf[:n], newline)
		if lines >= maxLineScan {
			return maxLineScan
		}

		if err != nil {
			return lines
		}
	}
}

// rotatedName builds the destination path for a rotation at the given instant.
func rotatedName(path string, now time.Time) string {
	return path + "." + now.Format(rotationTimeLayout)
}
