package util

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
)

// ErrSizeLimitExceeded is returned by SizeLimitedReader once more than its limit has been read.
var ErrSizeLimitExceeded = errors.New("size limit exceeded")

// SizeLimitedReader passes reads through and fails as soon as the total exceeds a limit.
// Unlike io.LimitReader it reports the overflow instead of silently truncating.
type SizeLimitedReader struct {
	reader io.Reader
	limit  int64
	read   int64
}

// NewSizeLimitedReader wraps r with a byte limit.
func NewSizeLimitedReader(r io.Reader, limit int64) *SizeLimitedReader {
	return &SizeLimitedReader{reader: r, limit: limit}
}

func (l *SizeLimitedReader) Read(p []byte) (int, error) {
	n, err := l.reader.Read(p)
	l.read += int64(n)
	if l.read > l.limit {
		return n, ErrSizeLimitExceeded
	}

	return n, err
}

// BytesRead returns the number of bytes consumed so far.
func (l *SizeLimitedReader) BytesRead() int64 {
	return l.read
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}
