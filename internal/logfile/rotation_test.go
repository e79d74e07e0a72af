package logfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldRotate(t *testing.T) {
	thresholds := Thresholds{MaxLines: 10000, MaxSizeKB: 2048}

	tests := []struct {
		name  string
		size  int64
		lines int
		t     Thresholds
		want  bool
	}{
		{
			name: "small file stays",
			size: 512, lines: 10,
			t:    thresholds,
			want: false,
		},
		{
			name: "size exactly at threshold stays",
			size: 2048 * 1024, lines: 10,
			t:    thresholds,
			want: false,
		},
		{
			name: "size over threshold rotates",
			size: 2049 * 1024, lines: 10,
			t:    thresholds,
			want: true,
		},
		{
			name: "lines exactly at threshold stays",
			size: 512, lines: 10000,
			t:    thresholds,
			want: false,
		},
		{
			name: "lines over threshold rotates",
			size: 512, lines: 10001,
			t:    thresholds,
			want: true,
		},
		{
			name: "zero thresholds never rotate",
			size: 1 << 30, lines: maxLineScan,
			t:    Thresholds{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldRotate(tt.size, tt.lines, tt.t))
		})
	}
}

func TestCountLines(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		return path
	}

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "empty file", content: "", want: 1},
		{name: "single unterminated line", content: "alpha", want: 1},
		{name: "two unterminated segments", content: "alpha\nbeta", want: 2},
		{name: "three terminated entries", content: "a\nb\nc\n", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(strings.ReplaceAll(tt.name, " ", "-"), tt.content)
			assert.Equal(t, tt.want, countLines(path))
		})
	}

	t.Run("missing file", func(t *testing.T) {
		assert.Equal(t, 0, countLines(filepath.Join(dir, "does-not-exist")))
	})
}

func TestCountLinesCapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.log")

	content := strings.Repeat("x\n", maxLineScan+5000)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	assert.Equal(t, maxLineScan, countLines(path))
}

func TestRotatedName(t *testing.T) {
	instant := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "/var/log/app.log.20240102_030405", rotatedName("/var/log/app.log", instant))
}
