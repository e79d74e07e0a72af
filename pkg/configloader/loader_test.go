package configloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyp3rd/logship"
)

const sampleYAML = `
base_path: /var/log/myapp
max_lines: 500
max_size_kb: 64
destination_url: https://collector.example.com/ingest
worker_path: /usr/local/bin/logship-worker
staging_dir: /var/spool/logship
async_timeout_seconds: 20
sync_timeout_seconds: 3
`

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "/var/log/myapp", cfg.BasePath)
	assert.Equal(t, 500, cfg.MaxLines)
	assert.Equal(t, 64, cfg.MaxSizeKB)
	assert.Equal(t, "https://collector.example.com/ingest", cfg.DestinationURL)
	assert.Equal(t, "/usr/local/bin/logship-worker", cfg.WorkerPath)
	assert.Equal(t, "/var/spool/logship", cfg.StagingDir)
	assert.Equal(t, 20*time.Second, cfg.AsyncTimeout)
	assert.Equal(t, 3*time.Second, cfg.SyncTimeout)
}

func TestFromYAMLKeepsDefaultsForUnsetKeys(t *testing.T) {
	cfg, err := FromYAML([]byte("base_path: /var/log/myapp\n"))
	require.NoError(t, err)

	assert.Equal(t, "/var/log/myapp", cfg.BasePath)
	assert.Equal(t, logship.DefaultMaxLines, cfg.MaxLines)
	assert.Equal(t, logship.DefaultMaxSizeKB, cfg.MaxSizeKB)
	assert.Equal(t, logship.DefaultAsyncTimeout, cfg.AsyncTimeout)
	assert.Equal(t, logship.DefaultSyncTimeout, cfg.SyncTimeout)
	assert.Equal(t, os.TempDir(), cfg.StagingDir)
}

func TestFromYAMLRejectsMalformedDocument(t *testing.T) {
	_, err := FromYAML([]byte("base_path: [unclosed"))
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOGSHIP_BASE_PATH", "/srv/logs")
	t.Setenv("LOGSHIP_MAX_LINES", "250")
	t.Setenv("LOGSHIP_DESTINATION_URL", "https://collector.example.com")
	t.Setenv("LOGSHIP_SYNC_TIMEOUT_SECONDS", "7")

	cfg, err := FromEnv("logship")
	require.NoError(t, err)

	assert.Equal(t, "/srv/logs", cfg.BasePath)
	assert.Equal(t, 250, cfg.MaxLines)
	assert.Equal(t, "https://collector.example.com", cfg.DestinationURL)
	assert.Equal(t, 7*time.Second, cfg.SyncTimeout)
	assert.Equal(t, logship.DefaultMaxSizeKB, cfg.MaxSizeKB)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logship.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/log/myapp", cfg.BasePath)
	assert.Equal(t, 500, cfg.MaxLines)
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
