package relay

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWorkerDeliversAndConsumes(t *testing.T) {
	var (
		requests    atomic.Int64
		gotBody     []byte
		contentType string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		contentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer server.Close()

	path, err := Stage(t.TempDir(), []byte(`{"exception":"boom"}`))
	require.NoError(t, err)

	err = RunWorker(path, server.URL, 2*time.Second)
	require.NoError(t, err)

	assert.Equal(t, int64(1), requests.Load())
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, `{"exception":"boom"}`, string(gotBody))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "staging file must be deleted before delivery")
}

func TestRunWorkerMissingStagingFile(t *testing.T) {
	var requests atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	err := RunWorker(filepath.Join(t.TempDir(), "already-consumed"), server.URL, time.Second)
	require.NoError(t, err)

	assert.Equal(t, int64(0), requests.Load(), "nothing to deliver means no request")
}

func TestRunWorkerIgnoresDeliveryFailure(t *testing.T) {
	path, err := Stage(t.TempDir(), []byte("payload"))
	require.NoError(t, err)

	// Port 1 refuses immediately; the worker must still report success and
	// must still have consumed the staging file.
	err = RunWorker(path, "http://127.0.0.1:1/ingest", time.Second)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDeliverRespectsTimeout(t *testing.T) {
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))

	defer server.Close()
	defer close(release)

	start := time.Now()
	err := Deliver(context.Background(), server.URL, []byte("payload"), 50*time.Millisecond)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Less(t, elapsed, time.Second, "a stalled collector must not hold the caller past the bound")
}

func TestDeliverIgnoresResponseStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "collector rejected it", http.StatusBadGateway)
	}))
	defer server.Close()

	err := Deliver(context.Background(), server.URL, []byte("payload"), time.Second)
	assert.NoError(t, err, "the response is not parsed or validated")
}
