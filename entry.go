// Package logship is a minimal logging and telemetry shim for applications
// that need crash reporting without a full observability stack.
//
// It provides two independent capabilities:
//   - A local log writer that appends structured entries to rotating files,
//     safe across goroutines and across independent processes (serialization
//     is enforced with an advisory file lock, not an in-process mutex alone).
//   - A best-effort relay that forwards exception payloads to a remote
//     collector, either synchronously with a bounded timeout or
//     asynchronously through a detached worker process that outlives the
//     caller.
//
// The central design contract is that nothing in this package ever raises to
// the caller on the write or async-report paths: a telemetry subsystem must
// never be the cause of an application-level fault. Absorbed failures are
// routed to a configurable ErrorHandler so hosts that want diagnostics can
// still observe them.
//
// Basic usage:
//
//	shim, err := logship.New(logship.Config{
//		BasePath:       "/var/log/myapp",
//		DestinationURL: "https://collector.example.com/ingest",
//	})
//	if err != nil {
//		panic(err)
//	}
//
//	shim.Log("app.log", "startup complete", map[string]any{"pid": os.Getpid()})
//	shim.Report(map[string]any{"exception": "…"})
package logship

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hyp3rd/ewrap"
)

// EntryTimeLayout is the wall-clock layout used in the entry header.
const EntryTimeLayout = "2006-01-02 15:04:05"

// Entry is a single log record. Once formatted it is immutable and written
// atomically as one blob.
type Entry struct {
	// Timestamp is the wall-clock time of the entry, second precision.
	Timestamp time.Time
	// Title is a short description line.
	Title string
	// Body is the entry payload, already serialized if originally structured.
	Body string
}

// Format renders the entry in its wire format:
//
//	[YYYY-MM-DD HH:MM:SS] <title>
//	<body>
//
// followed by a blank line. The format is stable and consumed by external
// tooling; do not change it.
func (e Entry) Format() string {
	return fmt.Sprintf("[%s] %s\n%s\n\n", e.Timestamp.Format(EntryTimeLayout), e.Title, e.Body)
}

// EncodeBody converts arbitrary content into an entry body. Strings, byte
// slices and errors pass through verbatim; everything else is JSON-encoded
// with HTML escaping disabled so unicode and forward slashes appear unescaped.
func EncodeBody(content any) (string, error) {
	switch v := content.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case error:
		return v.Error(), nil
	case fmt.Stringer:
		return v.String(), nil
	}

	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	err := encoder.Encode(content)
	if err != nil {
		return "", ewrap.Wrap(err, "encoding log body")
	}

	// json.Encoder terminates the stream with a newline the entry format
	// already provides.
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// EncodePayload serializes a reporting payload for remote delivery using the
// same escaping rules as EncodeBody. Byte slices are treated as pre-serialized
// and pass through untouched.
func EncodePayload(payload any) ([]byte, error) {
	if raw, ok := payload.([]byte); ok {
		return raw, nil
	}

	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	err := encoder.Encode(payload)
	if err != nil {
		return nil, ewrap.Wrap(err, "encoding report payload")
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
