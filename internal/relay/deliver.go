package relay

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/hyp3rd/ewrap"
)

// DefaultDeliveryTimeout bounds a POST when no timeout was supplied.
const DefaultDeliveryTimeout = 10 * time.Second

// Deliver performs a single POST of the payload to the destination URL with
// the given timeout. The response status and body are deliberately ignored:
// delivery is best-effort and there is no acknowledgment contract with the
// collector. An error therefore only ever means the request could not be
// sent within its bound.
func Deliver(ctx context.Context, url string, payload []byte, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultDeliveryTimeout
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return ewrap.Wrapf(err, "building delivery request").WithMetadata("url", url)
	}

	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: timeout}

	resp, err := client.Do(req)
	if err != nil {
		return ewrap.Wrapf(err, "posting payload").WithMetadata("url", url)
	}

	// Drain so the connection can be reused, then discard.
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()

	return nil
}
