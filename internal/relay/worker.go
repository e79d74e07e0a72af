package relay

import (
	"context"
	"time"
)

// RunWorker is the detached worker's whole job: consume the staging file,
// then, if it held any data, attempt one delivery within the timeout. The
// delivery outcome is discarded; a returned error only ever means the staging
// file existed but could not be read. An absent staging file is a successful
// no-op, it was already consumed or never created.
func RunWorker(stagingPath, destinationURL string, timeout time.Duration) error {
	payload, err := Consume(stagingPath)
	if err != nil {
		return err
	}

	if len(payload) == 0 {
		return nil
	}

	Deliver(context.Background(), destinationURL, payload, timeout) //nolint:errcheck

	return nil
}
