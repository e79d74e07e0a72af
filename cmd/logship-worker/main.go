// Command logship-worker is the detached delivery worker spawned by the
// logship dispatcher. It takes three positional arguments:
//
//	logship-worker <staging-file> <destination-url> [timeout-seconds]
//
// The worker reads the staging file, deletes it, and posts its contents to
// the destination URL with the given timeout (default 10 seconds). Missing
// required arguments exit 1 with no side effects. Every well-formed
// invocation exits 0, whether or not delivery succeeded: the worker is the
// tail end of a fire-and-forget path and has nobody to report to.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hyp3rd/logship/internal/relay"
)

const requiredArgs = 2

func main() {
	args := os.Args[1:]
	if len(args) < requiredArgs {
		fmt.Fprintln(os.Stderr, "usage: logship-worker <staging-file> <destination-url> [timeout-seconds]")
		os.Exit(1)
	}

	timeout := relay.DefaultDeliveryTimeout

	if len(args) > requiredArgs {
		seconds, err := strconv.Atoi(args[2])
		if err == nil && seconds > 0 {
			timeout = time.Duration(seconds) * time.Second
		}
	}

	relay.RunWorker(args[0], args[1], timeout) //nolint:errcheck
}
