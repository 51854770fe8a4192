package main

import (
	"io"
	"log/slog"
)

// newCleanup closes the health gateway connection before the store the
// health monitor probes. Either may be nil.
func newCleanup(healthConn, store io.Closer) func() {
	return func() {
		if healthConn != nil {
			if err := healthConn.Close(); err != nil {
				slog.Error("failed to close health connection", slog.String("error", err.Error()))
			}
		}

		if store != nil {
			if err := store.Close(); err != nil {
				slog.Error("failed to close store", slog.String("error", err.Error()))
			}
		}
	}
}
