// Package must provides best-effort cleanup helpers for paths where an error
// can't be returned (typically deferred calls). Failures are logged as
// warnings rather than silently dropped.
package must

import (
	"io"
	"os"

	"github.com/vegansk/asyncstreams/pkg/logging"
)

// Close closes the specified closer, logging any failure.
func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("Unable to close: %s", err.Error())
	}
}

// OSRemove removes the specified path, logging any failure.
func OSRemove(name string, logger *logging.Logger) {
	if err := os.Remove(name); err != nil {
		logger.Warnf("Unable to remove '%s': %s", name, err.Error())
	}
}

// Succeed logs the specified error (if any) as a failure of the named task.
func Succeed(err error, task string, logger *logging.Logger) {
	if err != nil {
		logger.Warnf("Unable to succeed at %s; %s", task, err.Error())
	}
}
