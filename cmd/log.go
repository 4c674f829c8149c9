package cmd

import (
	"io"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/vegansk/asyncstreams/pkg/logging"
)

func init() {
	// Silence the default logger.
	log.SetOutput(io.Discard)
}

// NewLogger creates a root logger writing to standard error at the named log
// level.
func NewLogger(levelName string) (*logging.Logger, error) {
	level, ok := logging.NameToLevel(levelName)
	if !ok {
		return nil, errors.Errorf("invalid log level: %s", levelName)
	}
	return logging.NewLogger(level, os.Stderr), nil
}
