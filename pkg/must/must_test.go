package must

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/vegansk/asyncstreams/pkg/logging"
)

// failingCloser is an io.Closer that always fails.
type failingCloser struct{}

// Close implements io.Closer.Close.
func (failingCloser) Close() error {
	return errors.New("close failed")
}

// TestCloseLogsFailure tests that Close logs a warning on failure.
func TestCloseLogsFailure(t *testing.T) {
	buffer := &bytes.Buffer{}
	Close(failingCloser{}, logging.NewLogger(logging.LevelWarn, buffer))
	if !strings.Contains(buffer.String(), "Unable to close: close failed") {
		t.Error("close failure not logged:", buffer.String())
	}
}

// TestSucceedNilError tests that Succeed is silent for nil errors.
func TestSucceedNilError(t *testing.T) {
	buffer := &bytes.Buffer{}
	Succeed(nil, "nothing", logging.NewLogger(logging.LevelWarn, buffer))
	if buffer.Len() != 0 {
		t.Error("unexpected output:", buffer.String())
	}
}

// TestOSRemoveNilLogger tests that failures with a nil logger don't panic.
func TestOSRemoveNilLogger(t *testing.T) {
	OSRemove("/this/does/not/exist", nil)
}
