package stream

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/vegansk/asyncstreams/pkg/filesystem"
)

// expectAssertion runs the specified operation and verifies that it panics
// with an *AssertionError wrapping the specified cause.
func expectAssertion(t *testing.T, cause error, operation func()) {
	t.Helper()
	defer func() {
		recovered := recover()
		if recovered == nil {
			t.Fatal("operation did not panic")
		}
		assertion, ok := recovered.(*AssertionError)
		if !ok {
			t.Fatalf("operation panicked with unexpected value: %v", recovered)
		}
		if !errors.Is(assertion, cause) {
			t.Error("assertion has unexpected cause:", assertion)
		}
	}()
	operation()
}

// TestNotSeekable tests that the not-implemented position policy fails loudly.
func TestNotSeekable(t *testing.T) {
	var policy NotSeekable
	expectAssertion(t, ErrNotImplemented, func() { policy.GetPosition() })
	expectAssertion(t, ErrNotImplemented, func() { policy.SetPosition(0) })
}

// TestNoFlush tests that the no-op flush policy succeeds.
func TestNoFlush(t *testing.T) {
	var policy NoFlush
	if err := policy.Flush(); err != nil {
		t.Error("no-op flush failed:", err)
	}
}

// TestAssertionErrorMessage tests assertion error formatting.
func TestAssertionErrorMessage(t *testing.T) {
	err := &AssertionError{Operation: "WriteRaw", Err: ErrClosed}
	if err.Error() != "stream assertion failed in WriteRaw: stream closed" {
		t.Error("unexpected assertion message:", err.Error())
	}
}

// TestBackendsRoundTripLine tests that a line written to each seekable backend
// reads back unchanged after repositioning, followed by end of stream.
func TestBackendsRoundTripLine(t *testing.T) {
	// Create the streams.
	file, err := OpenFileStream(temporaryPath(t), filesystem.ModeReadWrite, nil)
	if err != nil {
		t.Fatal("unable to open file stream:", err)
	}
	defer file.Close()
	streams := map[string]Stream{
		"string": NewStringStream(nil),
		"file":   file,
	}

	// Process streams.
	for name, s := range streams {
		if err := WriteLine(s, "round trip"); err != nil {
			t.Fatalf("%s: unable to write line: %v", name, err)
		}
		if err := s.Flush(); err != nil {
			t.Fatalf("%s: unable to flush: %v", name, err)
		}
		if err := s.SetPosition(0); err != nil {
			t.Fatalf("%s: unable to reset position: %v", name, err)
		}
		if line, err := ReadLine(s); err != nil {
			t.Fatalf("%s: unable to read line: %v", name, err)
		} else if line != "round trip" {
			t.Errorf("%s: line mismatch: %q", name, line)
		}
		if _, ok, err := ReadChar(s); err != nil {
			t.Fatalf("%s: unable to read character: %v", name, err)
		} else if ok {
			t.Errorf("%s: character read after final line", name)
		}
		if !s.AtEnd() {
			t.Errorf("%s: stream not at end", name)
		}
	}
}
