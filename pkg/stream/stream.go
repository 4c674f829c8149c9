// Package stream provides a uniform stream abstraction over in-memory buffers,
// files, and network connections, along with character, line, and fixed-width
// value operations implemented once on top of it.
//
// A stream is obtained from exactly one backend constructor (NewStringStream,
// NewFileStream, OpenFileStream, or NewSocketStream) and is then used only via
// the Stream interface and the functions in this package. Streams perform no
// internal locking: concurrent operations on the same stream must be
// serialized by the caller, while distinct streams are fully independent.
package stream

// Stream is the capability table that every backend binds. Backends that can't
// meaningfully support a capability bind it to one of the policy types in this
// package: NotSeekable fails loudly, while NoFlush succeeds trivially.
type Stream interface {
	// Close releases the stream's underlying resource. Subsequent operations
	// on the stream fail.
	Close() error
	// AtEnd returns whether or not the stream has been exhausted or closed.
	AtEnd() bool
	// GetPosition returns the current offset within the stream.
	GetPosition() (int64, error)
	// SetPosition moves the current offset within the stream.
	SetPosition(position int64) error
	// ReadRaw reads up to size bytes from the stream. A zero-length result
	// with a nil error indicates end of stream.
	ReadRaw(size int) ([]byte, error)
	// WriteRaw writes all of the specified data to the stream.
	WriteRaw(data []byte) error
	// Flush forces transmission of any buffered stream data.
	Flush() error
}

// NotSeekable implements the position capabilities for streams that have no
// addressable offset. Both methods panic with an *AssertionError wrapping
// ErrNotImplemented.
type NotSeekable struct{}

// GetPosition implements Stream.GetPosition.
func (NotSeekable) GetPosition() (int64, error) {
	fail("GetPosition", ErrNotImplemented)
	return 0, nil
}

// SetPosition implements Stream.SetPosition.
func (NotSeekable) SetPosition(_ int64) error {
	fail("SetPosition", ErrNotImplemented)
	return nil
}

// NoFlush implements the flush capability for streams that don't buffer beyond
// their raw read and write primitives.
type NoFlush struct{}

// Flush implements Stream.Flush.
func (NoFlush) Flush() error {
	return nil
}
