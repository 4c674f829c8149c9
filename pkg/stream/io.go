package stream

import (
	"io"
)

// readWriteCloser adapts a Stream to io.ReadWriteCloser.
type readWriteCloser struct {
	// stream is the underlying stream.
	stream Stream
}

// NewReadWriteCloser adapts a stream for use with consumers of the io package.
// Reads return io.EOF whenever a raw read returns no data.
func NewReadWriteCloser(stream Stream) io.ReadWriteCloser {
	return &readWriteCloser{stream}
}

// Read implements io.Reader.Read.
func (a *readWriteCloser) Read(buffer []byte) (int, error) {
	if len(buffer) == 0 {
		return 0, nil
	}
	data, err := a.stream.ReadRaw(len(buffer))
	if err != nil {
		return copy(buffer, data), err
	} else if len(data) == 0 {
		return 0, io.EOF
	}
	return copy(buffer, data), nil
}

// Write implements io.Writer.Write.
func (a *readWriteCloser) Write(buffer []byte) (int, error) {
	if err := WriteBuffer(a.stream, buffer); err != nil {
		return 0, err
	}
	return len(buffer), nil
}

// Close implements io.Closer.Close.
func (a *readWriteCloser) Close() error {
	return a.stream.Close()
}
