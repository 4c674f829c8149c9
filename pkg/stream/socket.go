package stream

import (
	"io"
	"net"

	"github.com/vegansk/asyncstreams/pkg/logging"
)

// SocketStream is a stream backed by a connected network connection. It has no
// position: GetPosition and SetPosition panic. The stream reports that it's at
// its end once it's closed locally or once a raw read observes that the peer
// has closed the connection.
type SocketStream struct {
	NotSeekable
	NoFlush
	// connection is the underlying connection.
	connection net.Conn
	// logger is the underlying logger.
	logger *logging.Logger
	// closed indicates whether or not the stream has been closed, either
	// locally or by the peer.
	closed bool
}

// NewSocketStream creates a new socket stream that takes ownership of an
// existing connected connection. The logger may be nil.
func NewSocketStream(connection net.Conn, logger *logging.Logger) *SocketStream {
	logger.Tracef("Wrapping connection to %s", connection.RemoteAddr())
	return &SocketStream{
		connection: connection,
		logger:     logger,
	}
}

// Close implements Stream.Close.
func (s *SocketStream) Close() error {
	s.closed = true
	s.logger.Tracef("Closing connection to %s", s.connection.RemoteAddr())
	return s.connection.Close()
}

// AtEnd implements Stream.AtEnd.
func (s *SocketStream) AtEnd() bool {
	return s.closed
}

// ReadRaw implements Stream.ReadRaw. It blocks until at least one byte is
// available or the peer closes the connection.
func (s *SocketStream) ReadRaw(size int) ([]byte, error) {
	buffer := make([]byte, size)
	n, err := s.connection.Read(buffer)
	if n > 0 {
		return buffer[:n], nil
	} else if err == io.EOF {
		s.logger.Tracef("Connection to %s closed by peer", s.connection.RemoteAddr())
		s.closed = true
		return buffer[:0], nil
	}
	return buffer[:0], err
}

// WriteRaw implements Stream.WriteRaw.
func (s *SocketStream) WriteRaw(data []byte) error {
	_, err := s.connection.Write(data)
	return err
}
