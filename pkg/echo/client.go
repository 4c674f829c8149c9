package echo

import (
	"context"
	"net"

	"github.com/pkg/errors"

	"github.com/vegansk/asyncstreams/pkg/asyncstreams"
	"github.com/vegansk/asyncstreams/pkg/logging"
	"github.com/vegansk/asyncstreams/pkg/must"
	"github.com/vegansk/asyncstreams/pkg/stream"
)

// Dial connects to a greeting server at the specified TCP address and performs
// the client side of the version handshake. The logger may be nil.
func Dial(ctx context.Context, address string, logger *logging.Logger) (*stream.SocketStream, error) {
	// Connect to the server.
	var dialer net.Dialer
	connection, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect to server")
	}
	s := stream.NewSocketStream(connection, logger)

	// Perform the version handshake.
	if err := asyncstreams.ClientVersionHandshake(s); err != nil {
		must.Close(s, logger)
		return nil, errors.Wrap(err, "version handshake failed")
	}

	// Success.
	return s, nil
}

// Greet sends a single line to the server and returns its response. It must be
// invoked on a stream that has completed the client handshake.
func Greet(s stream.Stream, name string) (string, error) {
	// Send the line.
	if err := stream.WriteLine(s, name); err != nil {
		return "", errors.Wrap(err, "unable to send line")
	} else if err = s.Flush(); err != nil {
		return "", errors.Wrap(err, "unable to flush line")
	}

	// Read the response.
	response, err := stream.ReadLine(s)
	if err != nil {
		return "", errors.Wrap(err, "unable to receive response")
	} else if s.AtEnd() && response == "" {
		return "", errors.New("server closed connection")
	}

	// Success.
	return response, nil
}
