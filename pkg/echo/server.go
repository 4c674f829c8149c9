// Package echo implements the greeting line protocol: after a version
// handshake, the server responds to every line it receives with the line
// prefixed by "Hello, ".
package echo

import (
	"context"
	"net"
	"sync"

	"github.com/pkg/errors"

	"github.com/vegansk/asyncstreams/pkg/asyncstreams"
	"github.com/vegansk/asyncstreams/pkg/identifier"
	"github.com/vegansk/asyncstreams/pkg/logging"
	"github.com/vegansk/asyncstreams/pkg/must"
	"github.com/vegansk/asyncstreams/pkg/stream"
)

const (
	// greetingPrefix is prepended to every line received by the server.
	greetingPrefix = "Hello, "
)

// Greeting computes the server's response to a line.
func Greeting(line string) string {
	return greetingPrefix + line
}

// Serve accepts connections from the specified listener and serves the
// greeting protocol on each of them until the context is cancelled or the
// listener fails. The listener is closed when Serve returns, and Serve waits
// for in-flight connections to finish. The logger and metrics may be nil.
func Serve(ctx context.Context, listener net.Listener, logger *logging.Logger, metrics *Metrics) error {
	// Track connection handlers so that we can wait for them to exit. The wait
	// is deferred first so that it runs after cancellation.
	var handlers sync.WaitGroup
	defer handlers.Wait()

	// Close the listener when serving is cancelled in order to unblock Accept.
	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-serveCtx.Done()
		listener.Close()
	}()

	// Accept and handle connections.
	logger.Infof("Serving greetings on %s", listener.Addr())
	for {
		connection, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrap(err, "unable to accept connection")
		}
		metrics.connectionAccepted()

		// Compute a logger for the connection.
		connectionLogger := logger
		if name, err := identifier.New(identifier.PrefixConnection); err != nil {
			logger.Warnf("Unable to generate connection identifier: %v", err)
		} else {
			connectionLogger = logger.Sublogger(name)
		}

		// Handle the connection in the background. Closing the stream when
		// serving is cancelled unblocks any pending read.
		s := stream.NewSocketStream(connection, connectionLogger)
		handlers.Add(1)
		go func() {
			defer handlers.Done()
			done := make(chan struct{})
			defer close(done)
			go func() {
				select {
				case <-serveCtx.Done():
					connection.Close()
				case <-done:
				}
			}()
			if err := handle(s, connectionLogger, metrics); err != nil {
				connectionLogger.Warnf("Connection failed: %v", err)
			}
		}()
	}
}

// handle serves the greeting protocol on a single connection, closing the
// stream when complete.
func handle(connection *stream.SocketStream, logger *logging.Logger, metrics *Metrics) error {
	defer must.Close(connection, logger)
	logger.Debug("Accepted connection")
	s := metrics.audit(connection)

	// Perform the version handshake.
	if err := asyncstreams.ServerVersionHandshake(s); err != nil {
		metrics.handshakeFailed()
		return errors.Wrap(err, "version handshake failed")
	}

	// Greet each line until the client disconnects.
	var count int
	for {
		line, err := stream.ReadLine(s)
		if err != nil {
			return errors.Wrap(err, "unable to read line")
		} else if s.AtEnd() && line == "" {
			break
		}
		logger.Tracef("Received %q", line)
		metrics.lineGreeted()
		if err := stream.WriteLine(s, Greeting(line)); err != nil {
			return errors.Wrap(err, "unable to write greeting")
		}
		if err := s.Flush(); err != nil {
			return errors.Wrap(err, "unable to flush greeting")
		}
		count++
	}

	// Done.
	logger.Debugf("Connection closed by client after %d line(s)", count)
	return nil
}
