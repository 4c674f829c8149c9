package echo

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vegansk/asyncstreams/pkg/stream"
)

// metricsNamespace is the namespace used for all greeting server metrics.
const metricsNamespace = "asyncstreams"

// Metrics collects greeting server activity. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// connections counts accepted connections.
	connections prometheus.Counter
	// handshakeFailures counts connections rejected during the handshake.
	handshakeFailures prometheus.Counter
	// lines counts greeted lines.
	lines prometheus.Counter
	// bytesRead counts bytes received from clients.
	bytesRead prometheus.Counter
	// bytesWritten counts bytes sent to clients.
	bytesWritten prometheus.Counter
}

// NewMetrics creates greeting server metrics and registers them with the
// specified registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	// Create the collectors.
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "echo",
			Name:      name,
			Help:      help,
		})
	}
	metrics := &Metrics{
		connections:       counter("connections_total", "Total number of accepted connections."),
		handshakeFailures: counter("handshake_failures_total", "Total number of failed version handshakes."),
		lines:             counter("lines_total", "Total number of greeted lines."),
		bytesRead:         counter("bytes_read_total", "Total number of bytes read from clients."),
		bytesWritten:      counter("bytes_written_total", "Total number of bytes written to clients."),
	}

	// Register the collectors.
	for _, collector := range []prometheus.Collector{
		metrics.connections,
		metrics.handshakeFailures,
		metrics.lines,
		metrics.bytesRead,
		metrics.bytesWritten,
	} {
		if err := registerer.Register(collector); err != nil {
			return nil, errors.Wrap(err, "unable to register metric")
		}
	}

	// Done.
	return metrics, nil
}

// audit wraps a connection stream so that its raw transfers are counted.
func (m *Metrics) audit(s stream.Stream) stream.Stream {
	if m == nil {
		return s
	}
	return stream.NewAuditStream(s,
		func(count uint64) { m.bytesRead.Add(float64(count)) },
		func(count uint64) { m.bytesWritten.Add(float64(count)) },
	)
}

// connectionAccepted records an accepted connection.
func (m *Metrics) connectionAccepted() {
	if m != nil {
		m.connections.Inc()
	}
}

// handshakeFailed records a failed handshake.
func (m *Metrics) handshakeFailed() {
	if m != nil {
		m.handshakeFailures.Inc()
	}
}

// lineGreeted records a greeted line.
func (m *Metrics) lineGreeted() {
	if m != nil {
		m.lines.Inc()
	}
}
