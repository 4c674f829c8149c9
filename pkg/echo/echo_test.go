package echo

import (
	"context"
	"encoding/binary"
	"net"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/nettest"

	"github.com/vegansk/asyncstreams/pkg/asyncstreams"
	"github.com/vegansk/asyncstreams/pkg/stream"
)

// startServer starts a greeting server on a local listener and returns its
// address. The server is stopped when the test completes.
func startServer(t *testing.T, metrics *Metrics) string {
	t.Helper()
	listener, err := nettest.NewLocalListener("tcp")
	if err != nil {
		t.Fatal("unable to create listener:", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, listener, nil, metrics)
	}()
	t.Cleanup(func() {
		cancel()
		if err := <-done; !errors.Is(err, context.Canceled) {
			t.Error("unexpected server error:", err)
		}
	})
	return listener.Addr().String()
}

// gatherCounters collects the current counter values from a registry, keyed by
// metric name.
func gatherCounters(t *testing.T, gatherer prometheus.Gatherer) map[string]float64 {
	t.Helper()
	families, err := gatherer.Gather()
	if err != nil {
		t.Fatal("unable to gather metrics:", err)
	}
	counters := make(map[string]float64, len(families))
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			counters[family.GetName()] += metric.GetCounter().GetValue()
		}
	}
	return counters
}

// TestGreeting tests greeting computation.
func TestGreeting(t *testing.T) {
	if greeting := Greeting("World!"); greeting != "Hello, World!" {
		t.Error("unexpected greeting:", greeting)
	}
	if greeting := Greeting(""); greeting != "Hello, " {
		t.Error("unexpected empty greeting:", greeting)
	}
}

// TestServeGreet tests a full client session against a live server.
func TestServeGreet(t *testing.T) {
	// Start the server with metrics.
	registry := prometheus.NewRegistry()
	metrics, err := NewMetrics(registry)
	if err != nil {
		t.Fatal("unable to create metrics:", err)
	}
	address := startServer(t, metrics)

	// Connect and exchange greetings.
	s, err := Dial(context.Background(), address, nil)
	if err != nil {
		t.Fatal("unable to dial server:", err)
	}
	for _, name := range []string{"World!", "asyncstreams", ""} {
		if response, err := Greet(s, name); err != nil {
			t.Fatalf("unable to greet %q: %v", name, err)
		} else if response != Greeting(name) {
			t.Errorf("unexpected response for %q: %q", name, response)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatal("unable to close stream:", err)
	}

	// Verify metrics. Lines and transfers are recorded before the
	// corresponding response reaches the client.
	counters := gatherCounters(t, registry)
	if lines := counters["asyncstreams_echo_lines_total"]; lines != 3 {
		t.Error("unexpected line count:", lines)
	}
	if connections := counters["asyncstreams_echo_connections_total"]; connections != 1 {
		t.Error("unexpected connection count:", connections)
	}
	if read := counters["asyncstreams_echo_bytes_read_total"]; read < 12 {
		t.Error("unexpected read byte count:", read)
	}
	if written := counters["asyncstreams_echo_bytes_written_total"]; written < 12 {
		t.Error("unexpected written byte count:", written)
	}
}

// TestServeVersionMismatch tests that the server rejects an incompatible
// client.
func TestServeVersionMismatch(t *testing.T) {
	// Start the server with metrics.
	registry := prometheus.NewRegistry()
	metrics, err := NewMetrics(registry)
	if err != nil {
		t.Fatal("unable to create metrics:", err)
	}
	address := startServer(t, metrics)

	// Connect and send an incompatible version.
	connection, err := net.Dial("tcp", address)
	if err != nil {
		t.Fatal("unable to connect:", err)
	}
	s := stream.NewSocketStream(connection, nil)
	defer s.Close()
	if _, _, _, err := asyncstreams.ReceiveVersion(s); err != nil {
		t.Fatal("unable to receive server version:", err)
	}
	for _, component := range []uint32{asyncstreams.VersionMajor + 1, 0, 0} {
		if err := stream.WriteValueOrder(s, binary.BigEndian, component); err != nil {
			t.Fatal("unable to send version component:", err)
		}
	}

	// The server should close the connection without responding.
	if data, err := stream.ReadAll(s); err != nil {
		t.Fatal("unable to read remainder:", err)
	} else if len(data) != 0 {
		t.Errorf("unexpected response: %q", data)
	}
	if failures := gatherCounters(t, registry)["asyncstreams_echo_handshake_failures_total"]; failures != 1 {
		t.Error("unexpected handshake failure count:", failures)
	}
}

// TestServeCancellation tests that cancellation terminates active connections.
func TestServeCancellation(t *testing.T) {
	// Start the server.
	listener, err := nettest.NewLocalListener("tcp")
	if err != nil {
		t.Fatal("unable to create listener:", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, listener, nil, nil)
	}()

	// Connect and leave the connection idle.
	s, err := Dial(context.Background(), listener.Addr().String(), nil)
	if err != nil {
		t.Fatal("unable to dial server:", err)
	}
	defer s.Close()

	// Cancel serving and ensure that the server exits and the connection ends.
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Error("unexpected server error:", err)
	}
	if _, ok, err := stream.ReadChar(s); err != nil {
		t.Fatal("unable to read character:", err)
	} else if ok {
		t.Error("character received after cancellation")
	}
	if !s.AtEnd() {
		t.Error("connection not at end after cancellation")
	}
}

// TestNilMetrics tests that nil metrics are safe to use.
func TestNilMetrics(t *testing.T) {
	var metrics *Metrics
	metrics.connectionAccepted()
	metrics.handshakeFailed()
	metrics.lineGreeted()
	s := stream.NewStringStream(nil)
	if metrics.audit(s) != stream.Stream(s) {
		t.Error("nil metrics wrapped stream")
	}
}

// TestNewMetricsDuplicate tests that duplicate registration fails.
func TestNewMetricsDuplicate(t *testing.T) {
	registry := prometheus.NewRegistry()
	if _, err := NewMetrics(registry); err != nil {
		t.Fatal("unable to create metrics:", err)
	}
	if _, err := NewMetrics(registry); err == nil {
		t.Error("duplicate metric registration succeeded")
	}
}
