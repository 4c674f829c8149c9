package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vegansk/asyncstreams/cmd"
	"github.com/vegansk/asyncstreams/pkg/echo"
	"github.com/vegansk/asyncstreams/pkg/logging"
	"github.com/vegansk/asyncstreams/pkg/must"
)

// serveMetrics serves Prometheus metrics from the specified registry on the
// specified address until the returned server is shut down.
func serveMetrics(address string, registry *prometheus.Registry, logger *logging.Logger) (*http.Server, error) {
	// Create the listener up front so that address errors are reported
	// synchronously.
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, errors.Wrap(err, "unable to listen for metrics requests")
	}

	// Create the server.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{
		Handler:  mux,
		ErrorLog: log.New(logger.Writer(logging.LevelWarn), "", 0),
	}

	// Serve in the background.
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Errorf("Metrics server failed: %v", err)
		}
	}()
	logger.Infof("Serving metrics on http://%s/metrics", listener.Addr())

	// Success.
	return server, nil
}

// serveMain is the entry point for the serve command.
func serveMain(_ *cobra.Command, _ []string) error {
	// Compute the effective addresses.
	listen := loaded.configuration.Listen
	if serveConfiguration.listen != "" {
		listen = serveConfiguration.listen
	}
	metricsAddress := loaded.configuration.Metrics
	if serveConfiguration.metrics != "" {
		metricsAddress = serveConfiguration.metrics
	}
	logger := loaded.logger.Sublogger("serve")

	// Create a channel to track termination signals. We do this before creating
	// and starting other infrastructure so that we can ensure things terminate
	// smoothly, not mid-initialization.
	signalTermination := make(chan os.Signal, 1)
	signal.Notify(signalTermination, cmd.TerminationSignals...)

	// Set up metrics if requested.
	var metrics *echo.Metrics
	if metricsAddress != "" {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		var err error
		if metrics, err = echo.NewMetrics(registry); err != nil {
			return errors.Wrap(err, "unable to create metrics")
		}
		server, err := serveMetrics(metricsAddress, registry, logger.Sublogger("metrics"))
		if err != nil {
			return err
		}
		defer func() {
			must.Succeed(server.Close(), "metrics server shutdown", logger)
		}()
	}

	// Create the greeting listener.
	listener, err := net.Listen("tcp", listen)
	if err != nil {
		return errors.Wrap(err, "unable to listen for connections")
	}

	// Serve in a separate Goroutine, watching for serving failure.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- echo.Serve(ctx, listener, logger, metrics)
	}()

	// Wait for termination from a signal or the server.
	select {
	case sig := <-signalTermination:
		logger.Infof("Terminating on %s", sig)
		cancel()
		<-serverErrors
		return nil
	case err = <-serverErrors:
		return errors.Wrap(err, "premature server termination")
	}
}

// serveCommand is the serve command.
var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Run the greeting server",
	Args:  cmd.DisallowArguments,
	Run:   cmd.Mainify(serveMain),
}

// serveConfiguration stores configuration for the serve command.
var serveConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// listen overrides the configured listen address.
	listen string
	// metrics overrides the configured metrics address.
	metrics string
}

func init() {
	// Grab a handle for the command line flags.
	flags := serveCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&serveConfiguration.help, "help", "h", false, "Show help information")

	// Wire up serving flags.
	flags.StringVar(&serveConfiguration.listen, "listen", "", "Specify the address on which to listen")
	flags.StringVar(&serveConfiguration.metrics, "metrics", "", "Specify the address on which to serve Prometheus metrics")
}
