package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vegansk/asyncstreams/cmd"
	"github.com/vegansk/asyncstreams/pkg/echo"
	"github.com/vegansk/asyncstreams/pkg/must"
	"github.com/vegansk/asyncstreams/pkg/stream"
)

// greetAll greets each name over the specified stream and prints the
// responses to output, one per line.
func greetAll(s stream.Stream, names []string, output io.Writer) error {
	for _, name := range names {
		response, err := echo.Greet(s, name)
		if err != nil {
			return errors.Wrapf(err, "unable to greet %q", name)
		}
		fmt.Fprintln(output, response)
	}
	return nil
}

// greetMain is the entry point for the greet command.
func greetMain(command *cobra.Command, arguments []string) error {
	// Compute the effective address.
	address := loaded.configuration.Listen
	if greetConfiguration.address != "" {
		address = greetConfiguration.address
	}
	logger := loaded.logger.Sublogger("greet")

	// Connect to the server.
	s, err := echo.Dial(context.Background(), address, logger)
	if err != nil {
		return err
	}
	defer must.Close(s, logger)

	// Perform the exchanges.
	return greetAll(s, arguments, command.OutOrStdout())
}

// greetCommand is the greet command.
var greetCommand = &cobra.Command{
	Use:   "greet <name>...",
	Short: "Send names to a greeting server and print the responses",
	Args:  cmd.RequireArguments(1, "at least one name"),
	Run:   cmd.Mainify(greetMain),
}

// greetConfiguration stores configuration for the greet command.
var greetConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// address overrides the configured server address.
	address string
}

func init() {
	// Grab a handle for the command line flags.
	flags := greetCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&greetConfiguration.help, "help", "h", false, "Show help information")

	// Wire up connection flags.
	flags.StringVarP(&greetConfiguration.address, "address", "a", "", "Specify the server address")
}
