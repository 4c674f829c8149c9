package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vegansk/asyncstreams/cmd"
	"github.com/vegansk/asyncstreams/pkg/filesystem"
	"github.com/vegansk/asyncstreams/pkg/identifier"
	"github.com/vegansk/asyncstreams/pkg/logging"
	"github.com/vegansk/asyncstreams/pkg/must"
	"github.com/vegansk/asyncstreams/pkg/stream"
)

// writeLines writes CRLF-terminated lines to the file at the specified path,
// truncating it unless appending is requested.
func writeLines(path string, lines []string, appending bool, logger *logging.Logger) error {
	// Open the file.
	mode := filesystem.ModeWrite
	if appending {
		mode = filesystem.ModeAppend
	}
	path, err := filesystem.Normalize(path)
	if err != nil {
		return errors.Wrap(err, "invalid path")
	}
	if name, err := identifier.New(identifier.PrefixStream); err != nil {
		logger.Warnf("Unable to generate stream identifier: %v", err)
	} else {
		logger = logger.Sublogger(name)
	}
	s, err := stream.OpenFileStream(path, mode, logger)
	if err != nil {
		return errors.Wrap(err, "unable to open file")
	}
	defer must.Close(s, logger)

	// Write the lines.
	for _, line := range lines {
		if err := stream.WriteLine(s, line); err != nil {
			return errors.Wrap(err, "unable to write line")
		}
	}

	// Flush the stream.
	if err := s.Flush(); err != nil {
		return errors.Wrap(err, "unable to flush stream")
	}

	// Success.
	logger.Infof("Wrote %d line(s) to %s", len(lines), path)
	return nil
}

// writeMain is the entry point for the write command.
func writeMain(_ *cobra.Command, arguments []string) error {
	return writeLines(arguments[0], arguments[1:], writeConfiguration.append, loaded.logger.Sublogger("write"))
}

// writeCommand is the write command.
var writeCommand = &cobra.Command{
	Use:   "write <path> <line>...",
	Short: "Write lines to a file through a file stream",
	Args:  cmd.RequireArguments(2, "path and at least one line"),
	Run:   cmd.Mainify(writeMain),
}

// writeConfiguration stores configuration for the write command.
var writeConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// append indicates that lines should be appended rather than replacing
	// existing content.
	append bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := writeCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&writeConfiguration.help, "help", "h", false, "Show help information")

	// Wire up write flags.
	flags.BoolVar(&writeConfiguration.append, "append", false, "Append to existing content")
}
