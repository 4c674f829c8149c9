package main

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vegansk/asyncstreams/cmd"
	"github.com/vegansk/asyncstreams/pkg/configuration"
	"github.com/vegansk/asyncstreams/pkg/filesystem"
	"github.com/vegansk/asyncstreams/pkg/identifier"
	"github.com/vegansk/asyncstreams/pkg/logging"
	"github.com/vegansk/asyncstreams/pkg/must"
	"github.com/vegansk/asyncstreams/pkg/stream"
)

// copyFile copies the contents of the file at the specified path to output
// using raw reads of at most blockSize bytes, returning the number of bytes
// copied.
func copyFile(path string, blockSize int, output io.Writer, logger *logging.Logger) (uint64, error) {
	// Open the file.
	path, err := filesystem.Normalize(path)
	if err != nil {
		return 0, errors.Wrap(err, "invalid path")
	}
	if name, err := identifier.New(identifier.PrefixStream); err != nil {
		logger.Warnf("Unable to generate stream identifier: %v", err)
	} else {
		logger = logger.Sublogger(name)
	}
	s, err := stream.OpenFileStream(path, filesystem.ModeRead, logger)
	if err != nil {
		return 0, errors.Wrap(err, "unable to open file")
	}
	defer must.Close(s, logger)

	// Copy blocks until the stream reports its end.
	var copied uint64
	for {
		block, err := s.ReadRaw(blockSize)
		if err != nil {
			return copied, errors.Wrap(err, "unable to read block")
		} else if len(block) == 0 && s.AtEnd() {
			break
		}
		if _, err := output.Write(block); err != nil {
			return copied, errors.Wrap(err, "unable to write block")
		}
		copied += uint64(len(block))
	}

	// Success.
	return copied, nil
}

// catMain is the entry point for the cat command.
func catMain(command *cobra.Command, arguments []string) error {
	// Compute the effective block size.
	blockSize := loaded.configuration.BlockSize
	if catConfiguration.blockSize != 0 {
		blockSize = catConfiguration.blockSize
	}
	logger := loaded.logger.Sublogger("cat")

	// Copy each file.
	var total uint64
	for _, path := range arguments {
		copied, err := copyFile(path, int(blockSize), command.OutOrStdout(), logger)
		total += copied
		if err != nil {
			return errors.Wrapf(err, "unable to copy %s", path)
		}
		logger.Debugf("Copied %s from %s", humanize.IBytes(copied), path)
	}
	logger.Infof("Copied %s from %d file(s)", humanize.IBytes(total), len(arguments))

	// Success.
	return nil
}

// catCommand is the cat command.
var catCommand = &cobra.Command{
	Use:   "cat <path>...",
	Short: "Copy files to standard output through file streams",
	Args:  cmd.RequireArguments(1, "at least one path"),
	Run:   cmd.Mainify(catMain),
}

// catConfiguration stores configuration for the cat command.
var catConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// blockSize overrides the configured block size.
	blockSize configuration.ByteSize
}

func init() {
	// Grab a handle for the command line flags.
	flags := catCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&catConfiguration.help, "help", "h", false, "Show help information")

	// Wire up copy flags.
	flags.VarP(&catConfiguration.blockSize, "block-size", "b", "Specify the raw read size (e.g. \"4 KiB\")")
}
