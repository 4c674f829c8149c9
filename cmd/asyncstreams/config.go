package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vegansk/asyncstreams/cmd"
	"github.com/vegansk/asyncstreams/pkg/filesystem"
)

// configMain is the entry point for the config command.
func configMain(command *cobra.Command, _ []string) error {
	// If an output path was specified, save the configuration there.
	if configConfiguration.output != "" {
		logger := loaded.logger.Sublogger("config")
		output, err := filesystem.Normalize(configConfiguration.output)
		if err != nil {
			return errors.Wrap(err, "invalid output path")
		}
		if err := loaded.configuration.Save(output, logger); err != nil {
			return errors.Wrap(err, "unable to save configuration")
		}
		logger.Infof("Saved configuration to %s", output)
		return nil
	}

	// Otherwise print it.
	encoder := yaml.NewEncoder(command.OutOrStdout())
	encoder.SetIndent(2)
	if err := encoder.Encode(loaded.configuration); err != nil {
		return errors.Wrap(err, "unable to encode configuration")
	}
	return encoder.Close()
}

// configCommand is the config command.
var configCommand = &cobra.Command{
	Use:   "config",
	Short: "Show or save the effective configuration",
	Args:  cmd.DisallowArguments,
	Run:   cmd.Mainify(configMain),
}

// configConfiguration stores configuration for the config command.
var configConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// output is the path to which the configuration should be saved.
	output string
}

func init() {
	// Grab a handle for the command line flags.
	flags := configCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&configConfiguration.help, "help", "h", false, "Show help information")

	// Wire up output flags.
	flags.StringVarP(&configConfiguration.output, "output", "o", "", "Save the configuration to the specified path")
}
