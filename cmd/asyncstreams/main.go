package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vegansk/asyncstreams/cmd"
	"github.com/vegansk/asyncstreams/pkg/asyncstreams"
	"github.com/vegansk/asyncstreams/pkg/configuration"
	"github.com/vegansk/asyncstreams/pkg/filesystem"
	"github.com/vegansk/asyncstreams/pkg/logging"
)

// loaded holds the effective configuration and root logger, computed before
// any subcommand runs.
var loaded struct {
	// configuration is the effective configuration.
	configuration *configuration.Configuration
	// logger is the root logger.
	logger *logging.Logger
}

// load computes the effective configuration by layering the configuration
// file, the environment (optionally seeded from a dotenv file), and command
// line flags over the defaults.
func load(command *cobra.Command, _ []string) error {
	// Normalize paths.
	configurationPath, err := filesystem.Normalize(rootConfiguration.configurationPath)
	if err != nil {
		return errors.Wrap(err, "invalid configuration path")
	}
	envFile, err := filesystem.Normalize(rootConfiguration.envFile)
	if err != nil {
		return errors.Wrap(err, "invalid environment file path")
	}

	// Load any dotenv file into the process environment. Variables that are
	// already set take precedence.
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return errors.Wrap(err, "unable to load environment file")
		}
	}

	// Load the configuration file.
	result, err := configuration.Load(configurationPath)
	if err != nil {
		return errors.Wrap(err, "unable to load configuration")
	}

	// Apply environment overrides.
	if err := result.ApplyEnvironment(os.LookupEnv); err != nil {
		return errors.Wrap(err, "unable to apply environment")
	}

	// Apply the log level flag.
	if rootConfiguration.logLevel != "" {
		result.LogLevel = rootConfiguration.logLevel
		if err := result.EnsureValid(); err != nil {
			return errors.Wrap(err, "invalid log level flag")
		}
	}

	// Create the root logger.
	logger, err := cmd.NewLogger(result.LogLevel)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded configuration (listen %s, block size %s)", result.Listen, result.BlockSize)

	// Store the results.
	loaded.configuration = result
	loaded.logger = logger

	// Success.
	return nil
}

// rootMain is the entry point for the root command.
func rootMain(command *cobra.Command, _ []string) error {
	// If no commands were given, then print help information and bail. We don't
	// have to worry about warning about arguments being present here (which
	// would be incorrect usage) because arguments can't even reach this point
	// (they will be mistaken for subcommands and a error will be displayed).
	command.Help()

	// Success.
	return nil
}

// rootCommand is the root command.
var rootCommand = &cobra.Command{
	Use:               "asyncstreams",
	Version:           asyncstreams.Version,
	Short:             "Stream utilities over files and sockets",
	PersistentPreRunE: load,
	Run:               cmd.Mainify(rootMain),
	SilenceUsage:      true,
}

// rootConfiguration stores configuration for the root command.
var rootConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// configurationPath is the path to the YAML configuration file.
	configurationPath string
	// envFile is the path to a dotenv file to load into the environment.
	envFile string
	// logLevel overrides the configured log level.
	logLevel string
}

func init() {
	// Disable Cobra's command sorting behavior. By default, it sorts commands
	// alphabetically in the help output.
	cobra.EnableCommandSorting = false

	// Disable Cobra's use of mousetrap.
	cobra.MousetrapHelpText = ""

	// Set the template used by the version flag.
	rootCommand.SetVersionTemplate("asyncstreams version {{ .Version }}\n")

	// Grab a handle for the command line flags.
	flags := rootCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")

	// Bind global flags.
	persistent := rootCommand.PersistentFlags()
	persistent.SortFlags = false
	persistent.StringVarP(&rootConfiguration.configurationPath, "config", "c", "", "Specify the configuration file path")
	persistent.StringVar(&rootConfiguration.envFile, "env-file", "", "Load environment variables from a dotenv file")
	persistent.StringVarP(&rootConfiguration.logLevel, "log-level", "l", "", "Set the log level (disabled|error|warn|info|debug|trace)")

	// Register commands. We do this here (rather than in individual init
	// functions) so that we can control the order.
	rootCommand.AddCommand(
		serveCommand,
		greetCommand,
		catCommand,
		writeCommand,
		configCommand,
		versionCommand,
	)
}

func main() {
	// Execute the root command.
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
