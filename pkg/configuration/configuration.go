package configuration

import (
	"os"

	"github.com/pkg/errors"

	"github.com/vegansk/asyncstreams/pkg/encoding"
	"github.com/vegansk/asyncstreams/pkg/logging"
)

const (
	// DefaultListen is the default address on which the greeting server
	// listens.
	DefaultListen = "127.0.0.1:7427"
	// DefaultLogLevel is the default log level name.
	DefaultLogLevel = "info"
	// DefaultBlockSize is the default block size for file copies.
	DefaultBlockSize = ByteSize(64 * 1024)

	// EnvironmentListen overrides the listen address.
	EnvironmentListen = "ASYNCSTREAMS_LISTEN"
	// EnvironmentMetrics overrides the metrics address.
	EnvironmentMetrics = "ASYNCSTREAMS_METRICS"
	// EnvironmentLogLevel overrides the log level.
	EnvironmentLogLevel = "ASYNCSTREAMS_LOG_LEVEL"
	// EnvironmentBlockSize overrides the block size.
	EnvironmentBlockSize = "ASYNCSTREAMS_BLOCK_SIZE"
)

// Configuration is the asyncstreams configuration.
type Configuration struct {
	// Listen is the address on which the greeting server listens and to which
	// the greeting client connects.
	Listen string `yaml:"listen"`
	// Metrics is the address on which Prometheus metrics are served. If empty,
	// metrics are disabled.
	Metrics string `yaml:"metrics,omitempty"`
	// LogLevel is the name of the log level.
	LogLevel string `yaml:"logLevel"`
	// BlockSize is the size of raw reads used when copying files.
	BlockSize ByteSize `yaml:"blockSize"`
}

// Default returns the default configuration.
func Default() *Configuration {
	return &Configuration{
		Listen:    DefaultListen,
		LogLevel:  DefaultLogLevel,
		BlockSize: DefaultBlockSize,
	}
}

// Load loads the configuration file at the specified path, layering its values
// over the defaults. If path is empty or the file doesn't exist, the defaults
// are returned. The returned structure is not re-used, so its members can be
// freely mutated.
func Load(path string) (*Configuration, error) {
	// Create a configuration with default values. Anything not specified in
	// the file will remain at its default.
	result := Default()

	// Attempt to load the configuration from disk.
	if path != "" {
		if err := encoding.LoadAndUnmarshalYAML(path, result); err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	// Validate the result.
	if err := result.EnsureValid(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	// Success.
	return result, nil
}

// ApplyEnvironment overrides configuration values with any values specified in
// the environment. The lookup function is typically os.LookupEnv.
func (c *Configuration) ApplyEnvironment(lookup func(string) (string, bool)) error {
	if value, ok := lookup(EnvironmentListen); ok {
		c.Listen = value
	}
	if value, ok := lookup(EnvironmentMetrics); ok {
		c.Metrics = value
	}
	if value, ok := lookup(EnvironmentLogLevel); ok {
		c.LogLevel = value
	}
	if value, ok := lookup(EnvironmentBlockSize); ok {
		if err := c.BlockSize.Set(value); err != nil {
			return errors.Wrapf(err, "invalid value for %s", EnvironmentBlockSize)
		}
	}
	return c.EnsureValid()
}

// EnsureValid ensures that the configuration is valid.
func (c *Configuration) EnsureValid() error {
	if c.Listen == "" {
		return errors.New("empty listen address")
	}
	if _, ok := logging.NameToLevel(c.LogLevel); !ok {
		return errors.Errorf("invalid log level: %s", c.LogLevel)
	}
	if c.BlockSize == 0 {
		return errors.New("zero block size")
	}
	return nil
}

// Level returns the configured log level.
func (c *Configuration) Level() logging.Level {
	level, _ := logging.NameToLevel(c.LogLevel)
	return level
}

// Save saves the configuration atomically to the specified path.
func (c *Configuration) Save(path string, logger *logging.Logger) error {
	return encoding.MarshalAndSaveYAML(path, logger, c)
}
