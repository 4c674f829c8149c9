// Package configuration provides loading facilities for asyncstreams' YAML
// configuration files, along with environment variable overrides.
package configuration
