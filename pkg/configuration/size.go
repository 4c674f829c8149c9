package configuration

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

// ByteSize is a uint64 value that supports unmarshalling from both
// human-friendly string representations and numeric representations. It can be
// cast to a uint64 value, where it represents a byte count.
type ByteSize uint64

// ByteSize can be bound directly as a command line flag.
var _ pflag.Value = (*ByteSize)(nil)

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText, which is used
// when loading from YAML files.
func (s *ByteSize) UnmarshalText(textBytes []byte) error {
	value, err := humanize.ParseBytes(string(textBytes))
	if err != nil {
		return err
	}
	*s = ByteSize(value)
	return nil
}

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (s ByteSize) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// String returns a human-friendly representation of the size using binary
// units, e.g. "64 KiB".
func (s ByteSize) String() string {
	return humanize.IBytes(uint64(s))
}

// Set implements pflag.Value.Set.
func (s *ByteSize) Set(value string) error {
	return s.UnmarshalText([]byte(value))
}

// Type implements pflag.Value.Type.
func (s *ByteSize) Type() string {
	return "size"
}
