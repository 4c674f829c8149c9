package filesystem

import (
	"os"

	"github.com/pkg/errors"
)

// Mode specifies the access mode for opening a file.
type Mode uint8

const (
	// ModeRead opens an existing file for reading only.
	ModeRead Mode = iota
	// ModeWrite opens a file for writing only, creating it if it doesn't exist
	// and truncating it if it does.
	ModeWrite
	// ModeReadWrite opens a file for reading and writing, creating it if it
	// doesn't exist and truncating it if it does.
	ModeReadWrite
	// ModeReadWriteExisting opens an existing file for reading and writing
	// without truncating it.
	ModeReadWriteExisting
	// ModeAppend opens a file for writing at its end, creating it if it doesn't
	// exist.
	ModeAppend
)

// newFilePermissions are the permissions used for files created by Open.
const newFilePermissions = 0644

// String provides a human-readable representation of a mode.
func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeReadWrite:
		return "read-write"
	case ModeReadWriteExisting:
		return "read-write-existing"
	case ModeAppend:
		return "append"
	default:
		return "unknown"
	}
}

// flags returns the os.OpenFile flags corresponding to the mode.
func (m Mode) flags() (int, error) {
	switch m {
	case ModeRead:
		return os.O_RDONLY, nil
	case ModeWrite:
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC, nil
	case ModeReadWrite:
		return os.O_RDWR | os.O_CREATE | os.O_TRUNC, nil
	case ModeReadWriteExisting:
		return os.O_RDWR, nil
	case ModeAppend:
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND, nil
	default:
		return 0, errors.Errorf("unknown file mode: %d", m)
	}
}

// Open opens the file at the specified path using the specified mode.
func Open(path string, mode Mode) (*os.File, error) {
	flags, err := mode.flags()
	if err != nil {
		return nil, err
	}
	return os.OpenFile(path, flags, newFilePermissions)
}
