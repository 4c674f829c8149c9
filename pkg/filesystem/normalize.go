package filesystem

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// splitTilde splits a path beginning with a tilde into the username following
// the tilde (empty for the current user) and the remainder of the path after
// the first separator.
func splitTilde(path string) (string, string) {
	separator := strings.IndexFunc(path, func(r rune) bool {
		return r < 0x80 && os.IsPathSeparator(uint8(r))
	})
	if separator < 0 {
		return path[1:], ""
	}
	return path[1:separator], path[separator+1:]
}

// ExpandTilde expands a leading ~ or ~<username> in a path to the relevant
// home directory. Paths without a leading tilde are returned unmodified.
func ExpandTilde(path string) (string, error) {
	// Only process relevant paths.
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	username, remaining := splitTilde(path)

	// Compute the relevant home directory.
	var home string
	if username == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "unable to compute path to home directory")
		}
		home = h
	} else {
		u, err := user.Lookup(username)
		if err != nil {
			return "", errors.Wrapf(err, "unable to lookup user %s", username)
		}
		home = u.HomeDir
	}

	// Compute the full path.
	return filepath.Join(home, remaining), nil
}

// Normalize expands any leading tilde in a path and converts the result to a
// clean absolute path. Empty paths are returned unmodified.
func Normalize(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := ExpandTilde(path)
	if err != nil {
		return "", errors.Wrap(err, "unable to perform tilde expansion")
	}
	absolute, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrap(err, "unable to compute absolute path")
	}
	return absolute, nil
}
