// Package identifier generates collision-resistant identifiers used to label
// streams and connections in logs.
package identifier

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/vegansk/asyncstreams/pkg/encoding"
	"github.com/vegansk/asyncstreams/pkg/random"
)

const (
	// PrefixConnection is the prefix used for socket connection identifiers.
	PrefixConnection = "conn"
	// PrefixStream is the prefix used for general stream identifiers.
	PrefixStream = "strm"

	// requiredPrefixLength is the required length for identifier prefixes.
	requiredPrefixLength = 4
	// targetBase62Length is the length of the Base62-encoded random portion of
	// an identifier. Encoded values are left-padded to this length.
	targetBase62Length = 43
)

// New generates a new collision-resistant identifier with the specified prefix.
// The prefix must consist of exactly four lowercase letters.
func New(prefix string) (string, error) {
	// Validate the prefix.
	if len(prefix) != requiredPrefixLength {
		return "", errors.New("invalid prefix length")
	}
	for _, r := range prefix {
		if r < 'a' || r > 'z' {
			return "", errors.New("invalid prefix character")
		}
	}

	// Create the random value.
	value, err := random.New(random.CollisionResistantLength)
	if err != nil {
		return "", errors.Wrap(err, "unable to generate random data")
	}

	// Encode the random value and left-pad it to the target length.
	encoded := encoding.EncodeBase62(value)
	builder := &strings.Builder{}
	builder.WriteString(prefix)
	builder.WriteByte('_')
	for i := targetBase62Length - len(encoded); i > 0; i-- {
		builder.WriteByte(encoding.Base62Alphabet[0])
	}
	builder.WriteString(encoded)

	// Done.
	return builder.String(), nil
}

// IsValid determines whether or not a string is a valid identifier.
func IsValid(value string) bool {
	// Check the length.
	if len(value) != requiredPrefixLength+1+targetBase62Length {
		return false
	}

	// Check the prefix and separator.
	for _, r := range value[:requiredPrefixLength] {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	if value[requiredPrefixLength] != '_' {
		return false
	}

	// Check the encoded portion.
	for _, r := range value[requiredPrefixLength+1:] {
		if !strings.ContainsRune(encoding.Base62Alphabet, r) {
			return false
		}
	}

	// Success.
	return true
}
