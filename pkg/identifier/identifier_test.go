package identifier

import (
	"math"
	"strings"
	"testing"

	"github.com/vegansk/asyncstreams/pkg/random"
)

const (
	// expectedIdentifierLength is the expected length for identifiers.
	expectedIdentifierLength = requiredPrefixLength + 1 + targetBase62Length
)

// TestLengthRelationships tests the mathematical relationship between
// random.CollisionResistantLength and targetBase62Length.
func TestLengthRelationships(t *testing.T) {
	if targetBase62Length != int(math.Ceil(random.CollisionResistantLength*8*math.Log(2)/math.Log(62))) {
		t.Error("target base62 length incorrect for collision resistant length")
	}
}

// TestIdentifierCreation tests identifier creation.
func TestIdentifierCreation(t *testing.T) {
	// Process test cases.
	for _, prefix := range []string{PrefixConnection, PrefixStream} {
		// Create an identifier with the specified prefix.
		identifier, err := New(prefix)
		if err != nil {
			t.Fatal("unable to create identifier:", err)
		}

		// Ensure that the prefix is present.
		if !strings.HasPrefix(identifier, prefix+"_") {
			t.Error("identifier does not have correct prefix")
		}

		// Ensure that the length is what's expected.
		if len(identifier) != expectedIdentifierLength {
			t.Error("identifier has unexpected length:", len(identifier))
		}

		// Ensure that the identifier is classified as valid.
		if !IsValid(identifier) {
			t.Error("generated identifier classified as invalid:", identifier)
		}
	}
}

// TestPrefixLengthEnforcement tests that identifier creation fails with an
// invalid prefix length.
func TestPrefixLengthEnforcement(t *testing.T) {
	if _, err := New("xyz"); err == nil {
		t.Error("invalid prefix length accepted")
	}
}

// TestInvalidPrefixCharacter tests that identifier creation fails when a prefix
// contains invalid characters.
func TestInvalidPrefixCharacter(t *testing.T) {
	if _, err := New("XYZW"); err == nil {
		t.Error("invalid prefix characters accepted")
	}
}

// TestIsValid tests that IsValid behaves correctly for an assortment of values.
func TestIsValid(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		value       string
		expectValid bool
	}{
		{"", false},
		{"abc", false},
		{"conn_jndACgB0qejgkorhU21q4oA56QvEfqV1p2yBH9N40h+", false},
		{"conn_jndACgB0qejgkorhU21q4oA56QvEfqV1p2yBH9N40hK1", false},
		{"co9n_jndACgB0qejgkorhU21q4oA56QvEfqV1p2yBH9N40hK", false},
		{"CONN_jndACgB0qejgkorhU21q4oA56QvEfqV1p2yBH9N40hK", false},
		{"conn-jndACgB0qejgkorhU21q4oA56QvEfqV1p2yBH9N40hK", false},
		{"conn_jndACgB0qejgkorhU21q4oA56QvEfqV1p2yBH9N40hK", true},
		{"strm_0000000000000000000000000000000000000000001", true},
	}

	// Process test cases.
	for _, testCase := range testCases {
		if valid := IsValid(testCase.value); valid && !testCase.expectValid {
			t.Error("identifier unexpectedly classified as valid:", testCase.value)
		} else if !valid && testCase.expectValid {
			t.Error("identifier unexpectedly classified as invalid:", testCase.value)
		}
	}
}
