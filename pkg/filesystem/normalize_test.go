package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

// TestExpandTilde tests tilde expansion for the current user.
func TestExpandTilde(t *testing.T) {
	// Compute the path to the user's home directory.
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("home directory unavailable:", err)
	}

	// Set up test cases.
	testCases := []struct {
		path     string
		expected string
	}{
		{"~", home},
		{"~/", home},
		{"~/config.yml", filepath.Join(home, "config.yml")},
		{"~/a/b", filepath.Join(home, "a", "b")},
		{"relative", "relative"},
		{"/absolute/~", "/absolute/~"},
	}

	// Process test cases.
	for _, testCase := range testCases {
		if expanded, err := ExpandTilde(testCase.path); err != nil {
			t.Errorf("%q: unable to expand: %v", testCase.path, err)
		} else if expanded != testCase.expected {
			t.Errorf("%q: expansion mismatch: %q != %q", testCase.path, expanded, testCase.expected)
		}
	}
}

// TestExpandTildeUnknownUser tests that an unknown username fails.
func TestExpandTildeUnknownUser(t *testing.T) {
	if _, err := ExpandTilde("~asyncstreams-no-such-user/file"); err == nil {
		t.Error("expansion for unknown user succeeded")
	}
}

// TestNormalize tests path normalization.
func TestNormalize(t *testing.T) {
	// Empty paths are preserved.
	if normalized, err := Normalize(""); err != nil {
		t.Error("unable to normalize empty path:", err)
	} else if normalized != "" {
		t.Error("empty path normalized to:", normalized)
	}

	// Relative paths are made absolute and cleaned.
	working, err := os.Getwd()
	if err != nil {
		t.Fatal("unable to compute working directory:", err)
	}
	if normalized, err := Normalize("a/../b/./c"); err != nil {
		t.Fatal("unable to normalize path:", err)
	} else if normalized != filepath.Join(working, "b", "c") {
		t.Error("unexpected normalized path:", normalized)
	}
}
