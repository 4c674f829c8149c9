// Package filesystem provides file opening modes for streams, atomic file
// replacement, and path normalization.
package filesystem
