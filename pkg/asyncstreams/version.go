// Package asyncstreams provides version information and the version handshake
// performed at the start of every greeting protocol connection.
package asyncstreams

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/vegansk/asyncstreams/pkg/stream"
)

const (
	// VersionMajor represents the current major version of asyncstreams.
	VersionMajor = 0
	// VersionMinor represents the current minor version of asyncstreams.
	VersionMinor = 3
	// VersionPatch represents the current patch version of asyncstreams.
	VersionPatch = 0
	// VersionTag represents a tag to be appended to the version string. It must
	// not contain spaces. If empty, no tag is appended to the version string.
	VersionTag = ""
)

// Version provides a stringified version of the current asyncstreams version.
var Version string

// init performs global initialization.
func init() {
	// Compute the stringified version.
	if VersionTag != "" {
		Version = fmt.Sprintf("%d.%d.%d-%s", VersionMajor, VersionMinor, VersionPatch, VersionTag)
	} else {
		Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
	}
}

// SendVersion writes the current version to the specified stream as three
// big-endian 32-bit values. Version tag components are neither transmitted nor
// received.
func SendVersion(s stream.Stream) error {
	for _, component := range []uint32{VersionMajor, VersionMinor, VersionPatch} {
		if err := stream.WriteValueOrder(s, binary.BigEndian, component); err != nil {
			return err
		}
	}
	return s.Flush()
}

// ReceiveVersion reads version information from the specified stream.
func ReceiveVersion(s stream.Stream) (uint32, uint32, uint32, error) {
	var components [3]uint32
	for i := range components {
		value, err := stream.ReadValueOrder[uint32](s, binary.BigEndian)
		if err != nil {
			return 0, 0, 0, err
		}
		components[i] = value
	}
	return components[0], components[1], components[2], nil
}

// compatible returns whether or not a peer version is compatible with the
// current version. Versions must be equal at the minor release level.
func compatible(major, minor uint32) bool {
	return major == VersionMajor && minor == VersionMinor
}

// ClientVersionHandshake performs the client side of a version handshake,
// returning an error if the received server version is not compatible with the
// client version.
func ClientVersionHandshake(s stream.Stream) error {
	// Receive the server's version.
	serverMajor, serverMinor, _, err := ReceiveVersion(s)
	if err != nil {
		return errors.Wrap(err, "unable to receive server version")
	}

	// Send our version to the server.
	if err := SendVersion(s); err != nil {
		return errors.Wrap(err, "unable to send client version")
	}

	// Ensure that our versions are compatible.
	if !compatible(serverMajor, serverMinor) {
		return errors.Errorf("version mismatch (server %d.%d, client %d.%d)",
			serverMajor, serverMinor, VersionMajor, VersionMinor)
	}

	// Success.
	return nil
}

// ServerVersionHandshake performs the server side of a version handshake,
// returning an error if the received client version is not compatible with the
// server version.
func ServerVersionHandshake(s stream.Stream) error {
	// Send our version to the client.
	if err := SendVersion(s); err != nil {
		return errors.Wrap(err, "unable to send server version")
	}

	// Receive the client's version.
	clientMajor, clientMinor, _, err := ReceiveVersion(s)
	if err != nil {
		return errors.Wrap(err, "unable to receive client version")
	}

	// Ensure that our versions are compatible.
	if !compatible(clientMajor, clientMinor) {
		return errors.Errorf("version mismatch (server %d.%d, client %d.%d)",
			VersionMajor, VersionMinor, clientMajor, clientMinor)
	}

	// Success.
	return nil
}
