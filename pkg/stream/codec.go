package stream

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Fixed is the set of fixed-width types supported by the typed codec. The int
// and uint types use the native word size, and float64 serves as the native
// floating point type.
type Fixed interface {
	int8 | int16 | int32 | int64 | int |
		uint8 | uint16 | uint32 | uint64 | uint |
		float32 | float64 | bool
}

// SizeOf returns the number of bytes used to encode a value of type T.
func SizeOf[T Fixed]() int {
	var zero T
	switch any(zero).(type) {
	case int8, uint8, bool:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	case int, uint:
		return strconv.IntSize / 8
	default:
		return 8
	}
}

// ReadValue reads a value of type T encoded in the host's native byte order.
// This format is not portable across architectures; use ReadValueOrder for
// wire formats. If the stream runs out of data before the value is complete,
// the returned error wraps ErrEndOfStream.
func ReadValue[T Fixed](s Stream) (T, error) {
	return ReadValueOrder[T](s, binary.NativeEndian)
}

// WriteValue writes a value of type T encoded in the host's native byte order.
// This format is not portable across architectures; use WriteValueOrder for
// wire formats.
func WriteValue[T Fixed](s Stream, value T) error {
	return WriteValueOrder(s, binary.NativeEndian, value)
}

// ReadValueOrder reads a value of type T encoded in the specified byte order.
// If the stream runs out of data before the value is complete, the returned
// error wraps ErrEndOfStream.
func ReadValueOrder[T Fixed](s Stream, order binary.ByteOrder) (T, error) {
	// Read the encoded value.
	buffer := make([]byte, SizeOf[T]())
	if n, err := ReadBuffer(s, buffer); err != nil {
		var zero T
		return zero, err
	} else if n != len(buffer) {
		var zero T
		return zero, errors.Wrapf(ErrEndOfStream, "short read (%d of %d bytes)", n, len(buffer))
	}

	// Decode the value.
	return decode[T](buffer, order), nil
}

// WriteValueOrder writes a value of type T encoded in the specified byte order.
func WriteValueOrder[T Fixed](s Stream, order binary.ByteOrder, value T) error {
	buffer := make([]byte, SizeOf[T]())
	encode(buffer, order, value)
	return WriteBuffer(s, buffer)
}

// encode encodes a value into a buffer of exactly SizeOf[T]() bytes.
func encode[T Fixed](buffer []byte, order binary.ByteOrder, value T) {
	switch v := any(value).(type) {
	case bool:
		if v {
			buffer[0] = 1
		} else {
			buffer[0] = 0
		}
	case int8:
		buffer[0] = byte(v)
	case uint8:
		buffer[0] = v
	case int16:
		order.PutUint16(buffer, uint16(v))
	case uint16:
		order.PutUint16(buffer, v)
	case int32:
		order.PutUint32(buffer, uint32(v))
	case uint32:
		order.PutUint32(buffer, v)
	case int64:
		order.PutUint64(buffer, uint64(v))
	case uint64:
		order.PutUint64(buffer, v)
	case int:
		putWord(buffer, order, uint64(v))
	case uint:
		putWord(buffer, order, uint64(v))
	case float32:
		order.PutUint32(buffer, math.Float32bits(v))
	case float64:
		order.PutUint64(buffer, math.Float64bits(v))
	}
}

// decode decodes a value from a buffer of exactly SizeOf[T]() bytes.
func decode[T Fixed](buffer []byte, order binary.ByteOrder) T {
	var result any
	var zero T
	switch any(zero).(type) {
	case bool:
		result = buffer[0] != 0
	case int8:
		result = int8(buffer[0])
	case uint8:
		result = buffer[0]
	case int16:
		result = int16(order.Uint16(buffer))
	case uint16:
		result = order.Uint16(buffer)
	case int32:
		result = int32(order.Uint32(buffer))
	case uint32:
		result = order.Uint32(buffer)
	case int64:
		result = int64(order.Uint64(buffer))
	case uint64:
		result = order.Uint64(buffer)
	case int:
		result = int(word(buffer, order))
	case uint:
		result = uint(word(buffer, order))
	case float32:
		result = math.Float32frombits(order.Uint32(buffer))
	case float64:
		result = math.Float64frombits(order.Uint64(buffer))
	}
	return result.(T)
}

// putWord encodes a native-width integer.
func putWord(buffer []byte, order binary.ByteOrder, value uint64) {
	if strconv.IntSize == 32 {
		order.PutUint32(buffer, uint32(value))
	} else {
		order.PutUint64(buffer, value)
	}
}

// word decodes a native-width integer. On 32-bit hosts the conversion back to
// int truncates to 32 bits, which restores the sign.
func word(buffer []byte, order binary.ByteOrder) uint64 {
	if strconv.IntSize == 32 {
		return uint64(order.Uint32(buffer))
	}
	return order.Uint64(buffer)
}
