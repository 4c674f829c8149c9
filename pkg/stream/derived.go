package stream

import (
	"bytes"
)

const (
	// ReadAllChunkSize is the size of the raw reads issued by ReadAll.
	ReadAllChunkSize = 4096
)

// lineTerminator is the terminator emitted by WriteLine.
var lineTerminator = []byte{'\r', '\n'}

// ReadChar reads a single byte from the stream. It returns false (and a nil
// error) if the stream has no more data.
func ReadChar(s Stream) (byte, bool, error) {
	data, err := s.ReadRaw(1)
	if err != nil {
		return 0, false, err
	} else if len(data) == 0 {
		return 0, false, nil
	}
	return data[0], true, nil
}

// ReadLine reads bytes until a line terminator or the end of the stream and
// returns them without the terminator. A carriage return terminates the line
// and consumes exactly one following byte (normally the paired line feed)
// without inspecting it. A bare line feed also terminates the line.
func ReadLine(s Stream) (string, error) {
	var line bytes.Buffer
	for {
		c, ok, err := ReadChar(s)
		if err != nil {
			return line.String(), err
		} else if !ok || c == '\n' {
			return line.String(), nil
		} else if c == '\r' {
			_, _, err = ReadChar(s)
			return line.String(), err
		}
		line.WriteByte(c)
	}
}

// WriteLine writes the specified text followed by a CRLF terminator,
// irrespective of platform.
func WriteLine(s Stream, line string) error {
	data := make([]byte, 0, len(line)+len(lineTerminator))
	data = append(data, line...)
	data = append(data, lineTerminator...)
	return s.WriteRaw(data)
}

// ReadAll reads chunks of ReadAllChunkSize bytes until the stream reports that
// it's at its end, returning the concatenated result. At least one chunk read
// is always attempted.
func ReadAll(s Stream) ([]byte, error) {
	var result []byte
	for {
		chunk, err := s.ReadRaw(ReadAllChunkSize)
		result = append(result, chunk...)
		if err != nil {
			return result, err
		} else if s.AtEnd() {
			return result, nil
		}
	}
}

// ReadBuffer fills the specified buffer with data from the stream, returning
// the number of bytes read. Fewer than len(buffer) bytes are returned only if
// the stream runs out of data.
func ReadBuffer(s Stream, buffer []byte) (int, error) {
	var count int
	for count < len(buffer) {
		data, err := s.ReadRaw(len(buffer) - count)
		count += copy(buffer[count:], data)
		if err != nil {
			return count, err
		} else if len(data) == 0 {
			break
		}
	}
	return count, nil
}

// WriteBuffer writes the entire contents of the specified buffer to the
// stream.
func WriteBuffer(s Stream, buffer []byte) error {
	data := make([]byte, len(buffer))
	copy(data, buffer)
	return s.WriteRaw(data)
}
