package logging

import (
	"bytes"
)

// writer is an io.Writer that splits its input stream into lines and writes
// those lines to a callback.
type writer struct {
	// callback is the logging callback.
	callback func(string)
	// buffer is any incomplete line fragment left over from a previous write.
	buffer []byte
}

// Write implements io.Writer.Write.
func (w *writer) Write(data []byte) (int, error) {
	// Append the data to our internal buffer.
	w.buffer = append(w.buffer, data...)

	// Emit every complete line, stripping CRLF or LF terminators.
	for {
		index := bytes.IndexByte(w.buffer, '\n')
		if index == -1 {
			break
		}
		w.callback(string(bytes.TrimSuffix(w.buffer[:index], []byte{'\r'})))
		w.buffer = w.buffer[index+1:]
	}

	// Compact the leftover fragment so that the buffer doesn't grow without
	// bound across writes.
	if len(w.buffer) == 0 {
		w.buffer = nil
	} else {
		w.buffer = append([]byte(nil), w.buffer...)
	}

	// Done.
	return len(data), nil
}
