package stream

// StringStream is a seekable stream backed by a growable in-memory buffer.
type StringStream struct {
	NoFlush
	// data is the stream contents.
	data []byte
	// position is the cursor within data. It is always in [0, len(data)].
	position int
	// closed indicates whether or not the stream has been closed.
	closed bool
}

// NewStringStream creates a new string stream seeded with a copy of the
// specified contents, which may be nil. The cursor starts at the beginning.
func NewStringStream(initial []byte) *StringStream {
	return &StringStream{data: append([]byte(nil), initial...)}
}

// Close implements Stream.Close.
func (s *StringStream) Close() error {
	s.closed = true
	return nil
}

// AtEnd implements Stream.AtEnd.
func (s *StringStream) AtEnd() bool {
	return s.closed || s.position >= len(s.data)
}

// GetPosition implements Stream.GetPosition.
func (s *StringStream) GetPosition() (int64, error) {
	return int64(s.position), nil
}

// SetPosition implements Stream.SetPosition. The position is clamped to the
// bounds of the buffer.
func (s *StringStream) SetPosition(position int64) error {
	if position < 0 {
		position = 0
	} else if position > int64(len(s.data)) {
		position = int64(len(s.data))
	}
	s.position = int(position)
	return nil
}

// ReadRaw implements Stream.ReadRaw. It panics if the stream is closed.
func (s *StringStream) ReadRaw(size int) ([]byte, error) {
	if s.closed {
		fail("ReadRaw", ErrClosed)
	}
	end := s.position + size
	if size < 0 || end > len(s.data) {
		end = len(s.data)
	}
	result := make([]byte, end-s.position)
	copy(result, s.data[s.position:end])
	s.position = end
	return result, nil
}

// WriteRaw implements Stream.WriteRaw. It overwrites data at the cursor,
// growing the buffer as necessary, and panics if the stream is closed.
func (s *StringStream) WriteRaw(data []byte) error {
	if s.closed {
		fail("WriteRaw", ErrClosed)
	}
	if end := s.position + len(data); end > len(s.data) {
		if end <= cap(s.data) {
			s.data = s.data[:end]
		} else {
			grown := make([]byte, end)
			copy(grown, s.data)
			s.data = grown
		}
	}
	s.position += copy(s.data[s.position:], data)
	return nil
}

// Bytes returns a copy of the entire stream contents, independent of the
// cursor position.
func (s *StringStream) Bytes() []byte {
	return append([]byte(nil), s.data...)
}

// String returns the entire stream contents as a string.
func (s *StringStream) String() string {
	return string(s.data)
}
