package stream

import (
	"io"
	"os"

	"github.com/vegansk/asyncstreams/pkg/filesystem"
	"github.com/vegansk/asyncstreams/pkg/logging"
)

// FileStream is a seekable stream backed by a file.
//
// Its end-of-stream flag is set only by a raw read that returns no data, and
// it's cleared only by a later raw read that returns data. Repositioning the
// stream with SetPosition does not clear the flag, so AtEnd continues to report
// true after seeking backward until the next successful read.
type FileStream struct {
	NoFlush
	// file is the underlying file.
	file *os.File
	// logger is the underlying logger.
	logger *logging.Logger
	// eof indicates whether or not the last raw read returned no data.
	eof bool
	// closed indicates whether or not the stream has been closed.
	closed bool
}

// NewFileStream creates a new file stream that takes ownership of an existing
// file handle. The logger may be nil.
func NewFileStream(file *os.File, logger *logging.Logger) *FileStream {
	logger.Tracef("Wrapping file %s", file.Name())
	return &FileStream{
		file:   file,
		logger: logger,
	}
}

// OpenFileStream opens the file at the specified path using the specified mode
// and wraps it in a file stream. The logger may be nil.
func OpenFileStream(path string, mode filesystem.Mode, logger *logging.Logger) (*FileStream, error) {
	file, err := filesystem.Open(path, mode)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Opened %s in %s mode", path, mode)
	return NewFileStream(file, logger), nil
}

// Close implements Stream.Close.
func (s *FileStream) Close() error {
	s.closed = true
	s.logger.Tracef("Closing file %s", s.file.Name())
	return s.file.Close()
}

// AtEnd implements Stream.AtEnd.
func (s *FileStream) AtEnd() bool {
	return s.closed || s.eof
}

// GetPosition implements Stream.GetPosition.
func (s *FileStream) GetPosition() (int64, error) {
	return s.file.Seek(0, io.SeekCurrent)
}

// SetPosition implements Stream.SetPosition. It does not reset the
// end-of-stream flag.
func (s *FileStream) SetPosition(position int64) error {
	_, err := s.file.Seek(position, io.SeekStart)
	return err
}

// ReadRaw implements Stream.ReadRaw.
func (s *FileStream) ReadRaw(size int) ([]byte, error) {
	buffer := make([]byte, size)
	n, err := s.file.Read(buffer)
	if n > 0 {
		s.eof = false
		return buffer[:n], nil
	} else if err == nil || err == io.EOF {
		if !s.eof {
			s.logger.Tracef("Reached end of file %s", s.file.Name())
		}
		s.eof = true
		return buffer[:0], nil
	}
	return buffer[:0], err
}

// WriteRaw implements Stream.WriteRaw.
func (s *FileStream) WriteRaw(data []byte) error {
	_, err := s.file.Write(data)
	return err
}
