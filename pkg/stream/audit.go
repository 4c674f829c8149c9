package stream

// Auditor is a callback type that receives transferred byte counts from raw
// read and write operations. Auditor implementations should be fast and
// minimal to avoid any impact on performance.
type Auditor func(uint64)

// auditStream is a Stream that implements raw operation auditing.
type auditStream struct {
	// Stream is the underlying stream.
	Stream
	// readAuditor is the auditing callback for reads.
	readAuditor Auditor
	// writeAuditor is the auditing callback for writes.
	writeAuditor Auditor
}

// NewAuditStream creates a new Stream that invokes auditing callbacks with the
// byte counts of successful raw reads and writes. All other capabilities are
// passed through unmodified. Either auditor may be nil, and if both are nil,
// then this function returns the stream unmodified.
func NewAuditStream(stream Stream, readAuditor, writeAuditor Auditor) Stream {
	if readAuditor == nil && writeAuditor == nil {
		return stream
	}
	return &auditStream{stream, readAuditor, writeAuditor}
}

// ReadRaw implements Stream.ReadRaw.
func (s *auditStream) ReadRaw(size int) ([]byte, error) {
	data, err := s.Stream.ReadRaw(size)
	if s.readAuditor != nil && len(data) > 0 {
		s.readAuditor(uint64(len(data)))
	}
	return data, err
}

// WriteRaw implements Stream.WriteRaw.
func (s *auditStream) WriteRaw(data []byte) error {
	err := s.Stream.WriteRaw(data)
	if s.writeAuditor != nil && err == nil {
		s.writeAuditor(uint64(len(data)))
	}
	return err
}
