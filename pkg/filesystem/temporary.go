package filesystem

const (
	// TemporaryNamePrefix is the file name prefix used for all intermediate
	// temporary files created by asyncstreams. It may be suffixed with
	// additional elements if desired.
	TemporaryNamePrefix = ".asyncstreams-temporary-"
)
