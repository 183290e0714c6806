package gene

import "go.trai.ch/zerr"

var (
	// ErrEmptyID is returned when a record has no gene id.
	ErrEmptyID = zerr.New("empty gene id")

	// ErrDuplicateID is returned when two records share the same gene id.
	ErrDuplicateID = zerr.New("duplicate gene id")

	// ErrUnsupportedFormat is returned by Load for unknown file extensions.
	ErrUnsupportedFormat = zerr.New("unsupported dataset format")

	// ErrMalformedRecord is returned when a dataset file row cannot be parsed.
	ErrMalformedRecord = zerr.New("malformed dataset record")

	// ErrDatasetReadFailed is returned when a dataset file cannot be read.
	ErrDatasetReadFailed = zerr.New("failed to read dataset")
)
