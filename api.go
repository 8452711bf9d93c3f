package wave

import (
	"errors"
	"fmt"
	"os"
)

// ErrInvalidMode is returned by Open for an unrecognized mode string.
var ErrInvalidMode = errors.New("mode must be 'r', 'rb', 'w', or 'wb'")

// Mode selects the direction a stream is opened in.
type Mode string

const (
	// ModeRead opens a stream for binary reading.
	ModeRead Mode = "rb"
	// ModeWrite opens a stream for binary writing.
	ModeWrite Mode = "wb"
)

// Stream is the accessor surface shared by Reader and Writer.
type Stream interface {
	NumChans() int
	SampleWidth() int
	SampleRate() int
	NumFrames() int
	Params() Params
	Close() error
}

// Open opens the named file and returns a Reader or Writer for it
// depending on the mode. The returned stream owns the file handle; its
// Close releases it. An unrecognized mode fails before any I/O occurs.
//
// To wrap an already-open handle instead of a path, use NewReader or
// NewWriter directly.
func Open(name string, mode Mode) (Stream, error) {
	switch mode {
	case "r", ModeRead:
		file, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}

		reader, err := NewReader(file)
		if err != nil {
			file.Close()

			return nil, err
		}

		return reader, nil
	case "w", ModeWrite:
		file, err := os.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", name, err)
		}

		return NewWriter(file), nil
	default:
		return nil, fmt.Errorf("%w, got %q", ErrInvalidMode, mode)
	}
}
