package wave

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/go-audio/audio"
)

// Reader decodes a PCM WAVE stream. The header is parsed eagerly at
// construction, fixing the stream attributes before any sample data is
// read. Reading is strictly forward, there is no rewind.
type Reader struct {
	r      io.Reader
	params Params

	byteRate int

	// Promotion selects the odd-width sample decoding convention.
	// The zero value, PromoteSignExtend, round-trips values.
	Promotion Promotion

	err error
}

// NewReader parses and validates the WAVE header from r and returns a
// reader positioned at the first frame. The reader takes ownership of r
// for its lifetime; Close releases it if it is an io.Closer.
func NewReader(r io.Reader) (*Reader, error) {
	params, byteRate, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	return &Reader{r: r, params: params, byteRate: byteRate}, nil
}

// Params returns the stream attributes declared by the header.
func (r *Reader) Params() Params { return r.params }

// NumChans returns the count of interleaved channels.
func (r *Reader) NumChans() int { return r.params.NumChans }

// SampleWidth returns the number of bytes per sample per channel.
func (r *Reader) SampleWidth() int { return r.params.SampleWidth }

// SampleRate returns the number of frames per second.
func (r *Reader) SampleRate() int { return r.params.SampleRate }

// NumFrames returns the frame count declared by the data chunk size.
func (r *Reader) NumFrames() int { return r.params.NumFrames }

// ByteRate returns the average bytes per second field of the header.
// It is carried for inspection but not used for decoding.
func (r *Reader) ByteRate() int { return r.byteRate }

// Err returns the first non-exhaustion error encountered while
// iterating frames. Reaching the end of the source is not an error.
func (r *Reader) Err() error {
	if errors.Is(r.err, io.EOF) || errors.Is(r.err, io.ErrUnexpectedEOF) {
		return nil
	}

	return r.err
}

// ReadRaw reads up to count frames worth of bytes from the current
// position without decoding them. A short result means the source was
// exhausted. count == 0 returns nil without touching the source.
func (r *Reader) ReadRaw(count int) ([]byte, error) {
	if count == 0 {
		return nil, nil
	}

	buf := make([]byte, count*r.params.FrameSize())

	n, err := io.ReadFull(r.r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return buf[:n], nil
		}

		return buf[:n], fmt.Errorf("failed to read sample data: %w", err)
	}

	return buf, nil
}

// RawFrames returns a lazy sequence of up to count per-frame byte
// groups of FrameSize bytes each. The sequence consumes the underlying
// source and cannot be restarted. It ends as soon as the source cannot
// supply a complete frame; a trailing partial frame is discarded.
func (r *Reader) RawFrames(count int) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		frameSize := r.params.FrameSize()

		for range count {
			frame := make([]byte, frameSize)
			if _, err := io.ReadFull(r.r, frame); err != nil {
				if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
					r.err = fmt.Errorf("failed to read frame: %w", err)
				}

				return
			}

			if !yield(frame) {
				return
			}
		}
	}
}

// Frames returns a lazy sequence of up to count decoded frames, each an
// ordered slice of NumChans signed samples. Termination mirrors
// RawFrames: source exhaustion ends the sequence without error.
func (r *Reader) Frames(count int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		width := SampleWidth(r.params.SampleWidth)

		for raw := range r.RawFrames(count) {
			frame, err := Unpack(width, binary.LittleEndian, r.Promotion, raw)
			if err != nil {
				r.err = fmt.Errorf("failed to decode frame: %w", err)

				return
			}

			if !yield(frame) {
				return
			}
		}
	}
}

// FullIntBuffer decodes every remaining frame into a single interleaved
// audio.IntBuffer. The entire sample data is held in memory.
func (r *Reader) FullIntBuffer() (*audio.IntBuffer, error) {
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: r.params.NumChans,
			SampleRate:  r.params.SampleRate,
		},
		SourceBitDepth: r.params.BitDepth(),
		Data:           make([]int, 0, r.params.NumFrames*r.params.NumChans),
	}

	for frame := range r.Frames(r.params.NumFrames) {
		buf.Data = append(buf.Data, frame...)
	}

	if err := r.Err(); err != nil {
		return nil, err
	}

	return buf, nil
}

// Close releases the underlying byte source if it can be closed. The
// reader must not be used afterwards.
func (r *Reader) Close() error {
	if closer, ok := r.r.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close source: %w", err)
		}
	}

	return nil
}
