package wave

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
)

// Writer encodes a PCM WAVE stream. The header is serialized lazily on
// the first write using whatever attributes are set at that moment;
// setters become no-ops afterwards. NumFrames must therefore be final
// before the first write, the data chunk size cannot be patched later.
type Writer struct {
	w      io.Writer
	params Params

	// Promotion selects the odd-width sample encoding convention.
	// The zero value, PromoteSignExtend, round-trips values.
	Promotion Promotion

	wroteHeader bool
}

// NewWriter returns a writer with all attributes zeroed. The writer
// takes ownership of w for its lifetime; Close releases it if it is an
// io.Closer. Nothing is written until the first write call.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Params returns the currently configured stream attributes.
func (w *Writer) Params() Params { return w.params }

// NumChans returns the configured channel count.
func (w *Writer) NumChans() int { return w.params.NumChans }

// SampleWidth returns the configured bytes per sample per channel.
func (w *Writer) SampleWidth() int { return w.params.SampleWidth }

// SampleRate returns the configured frames per second.
func (w *Writer) SampleRate() int { return w.params.SampleRate }

// NumFrames returns the configured total frame count.
func (w *Writer) NumFrames() int { return w.params.NumFrames }

// SetNumChans sets the channel count. No effect after the first write.
func (w *Writer) SetNumChans(numChans int) {
	if !w.wroteHeader {
		w.params.NumChans = numChans
	}
}

// SetSampleWidth sets the bytes per sample per channel. No effect after
// the first write.
func (w *Writer) SetSampleWidth(sampleWidth int) {
	if !w.wroteHeader {
		w.params.SampleWidth = sampleWidth
	}
}

// SetSampleRate sets the frames per second. No effect after the first
// write.
func (w *Writer) SetSampleRate(sampleRate int) {
	if !w.wroteHeader {
		w.params.SampleRate = sampleRate
	}
}

// SetNumFrames sets the total frame count the header will declare. No
// effect after the first write.
func (w *Writer) SetNumFrames(numFrames int) {
	if !w.wroteHeader {
		w.params.NumFrames = numFrames
	}
}

// SetParams sets all four stream attributes at once, typically copied
// from another stream's Params. No effect after the first write.
func (w *Writer) SetParams(params Params) {
	if !w.wroteHeader {
		w.params = params
	}
}

// ensureHeader emits the header once, before any sample bytes.
func (w *Writer) ensureHeader() error {
	if w.wroteHeader {
		return nil
	}

	if err := writeHeader(w.w, w.params); err != nil {
		return err
	}

	w.wroteHeader = true

	return nil
}

// flush forces the sink to surface written bytes when it buffers.
func (w *Writer) flush() error {
	flusher, ok := w.w.(interface{ Flush() error })
	if !ok {
		return nil
	}

	if err := flusher.Flush(); err != nil {
		return fmt.Errorf("failed to flush sink: %w", err)
	}

	return nil
}

// WriteRaw appends already-encoded sample bytes, writing the header
// first if it hasn't been emitted yet.
func (w *Writer) WriteRaw(data []byte) error {
	if err := w.ensureHeader(); err != nil {
		return err
	}

	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("failed to write sample data: %w", err)
	}

	return w.flush()
}

// WriteRawFrames appends a sequence of already-encoded per-frame byte
// groups in order, writing the header first if needed.
func (w *Writer) WriteRawFrames(frames [][]byte) error {
	if err := w.ensureHeader(); err != nil {
		return err
	}

	for _, frame := range frames {
		if _, err := w.w.Write(frame); err != nil {
			return fmt.Errorf("failed to write frame: %w", err)
		}
	}

	return w.flush()
}

// WriteFrames encodes and appends the passed frames, each an ordered
// slice of NumChans signed samples, writing the header first if needed.
func (w *Writer) WriteFrames(frames [][]int) error {
	if err := w.ensureHeader(); err != nil {
		return err
	}

	width := SampleWidth(w.params.SampleWidth)

	for _, frame := range frames {
		data, err := Pack(width, binary.LittleEndian, w.Promotion, frame...)
		if err != nil {
			return err
		}

		if _, err := w.w.Write(data); err != nil {
			return fmt.Errorf("failed to write frame: %w", err)
		}
	}

	return w.flush()
}

// WriteBuffer encodes an interleaved audio.IntBuffer as frames. The
// buffer must match the configured channel count.
func (w *Writer) WriteBuffer(buf *audio.IntBuffer) error {
	if buf == nil {
		return nil
	}

	if err := w.ensureHeader(); err != nil {
		return err
	}

	width := SampleWidth(w.params.SampleWidth)

	data, err := Pack(width, binary.LittleEndian, w.Promotion, buf.Data...)
	if err != nil {
		return err
	}

	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("failed to write buffer: %w", err)
	}

	return w.flush()
}

// Close flushes the sink to stable storage where possible and releases
// the underlying handle if it can be closed. A writer that never
// received a write emits no header; the sink stays empty.
func (w *Writer) Close() error {
	if file, ok := w.w.(*os.File); ok {
		if err := file.Sync(); err != nil {
			return fmt.Errorf("failed to sync sink: %w", err)
		}
	}

	if closer, ok := w.w.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close sink: %w", err)
		}
	}

	return nil
}
