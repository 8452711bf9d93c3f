package wave

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

var (
	// ErrFormat is returned when a RIFF/WAVE/fmt/data tag or sub-chunk
	// size does not match the canonical PCM layout.
	ErrFormat = errors.New("malformed WAVE header")
	// ErrNonPCM is returned when the audio format code is anything other
	// than linear PCM.
	ErrNonPCM = errors.New("non-PCM streams are not supported")
)

// headerSize is the byte length of the canonical PCM header: a RIFF
// chunk descriptor, a 16-byte fmt sub-chunk, and the data sub-chunk
// prelude.
const headerSize = 44

const (
	fmtChunkSize   = 16
	audioFormatPCM = 1
)

func tagString(id [4]byte) string {
	return string(id[:])
}

// readHeader parses the fixed PCM header in tag order, failing on the
// first mismatch. It does not skip or recover from unexpected chunks
// between fmt and data.
func readHeader(r io.Reader) (Params, int, error) {
	parser := riff.New(r)

	id, _, err := parser.IDnSize()
	if err != nil {
		return Params{}, 0, fmt.Errorf("failed to read RIFF chunk ID and size: %w", err)
	}

	if id != riff.RiffID {
		return Params{}, 0, fmt.Errorf("%w: expected chunk ID %q, got %q", ErrFormat, tagString(riff.RiffID), tagString(id))
	}

	var format [4]byte
	if err := binary.Read(r, binary.BigEndian, &format); err != nil {
		return Params{}, 0, fmt.Errorf("failed to read format tag: %w", err)
	}

	if format != riff.WavFormatID {
		return Params{}, 0, fmt.Errorf("%w: expected format %q, got %q", ErrFormat, tagString(riff.WavFormatID), tagString(format))
	}

	id, size, err := parser.IDnSize()
	if err != nil {
		return Params{}, 0, fmt.Errorf("failed to read fmt sub-chunk ID and size: %w", err)
	}

	if id != riff.FmtID {
		return Params{}, 0, fmt.Errorf("%w: expected sub-chunk ID %q, got %q", ErrFormat, tagString(riff.FmtID), tagString(id))
	}

	if size != fmtChunkSize {
		return Params{}, 0, fmt.Errorf("%w: expected fmt sub-chunk size %d, got %d", ErrFormat, fmtChunkSize, size)
	}

	var fields struct {
		AudioFormat   uint16
		NumChans      uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
	}

	if err := binary.Read(r, binary.LittleEndian, &fields); err != nil {
		return Params{}, 0, fmt.Errorf("failed to read fmt sub-chunk fields: %w", err)
	}

	if fields.AudioFormat != audioFormatPCM {
		return Params{}, 0, fmt.Errorf("%w: audio format code %d", ErrNonPCM, fields.AudioFormat)
	}

	id, size, err = parser.IDnSize()
	if err != nil {
		return Params{}, 0, fmt.Errorf("failed to read data sub-chunk ID and size: %w", err)
	}

	if id != riff.DataFormatID {
		return Params{}, 0, fmt.Errorf("%w: expected sub-chunk ID %q, got %q", ErrFormat, tagString(riff.DataFormatID), tagString(id))
	}

	params := Params{
		NumChans:    int(fields.NumChans),
		SampleWidth: int(fields.BitsPerSample) / 8,
		SampleRate:  int(fields.SampleRate),
	}

	if params.FrameSize() == 0 {
		return Params{}, 0, fmt.Errorf("%w: %d channels at %d bits per sample",
			ErrFormat, fields.NumChans, fields.BitsPerSample)
	}

	params.NumFrames = int(size) / params.FrameSize()

	return params, int(fields.ByteRate), nil
}

// writeHeader serializes the fixed PCM header for the passed params.
// The RIFF and data chunk sizes are derived from NumFrames, so the
// frame count must be final before calling.
func writeHeader(w io.Writer, params Params) error {
	write := func(order binary.ByteOrder, field string, value any) error {
		if err := binary.Write(w, order, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", field, err)
		}

		return nil
	}

	if err := write(binary.BigEndian, "RIFF chunk ID", riff.RiffID); err != nil {
		return err
	}

	if err := write(binary.LittleEndian, "RIFF chunk size", uint32(36+params.dataSize())); err != nil {
		return err
	}

	if err := write(binary.BigEndian, "format tag", riff.WavFormatID); err != nil {
		return err
	}

	if err := write(binary.BigEndian, "fmt sub-chunk ID", riff.FmtID); err != nil {
		return err
	}

	if err := write(binary.LittleEndian, "fmt sub-chunk size", uint32(fmtChunkSize)); err != nil {
		return err
	}

	if err := write(binary.LittleEndian, "audio format code", uint16(audioFormatPCM)); err != nil {
		return err
	}

	if err := write(binary.LittleEndian, "channel count", uint16(params.NumChans)); err != nil {
		return err
	}

	if err := write(binary.LittleEndian, "frame rate", uint32(params.SampleRate)); err != nil {
		return err
	}

	if err := write(binary.LittleEndian, "byte rate", uint32(params.ByteRate())); err != nil {
		return err
	}

	if err := write(binary.LittleEndian, "block align", uint16(params.FrameSize())); err != nil {
		return err
	}

	if err := write(binary.LittleEndian, "bits per sample", uint16(params.BitDepth())); err != nil {
		return err
	}

	if err := write(binary.BigEndian, "data sub-chunk ID", riff.DataFormatID); err != nil {
		return err
	}

	return write(binary.LittleEndian, "data sub-chunk size", uint32(params.dataSize()))
}
