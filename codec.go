package wave

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrUnsupportedWidth is returned when a sample width has no integer
// representation, neither direct nor promoted.
var ErrUnsupportedWidth = errors.New("unsupported sample width")

var errMisalignedData = errors.New("data length is not a multiple of the sample width")

// SampleWidth enumerates the byte widths with a direct signed integer
// representation.
type SampleWidth int

const (
	Width8  SampleWidth = 1
	Width16 SampleWidth = 2
	Width32 SampleWidth = 4
	Width64 SampleWidth = 8
)

// Bits returns the number of bits covered by the width.
func (w SampleWidth) Bits() int {
	return int(w) * 8
}

func (w SampleWidth) direct() bool {
	switch w {
	case Width8, Width16, Width32, Width64:
		return true
	default:
		return false
	}
}

// promoted reports whether the width must be handled through a wider
// integer, and which one. Odd widths above one byte (3, 5, 7) are stored
// in the next power of two: 2^round(sqrt(w)+0.5).
func (w SampleWidth) promoted() (SampleWidth, bool) {
	if w.direct() || w < 1 || w > 8 || w%2 == 0 {
		return 0, false
	}

	exp := int(math.Round(math.Sqrt(float64(w)) + 0.5))

	return SampleWidth(1 << exp), true
}

// Promotion selects how samples of a promoted width (3, 5, or 7 bytes)
// are padded and truncated against their wider storage integer.
type Promotion int

const (
	// PromoteSignExtend pads and truncates at the most significant end of
	// the little-endian buffer: encoding keeps the low-order bytes and
	// decoding replicates the sign bit. Values round-trip.
	PromoteSignExtend Promotion = iota
	// PromoteZeroPad reproduces the historical transformation
	// bit-for-bit: decoding prepends zero bytes before the raw bytes and
	// encoding keeps only the trailing bytes of the wide buffer. Because
	// the buffer is little-endian this shifts data into higher byte
	// positions instead of extending the sign, so non-zero high bytes do
	// not round-trip. Use it only to stay byte-compatible with streams
	// written by legacy tooling that padded this way.
	PromoteZeroPad
)

// Pack encodes the passed signed integer values into width bytes each,
// using the given byte order. Direct widths (1, 2, 4, 8) are plain
// two's-complement transcoding. Odd widths above one byte are promoted
// per the policy; promoted samples are always little-endian.
func Pack(width SampleWidth, order binary.ByteOrder, promo Promotion, values ...int) ([]byte, error) {
	if !width.direct() {
		if _, ok := width.promoted(); !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnsupportedWidth, width)
		}
	}

	out := make([]byte, 0, len(values)*int(width))

	for _, value := range values {
		sample, err := packSample(width, order, promo, value)
		if err != nil {
			return nil, err
		}

		out = append(out, sample...)
	}

	return out, nil
}

// Unpack decodes data as a sequence of width-byte signed integers of the
// given byte order, the inverse of Pack. The data length must be a
// multiple of the width.
func Unpack(width SampleWidth, order binary.ByteOrder, promo Promotion, data []byte) ([]int, error) {
	if !width.direct() {
		if _, ok := width.promoted(); !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnsupportedWidth, width)
		}
	}

	if len(data)%int(width) != 0 {
		return nil, fmt.Errorf("%w: %d bytes at width %d", errMisalignedData, len(data), width)
	}

	values := make([]int, 0, len(data)/int(width))
	for off := 0; off < len(data); off += int(width) {
		values = append(values, unpackSample(width, order, promo, data[off:off+int(width)]))
	}

	return values, nil
}

func packSample(width SampleWidth, order binary.ByteOrder, promo Promotion, value int) ([]byte, error) {
	buf := make([]byte, 8)

	switch width {
	case Width8:
		return []byte{byte(int8(value))}, nil
	case Width16:
		order.PutUint16(buf, uint16(int16(value)))
		return buf[:2], nil
	case Width32:
		order.PutUint32(buf, uint32(int32(value)))
		return buf[:4], nil
	case Width64:
		order.PutUint64(buf, uint64(value))
		return buf[:8], nil
	}

	wide, _ := width.promoted()
	binary.LittleEndian.PutUint64(buf, uint64(value))
	wideBuf := buf[:wide]

	if promo == PromoteZeroPad {
		// keep the trailing bytes of the wide buffer
		return wideBuf[int(wide)-int(width):], nil
	}

	// little-endian: the low-order bytes come first
	return wideBuf[:width], nil
}

func unpackSample(width SampleWidth, order binary.ByteOrder, promo Promotion, data []byte) int {
	switch width {
	case Width8:
		return int(int8(data[0]))
	case Width16:
		return int(int16(order.Uint16(data)))
	case Width32:
		return int(int32(order.Uint32(data)))
	case Width64:
		return int(order.Uint64(data))
	}

	wide, _ := width.promoted()

	if promo == PromoteZeroPad {
		buf := make([]byte, wide)
		copy(buf[int(wide)-int(width):], data)

		return wideSigned(wide, buf)
	}

	buf := make([]byte, wide)
	copy(buf, data)

	// replicate the sign bit through the padding bytes
	if data[width-1]&0x80 != 0 {
		for i := int(width); i < int(wide); i++ {
			buf[i] = 0xFF
		}
	}

	return wideSigned(wide, buf)
}

func wideSigned(width SampleWidth, buf []byte) int {
	if width == Width32 {
		return int(int32(binary.LittleEndian.Uint32(buf)))
	}

	return int(binary.LittleEndian.Uint64(buf))
}
