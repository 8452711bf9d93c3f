package wave

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestPackUnpackDirectWidths(t *testing.T) {
	testCases := []struct {
		name   string
		width  SampleWidth
		order  binary.ByteOrder
		values []int
		bytes  []byte
	}{
		{"int8", Width8, binary.LittleEndian, []int{100, -100}, []byte{0x64, 0x9C}},
		{"int16le", Width16, binary.LittleEndian, []int{100, -200, 32767}, []byte{0x64, 0x00, 0x38, 0xFF, 0xFF, 0x7F}},
		{"int16be", Width16, binary.BigEndian, []int{0x1234, -2}, []byte{0x12, 0x34, 0xFF, 0xFE}},
		{"int32le", Width32, binary.LittleEndian, []int{-1}, []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{"int32be", Width32, binary.BigEndian, []int{0x01020304}, []byte{0x01, 0x02, 0x03, 0x04}},
		{"int64le", Width64, binary.LittleEndian, []int{-2}, []byte{0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			data, err := Pack(testCase.width, testCase.order, PromoteSignExtend, testCase.values...)
			if err != nil {
				t.Fatal(err)
			}

			if !bytes.Equal(data, testCase.bytes) {
				t.Fatalf("expected packed bytes % X but got % X", testCase.bytes, data)
			}

			values, err := Unpack(testCase.width, testCase.order, PromoteSignExtend, data)
			if err != nil {
				t.Fatal(err)
			}

			assertIntSlicesEqual(t, testCase.values, values)
		})
	}
}

func TestPromotedWidths(t *testing.T) {
	testCases := []struct {
		width SampleWidth
		wide  SampleWidth
	}{
		{3, 4},
		{5, 8},
		{7, 8},
	}

	for _, testCase := range testCases {
		wide, ok := testCase.width.promoted()
		if !ok {
			t.Fatalf("expected width %d to be promoted", testCase.width)
		}

		if wide != testCase.wide {
			t.Fatalf("expected width %d to promote to %d but got %d", testCase.width, testCase.wide, wide)
		}
	}

	for _, width := range []SampleWidth{1, 2, 4, 8} {
		if _, ok := width.promoted(); ok {
			t.Fatalf("direct width %d must not be promoted", width)
		}
	}
}

func TestSignExtendRoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		width  SampleWidth
		values []int
	}{
		{"width3", 3, []int{-1, 0, 1, 100, -200, 8388607, -8388608}},
		{"width5", 5, []int{-1, 549755813887, -549755813888}},
		{"width7", 7, []int{-1, 42, -4242}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			data, err := Pack(testCase.width, binary.LittleEndian, PromoteSignExtend, testCase.values...)
			if err != nil {
				t.Fatal(err)
			}

			if len(data) != len(testCase.values)*int(testCase.width) {
				t.Fatalf("expected %d packed bytes but got %d", len(testCase.values)*int(testCase.width), len(data))
			}

			values, err := Unpack(testCase.width, binary.LittleEndian, PromoteSignExtend, data)
			if err != nil {
				t.Fatal(err)
			}

			assertIntSlicesEqual(t, testCase.values, values)
		})
	}
}

// The zero-pad policy reproduces the historical byte transformation,
// which pads at the wrong end of a little-endian buffer. Its output is
// pinned here so compatibility with legacy streams never drifts.
func TestZeroPadLegacyBehavior(t *testing.T) {
	data, err := Pack(3, binary.LittleEndian, PromoteZeroPad, -1)
	if err != nil {
		t.Fatal(err)
	}

	// -1 as int32 is FF FF FF FF; the legacy encoding keeps the trailing
	// three bytes.
	if !bytes.Equal(data, []byte{0xFF, 0xFF, 0xFF}) {
		t.Fatalf("expected legacy bytes FF FF FF but got % X", data)
	}

	values, err := Unpack(3, binary.LittleEndian, PromoteZeroPad, data)
	if err != nil {
		t.Fatal(err)
	}

	// Prepending the zero byte shifts the data up instead of extending
	// the sign: 00 FF FF FF decodes to -256, not -1.
	if len(values) != 1 || values[0] != -256 {
		t.Fatalf("expected legacy decode of -1 to yield -256 but got %v", values)
	}

	// Values that fit the low three bytes with a clear sign bit survive.
	data, err = Pack(3, binary.LittleEndian, PromoteZeroPad, 100)
	if err != nil {
		t.Fatal(err)
	}

	values, err = Unpack(3, binary.LittleEndian, PromoteZeroPad, data)
	if err != nil {
		t.Fatal(err)
	}

	// 100 encodes to 64 00 00; the prepended zero makes 00 64 00 00,
	// decoding to 100 << 8.
	if len(values) != 1 || values[0] != 100<<8 {
		t.Fatalf("expected legacy decode of 100 to yield %d but got %v", 100<<8, values)
	}
}

func TestCodecErrors(t *testing.T) {
	for _, width := range []SampleWidth{0, -1, 6, 9, 16} {
		_, err := Pack(width, binary.LittleEndian, PromoteSignExtend, 1)
		if !errors.Is(err, ErrUnsupportedWidth) {
			t.Fatalf("expected ErrUnsupportedWidth for pack width %d but got %v", width, err)
		}

		_, err = Unpack(width, binary.LittleEndian, PromoteSignExtend, make([]byte, 8))
		if !errors.Is(err, ErrUnsupportedWidth) {
			t.Fatalf("expected ErrUnsupportedWidth for unpack width %d but got %v", width, err)
		}
	}

	_, err := Unpack(Width16, binary.LittleEndian, PromoteSignExtend, []byte{0x01, 0x02, 0x03})
	if err == nil {
		t.Fatal("expected an error for misaligned data")
	}
}

func assertIntSlicesEqual(t *testing.T, expected, actual []int) {
	t.Helper()

	if len(expected) != len(actual) {
		t.Fatalf("expected %d values but got %d", len(expected), len(actual))
	}

	for i := range expected {
		if expected[i] != actual[i] {
			t.Fatalf("expected value %d at index %d but got %d", expected[i], i, actual[i])
		}
	}
}
