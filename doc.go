// Package wave reads and writes canonical PCM WAVE (RIFF) streams.
//
// The package is a strict codec for the fixed 44-byte PCM layout: a
// RIFF descriptor, one 16-byte fmt sub-chunk, and one data sub-chunk.
// Reader parses and validates the header eagerly and then exposes
// forward-only access to the sample data as raw bytes, per-frame byte
// groups, or decoded integer frames. Writer mirrors those operations
// and defers header emission to the first write, so the total frame
// count must be fixed up front.
//
// Sample widths 1, 2, 4, and 8 bytes map directly to signed integers.
// Odd widths (3, 5, 7 bytes; 24-bit audio in practice) are stored
// through a promoted power-of-two integer, with the padding convention
// selected by a Promotion policy. See Pack and Unpack for the
// standalone codec functions.
package wave
