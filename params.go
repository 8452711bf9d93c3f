package wave

// Params holds the four stream attributes shared by Reader and Writer.
type Params struct {
	// NumChans is the count of interleaved audio channels.
	NumChans int
	// SampleWidth is the number of bytes per sample per channel.
	SampleWidth int
	// SampleRate is the number of frames per second.
	SampleRate int
	// NumFrames is the total frame count of the data chunk. A Writer
	// must have it fixed before the first write because the data chunk
	// size is emitted once, in the header.
	NumFrames int
}

// FrameSize returns the number of bytes per frame (block align).
func (p Params) FrameSize() int {
	return p.NumChans * p.SampleWidth
}

// BitDepth returns the bit depth encoding of each sample.
func (p Params) BitDepth() int {
	return p.SampleWidth * 8
}

// ByteRate returns the average number of data bytes per second.
func (p Params) ByteRate() int {
	return p.SampleRate * p.FrameSize()
}

func (p Params) dataSize() int {
	return p.NumFrames * p.FrameSize()
}
