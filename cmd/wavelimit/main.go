// wavelimit applies a gain to a PCM WAVE stream and limits every sample
// to the integer range of the output width. It reads from a file or
// STDIN and writes to a file or STDOUT.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/simpledsp/wave"
)

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	flagSet := flag.NewFlagSet("wavelimit", flag.ContinueOnError)

	input := flagSet.String("input", "", "path to the input file, STDIN when empty")
	output := flagSet.String("output", "", "path to the output file, STDOUT when empty")
	gain := flagSet.Float64("gain", 1, "linear gain applied before limiting")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	src := stdin
	if *input != "" {
		file, err := os.Open(*input)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", *input, err)
		}
		defer file.Close()

		src = file
	}

	dst := stdout
	if *output != "" {
		file, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", *output, err)
		}
		defer file.Close()

		dst = file
	}

	return process(src, dst, *gain)
}

func process(src io.Reader, dst io.Writer, gain float64) error {
	reader, err := wave.NewReader(src)
	if err != nil {
		return err
	}

	writer := wave.NewWriter(dst)
	writer.SetParams(reader.Params())

	maxSample := 1<<(writer.Params().BitDepth()-1) - 1

	for frame := range reader.Frames(reader.NumFrames()) {
		for i, sample := range frame {
			frame[i] = limitSample(int(float64(sample)*gain), maxSample)
		}

		err := writer.WriteFrames([][]int{frame})
		if err != nil {
			return err
		}
	}

	return reader.Err()
}

// limitSample clamps a sample to the range the output width can store.
func limitSample(sample, maxSample int) int {
	if sample > maxSample {
		return maxSample
	}

	if sample < -maxSample {
		return -maxSample
	}

	return sample
}
