// This tool converts a PCM WAVE file into an identical aiff file and
// stores it in the same folder as the source.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-audio/aiff"
	"github.com/simpledsp/wave"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("wavetoaiff", flag.ContinueOnError)

	path := flagSet.String("path", "", "the path to the wav file to convert to aiff")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("you must set the -path flag")
	}

	file, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("invalid path %s: %w", *path, err)
	}
	defer file.Close()

	reader, err := wave.NewReader(file)
	if err != nil {
		return err
	}

	buf, err := reader.FullIntBuffer()
	if err != nil {
		return err
	}

	outPath := (*path)[:len(*path)-len(filepath.Ext(*path))] + ".aif"

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	encoder := aiff.NewEncoder(outFile, reader.SampleRate(), reader.Params().BitDepth(), reader.NumChans())

	err = encoder.Write(buf)
	if err != nil {
		return fmt.Errorf("failed to write aiff samples: %w", err)
	}

	return encoder.Close()
}
