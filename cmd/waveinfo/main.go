// waveinfo prints the stream parameters of one or more PCM WAVE files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/simpledsp/wave"
	"golang.org/x/sync/errgroup"
)

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("waveinfo", flag.ContinueOnError)

	concurrency := flagSet.Int("concurrency", 4, "number of files inspected in parallel")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	paths := flagSet.Args()
	if len(paths) == 0 {
		return fmt.Errorf("usage: waveinfo [flags] file [file ...]")
	}

	group, _ := errgroup.WithContext(context.Background())
	group.SetLimit(*concurrency)

	lines := make([]string, len(paths))

	for i, path := range paths {
		group.Go(func() error {
			stream, err := wave.Open(path, wave.ModeRead)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			defer stream.Close()

			params := stream.Params()
			dur := time.Duration(0)
			if params.SampleRate > 0 {
				dur = time.Duration(params.NumFrames) * time.Second / time.Duration(params.SampleRate)
			}

			lines[i] = fmt.Sprintf("%s: %d ch, %d Hz, %d-bit, %d frames (%s)",
				path, params.NumChans, params.SampleRate, params.BitDepth(), params.NumFrames, dur)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	for _, line := range lines {
		fmt.Fprintln(out, line)
	}

	return nil
}
