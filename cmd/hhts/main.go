// Command hhts segments every image in a directory into hierarchical
// superpixels and writes one CSV label grid per requested superpixel count,
// plus optional contour overlays.
//
// Usage:
//
//	hhts -s 400,200,100 -o ./output [flags] <input-dir>
//
// The input directory can be passed with -i or as the positional argument.
// See -h for the full flag list; defaults match the historical tool (all
// color channels, 32 bins, minimum region size 64).
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gametechlab/hhts/internal/batch"
	"github.com/gametechlab/hhts/internal/segment"
)

func main() {
	var (
		input       = flag.String("i", "", "the folder to process (can also be passed as positional argument)")
		superpixels = flag.String("s", "", "comma-separated target numbers of superpixels (required)")
		threshold   = flag.Float64("t", 0.0, "min stddev * histogram width for splitting a region")
		bins        = flag.Int("b", 32, "number of histogram bins")
		minSize     = flag.Int("m", 64, "minimum size of segments")
		histWMin    = flag.Int("histwmin", 5, "bin occupancy floor when counting populated bins")
		noRGB       = flag.Bool("nrgb", false, "do not use the RGB channels")
		noHSV       = flag.Bool("nhsv", false, "do not use the HSV channels")
		noLab       = flag.Bool("nlab", false, "do not use the Lab channels")
		applyBlur   = flag.Bool("blur", false, "apply blur to channels")
		noMerge     = flag.Bool("nomerge", false, "skip merging of undersized segments")
		csvDir      = flag.String("o", "", "CSV output directory (empty disables CSV output)")
		visDir      = flag.String("v", "", "contour visualization output directory")
		prefix      = flag.String("x", "", "output file prefix")
		wordy       = flag.Bool("w", false, "verbose/wordy/debug")
		workers     = flag.Int("workers", 1, "number of images processed in parallel")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *wordy {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	if *input == "" {
		*input = flag.Arg(0)
	}
	if *input == "" {
		fmt.Fprintln(os.Stderr, "no input directory given")
		flag.Usage()
		os.Exit(1)
	}
	if info, err := os.Stat(*input); err != nil || !info.IsDir() {
		log.Error().Str("input", *input).Msg("image directory not found")
		os.Exit(1)
	}

	targets, err := parseTargets(*superpixels)
	if err != nil {
		log.Error().Err(err).Msg("invalid -s value")
		os.Exit(1)
	}

	channels := segment.ChannelFamily(0)
	if !*noRGB {
		channels |= segment.ChannelRGB
	}
	if !*noHSV {
		channels |= segment.ChannelHSV
	}
	if !*noLab {
		channels |= segment.ChannelLab
	}

	runner := batch.New(batch.Options{
		InputDir: *input,
		CSVDir:   *csvDir,
		VisDir:   *visDir,
		Prefix:   *prefix,
		Targets:  targets,
		Workers:  *workers,
		Config: segment.Config{
			Channels:       channels,
			Blur:           *applyBlur,
			Bins:           *bins,
			SplitThreshold: *threshold,
			MinHistWidth:   *histWMin,
			MinSize:        *minSize,
			NoMerge:        *noMerge,
		},
	}, log)

	stats, err := runner.Run()
	if err != nil {
		log.Error().Err(err).Msg("batch failed")
		os.Exit(1)
	}
	if *wordy {
		fmt.Printf("Average time: %g - %g.\n", stats.AvgCPU, stats.AvgWall)
	}
}

// parseTargets parses the comma-separated -s value into superpixel counts.
func parseTargets(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("no superpixel counts given")
	}
	parts := strings.Split(s, ",")
	targets := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad superpixel count %q: %w", part, err)
		}
		targets = append(targets, n)
	}
	return targets, nil
}
