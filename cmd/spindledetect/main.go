// Command spindledetect locates sleep spindles in a multichannel recording.
//
// Usage:
//
//	spindledetect [flags] recording.csv
//
// The input is CSV with one column per channel and one row per sample; a
// non-numeric first row is treated as a header and skipped.
//
// Examples:
//
//	spindledetect -rate 200 night1.csv
//	spindledetect -rate 256 -block 256 -low 12 -high 15 night1.csv
//	spindledetect -rate 200 -lam1 0.4 -lam2 7 -lam3 40 -iters 60 -cost night1.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/mathworks/Sleep-Spindle-Detector/detect"
	"github.com/mathworks/Sleep-Spindle-Detector/dsp/separate"
)

func main() {
	rate := flag.Float64("rate", 200, "sample rate in Hz")
	block := flag.Int("block", 0, "analysis block length in samples (default: one second)")
	overlap := flag.Int("overlap", -1, "block overlap in samples (default: half the block length)")
	lam1 := flag.Float64("lam1", 0.3, "transient sparsity weight")
	lam2 := flag.Float64("lam2", 6.5, "transient second-difference sparsity weight")
	lam3 := flag.Float64("lam3", 36, "block rank penalty weight")
	mu := flag.Float64("mu", 0.5, "ADMM step size")
	iters := flag.Int("iters", 40, "ADMM iteration count")
	low := flag.Float64("low", 11, "sigma band lower edge in Hz")
	high := flag.Float64("high", 16, "sigma band upper edge in Hz")
	taps := flag.Int("taps", 201, "bandpass FIR length")
	threshold := flag.Float64("threshold", 0.5, "envelope detection threshold")
	minDur := flag.Float64("min", 0.5, "minimum spindle duration in seconds")
	maxDur := flag.Float64("max", 3, "maximum spindle duration in seconds")
	gap := flag.Float64("gap", 0.3, "merge detections separated by less than this many seconds")
	cost := flag.Bool("cost", false, "print the per-iteration objective to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: spindledetect [flags] recording.csv\n\n")
		fmt.Fprintf(os.Stderr, "Locates sleep spindles in a multichannel CSV recording\n")
		fmt.Fprintf(os.Stderr, "(one column per channel, one row per sample).\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	channels, err := readRecording(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	blockLen := *block
	if blockLen <= 0 {
		blockLen = int(*rate)
	}
	sepOpts := []separate.Option{
		separate.WithWeights(*lam1, *lam2, *lam3),
		separate.WithStepSize(*mu),
		separate.WithIterations(*iters),
	}
	if *overlap >= 0 {
		sepOpts = append(sepOpts, separate.WithOverlap(*overlap))
	}
	if *cost {
		sepOpts = append(sepOpts, separate.WithCostHistory())
	}

	detector, err := detect.New(
		detect.WithSampleRate(*rate),
		detect.WithSeparation(separate.NewParams(blockLen, sepOpts...)),
		detect.WithBand(*low, *high),
		detect.WithFilterTaps(*taps),
		detect.WithThreshold(*threshold),
		detect.WithDurations(*minDur, *maxDur),
		detect.WithMergeGap(*gap),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	result, err := detector.Detect(channels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *cost {
		for i, v := range result.Cost {
			fmt.Fprintf(os.Stderr, "iteration %d: cost %.6f\n", i+1, v)
		}
	}

	printSpindles(result.Spindles, *rate)
}

// readRecording loads a CSV with one column per channel into channel-major
// rows. A non-numeric first record is treated as a header.
func readRecording(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty recording", path)
	}

	start := 0
	if _, err := strconv.ParseFloat(records[0][0], 64); err != nil {
		start = 1
	}
	if start >= len(records) {
		return nil, fmt.Errorf("%s: no samples", path)
	}

	numChannels := len(records[start])
	channels := make([][]float64, numChannels)
	for ch := range channels {
		channels[ch] = make([]float64, len(records)-start)
	}
	for i, rec := range records[start:] {
		if len(rec) != numChannels {
			return nil, fmt.Errorf("%s: row %d has %d columns, want %d",
				path, start+i+1, len(rec), numChannels)
		}
		for ch, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d column %d: %w", path, start+i+1, ch+1, err)
			}
			channels[ch][i] = v
		}
	}
	return channels, nil
}

func printSpindles(spindles []detect.Spindle, rate float64) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tStart [s]\tEnd [s]\tDuration [s]\n")
	for i, s := range spindles {
		fmt.Fprintf(tw, "%d\t%.3f\t%.3f\t%.3f\n",
			i+1,
			float64(s.Start)/rate,
			float64(s.End)/rate,
			s.Duration(rate),
		)
	}
	if len(spindles) == 0 {
		fmt.Fprintf(tw, "-\tno spindles detected\t\t\n")
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
