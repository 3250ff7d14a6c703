// Package detect locates sleep spindles in multichannel EEG recordings.
//
// The pipeline separates each recording into a sparse transient component and
// a low-rank oscillatory component (dsp/separate), isolates the sigma band of
// the oscillatory part (dsp/bandpass), extracts a channel-averaged
// Teager-Kaiser envelope (dsp/teager), and thresholds it. Candidate intervals
// closer than the merge gap are fused, then intervals outside the accepted
// duration range are discarded.
package detect

import (
	"fmt"

	"github.com/mathworks/Sleep-Spindle-Detector/dsp/bandpass"
	"github.com/mathworks/Sleep-Spindle-Detector/dsp/core"
	"github.com/mathworks/Sleep-Spindle-Detector/dsp/separate"
	"github.com/mathworks/Sleep-Spindle-Detector/dsp/teager"
)

// Spindle is one detected event, as a half-open sample interval [Start, End).
type Spindle struct {
	Start int
	End   int
}

// Duration returns the event length in seconds at the given sample rate.
func (s Spindle) Duration(sampleRate float64) float64 {
	return float64(s.End-s.Start) / sampleRate
}

// Result holds detected spindles and the intermediate pipeline signals.
// Cost carries the decomposition's per-iteration objective when cost history
// is enabled in the separation parameters.
type Result struct {
	Spindles    []Spindle
	Transient   [][]float64
	Oscillatory [][]float64
	Envelope    []float64
	Cost        []float64
}

// Detector runs the detection pipeline with a fixed configuration.
type Detector struct {
	cfg Config
	bp  *bandpass.Filter
}

// New creates a detector. The bandpass design is validated here; decomposition
// parameters are validated on each Detect call against the actual input.
func New(opts ...Option) (*Detector, error) {
	cfg := ApplyOptions(opts...)
	bp, err := bandpass.New(cfg.LowHz, cfg.HighHz, cfg.SampleRate, cfg.FilterTaps)
	if err != nil {
		return nil, err
	}
	return &Detector{cfg: cfg, bp: bp}, nil
}

// Config returns the detector configuration.
func (d *Detector) Config() Config {
	return d.cfg
}

// Detect runs the pipeline on a channels x samples recording.
//
// The recording is zero-padded to the next length compatible with the block
// grid of the decomposition; all returned signals and intervals are trimmed
// back to the input length.
func (d *Detector) Detect(y [][]float64) (*Result, error) {
	if len(y) == 0 || len(y[0]) == 0 {
		return nil, fmt.Errorf("detect: input must be a non-empty matrix")
	}
	n := len(y[0])

	padded, err := padToBlockGrid(y, d.cfg.Separation.BlockLen, d.cfg.Separation.Overlap)
	if err != nil {
		return nil, err
	}

	sep, err := separate.Decompose(padded, d.cfg.Separation)
	if err != nil {
		return nil, err
	}

	band, err := d.bp.ApplyChannels(sep.Oscillatory)
	if err != nil {
		return nil, err
	}

	env := teager.MeanEnergy(band)[:n]
	spindles := threshold(env, d.cfg.Threshold)
	rate := d.cfg.SampleRate
	spindles = mergeClose(spindles, int(d.cfg.MergeGap*rate))
	spindles = filterDurations(spindles, d.cfg.MinDuration, d.cfg.MaxDuration, rate)

	return &Result{
		Spindles:    spindles,
		Transient:   trimChannels(sep.Transient, n),
		Oscillatory: trimChannels(sep.Oscillatory, n),
		Envelope:    env,
		Cost:        sep.Cost,
	}, nil
}

// padToBlockGrid zero-extends each channel so the decomposition's block grid
// covers the signal exactly. Inputs already on the grid are returned with their
// rows copied, never aliased.
func padToBlockGrid(y [][]float64, blockLen, overlap int) ([][]float64, error) {
	if blockLen <= 0 {
		return nil, fmt.Errorf("detect: block length must be > 0: %d", blockLen)
	}
	hop := blockLen - overlap
	if hop <= 0 || overlap < 0 {
		return nil, fmt.Errorf("detect: overlap must satisfy 0 <= overlap < block length: %d", overlap)
	}

	n := len(y[0])
	padded := n
	if padded < blockLen {
		padded = blockLen
	}
	if rem := (padded - blockLen) % hop; rem != 0 {
		padded += hop - rem
	}

	out := core.NewMatrix(len(y), padded)
	for r, row := range y {
		if len(row) != n {
			return nil, fmt.Errorf("detect: channel %d has %d samples, want %d", r, len(row), n)
		}
		copy(out[r], row)
	}
	return out, nil
}

// threshold returns the maximal runs where env exceeds the threshold.
func threshold(env []float64, thresh float64) []Spindle {
	var out []Spindle
	start := -1
	for i, v := range env {
		if v > thresh {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, Spindle{Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, Spindle{Start: start, End: len(env)})
	}
	return out
}

// mergeClose fuses consecutive intervals separated by fewer than gap samples.
func mergeClose(in []Spindle, gap int) []Spindle {
	if len(in) == 0 {
		return in
	}
	out := []Spindle{in[0]}
	for _, s := range in[1:] {
		last := &out[len(out)-1]
		if s.Start-last.End < gap {
			last.End = s.End
			continue
		}
		out = append(out, s)
	}
	return out
}

// filterDurations drops intervals outside [minSec, maxSec].
func filterDurations(in []Spindle, minSec, maxSec float64, rate float64) []Spindle {
	out := in[:0]
	for _, s := range in {
		d := s.Duration(rate)
		if d < minSec || d > maxSec {
			continue
		}
		out = append(out, s)
	}
	return out
}

func trimChannels(x [][]float64, n int) [][]float64 {
	out := make([][]float64, len(x))
	for r, row := range x {
		out[r] = row[:n]
	}
	return out
}
