// Package signal generates deterministic synthetic recordings for tests,
// examples and benchmarks.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mathworks/Sleep-Spindle-Detector/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.RecordingConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(coreOpts []core.RecordingOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyRecordingOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator recording configuration.
func (g *Generator) Config() core.RecordingConfig {
	return g.cfg
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("signal: sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Burst places a Hann-windowed sine burst of burstLen samples at offset inside
// an otherwise zero signal of total samples. This approximates a spindle-like
// oscillation with smooth onset and offset.
func (g *Generator) Burst(freqHz, amplitude float64, burstLen, offset, total int) ([]float64, error) {
	if total <= 0 {
		return nil, fmt.Errorf("signal: burst total samples must be > 0: %d", total)
	}
	if burstLen <= 0 || offset < 0 || offset+burstLen > total {
		return nil, fmt.Errorf("signal: burst [%d, %d) does not fit in %d samples",
			offset, offset+burstLen, total)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("signal: sample rate must be > 0: %f", g.cfg.SampleRate)
	}

	out := make([]float64, total)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	span := float64(burstLen - 1)
	if span == 0 {
		span = 1
	}
	for i := 0; i < burstLen; i++ {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/span))
		out[offset+i] = amplitude * w * math.Sin(step*float64(i))
	}
	return out, nil
}

// Steps generates a piecewise-constant signal: level[i] holds from edge[i]
// until edge[i+1] (or the end for the last level). Edges must be strictly
// increasing, start at 0 and stay below samples.
func Steps(levels []float64, edges []int, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: steps samples must be > 0: %d", samples)
	}
	if len(levels) == 0 || len(levels) != len(edges) {
		return nil, fmt.Errorf("signal: steps needs matching levels and edges: %d != %d",
			len(levels), len(edges))
	}
	if edges[0] != 0 {
		return nil, fmt.Errorf("signal: first step edge must be 0: %d", edges[0])
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] || edges[i] >= samples {
			return nil, fmt.Errorf("signal: step edges must be strictly increasing and < %d", samples)
		}
	}

	out := make([]float64, samples)
	for i, level := range levels {
		end := samples
		if i+1 < len(edges) {
			end = edges[i+1]
		}
		for j := edges[i]; j < end; j++ {
			out[j] = level
		}
	}
	return out, nil
}

// Add sums signals of equal length into a new slice.
func Add(signals ...[]float64) ([]float64, error) {
	if len(signals) == 0 {
		return nil, fmt.Errorf("signal: add needs at least one input")
	}
	n := len(signals[0])
	out := make([]float64, n)
	for _, s := range signals {
		if len(s) != n {
			return nil, fmt.Errorf("signal: add length mismatch: %d != %d", len(s), n)
		}
		for i, v := range s {
			out[i] += v
		}
	}
	return out, nil
}
