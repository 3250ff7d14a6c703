package detect

import (
	"github.com/mathworks/Sleep-Spindle-Detector/dsp/core"
	"github.com/mathworks/Sleep-Spindle-Detector/dsp/separate"
)

// Config defines the spindle detection pipeline settings.
type Config struct {
	core.RecordingConfig

	// Separation parameterizes the transient/oscillatory decomposition.
	Separation separate.Params

	// LowHz and HighHz bound the sigma band isolated before envelope
	// extraction.
	LowHz  float64
	HighHz float64
	// FilterTaps is the bandpass FIR length.
	FilterTaps int

	// Threshold is applied to the channel-averaged Teager-Kaiser envelope of
	// the bandpassed oscillatory component.
	Threshold float64

	// MinDuration and MaxDuration bound accepted spindle lengths in seconds.
	MinDuration float64
	MaxDuration float64
	// MergeGap merges detections separated by less than this many seconds.
	MergeGap float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the reference pipeline settings for 200 Hz recordings:
// a 1-second analysis block with 50% overlap, sigma band 11-16 Hz, and the
// standard 0.5-3 s spindle duration constraints.
func DefaultConfig() Config {
	return Config{
		RecordingConfig: core.DefaultRecordingConfig(),
		Separation:      separate.NewParams(200),
		LowHz:           11,
		HighHz:          16,
		FilterTaps:      201,
		Threshold:       0.5,
		MinDuration:     0.5,
		MaxDuration:     3,
		MergeGap:        0.3,
	}
}

// WithSampleRate sets the recording sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithSeparation sets the decomposition parameters.
func WithSeparation(p separate.Params) Option {
	return func(cfg *Config) {
		cfg.Separation = p
	}
}

// WithBand sets the sigma band in Hz.
func WithBand(lowHz, highHz float64) Option {
	return func(cfg *Config) {
		cfg.LowHz = lowHz
		cfg.HighHz = highHz
	}
}

// WithFilterTaps sets the bandpass FIR length.
func WithFilterTaps(taps int) Option {
	return func(cfg *Config) {
		if taps > 0 {
			cfg.FilterTaps = taps
		}
	}
}

// WithThreshold sets the envelope detection threshold.
func WithThreshold(threshold float64) Option {
	return func(cfg *Config) {
		cfg.Threshold = threshold
	}
}

// WithDurations sets the accepted spindle duration range in seconds.
func WithDurations(minSec, maxSec float64) Option {
	return func(cfg *Config) {
		cfg.MinDuration = minSec
		cfg.MaxDuration = maxSec
	}
}

// WithMergeGap sets the maximum gap in seconds bridged between detections.
func WithMergeGap(gapSec float64) Option {
	return func(cfg *Config) {
		cfg.MergeGap = gapSec
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
