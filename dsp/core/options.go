package core

// RecordingConfig describes a fixed-rate multichannel recording.
type RecordingConfig struct {
	SampleRate float64
	Channels   int
}

// RecordingOption mutates a RecordingConfig.
type RecordingOption func(*RecordingConfig)

// DefaultRecordingConfig returns defaults for a typical polysomnography montage.
func DefaultRecordingConfig() RecordingConfig {
	return RecordingConfig{
		SampleRate: 200,
		Channels:   1,
	}
}

// WithSampleRate sets the recording sample rate in Hz.
func WithSampleRate(sampleRate float64) RecordingOption {
	return func(cfg *RecordingConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithChannels sets the number of recorded channels.
func WithChannels(channels int) RecordingOption {
	return func(cfg *RecordingConfig) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// ApplyRecordingOptions applies zero or more options to the default config.
func ApplyRecordingOptions(opts ...RecordingOption) RecordingConfig {
	cfg := DefaultRecordingConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
