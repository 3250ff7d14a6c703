package detect

import (
	"testing"

	"github.com/mathworks/Sleep-Spindle-Detector/dsp/core"
	"github.com/mathworks/Sleep-Spindle-Detector/dsp/separate"
	"github.com/mathworks/Sleep-Spindle-Detector/dsp/signal"
)

func TestThreshold(t *testing.T) {
	env := []float64{0, 1, 1, 0, 0, 1, 0, 1}
	got := threshold(env, 0.5)
	want := []Spindle{{1, 3}, {5, 6}, {7, 8}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMergeClose(t *testing.T) {
	in := []Spindle{{0, 10}, {12, 20}, {40, 50}}
	got := mergeClose(in, 5)
	want := []Spindle{{0, 20}, {40, 50}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if got := mergeClose(nil, 5); len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}

func TestFilterDurations(t *testing.T) {
	in := []Spindle{{0, 10}, {20, 200}, {300, 1000}}
	got := filterDurations(in, 0.1, 2, 100)
	// 0.1 s is too short, 7 s too long; only the 1.8 s interval survives.
	if len(got) != 1 || got[0] != (Spindle{20, 200}) {
		t.Fatalf("got %v, want [{20 200}]", got)
	}
}

func TestPadToBlockGrid(t *testing.T) {
	y := [][]float64{make([]float64, 33), make([]float64, 33)}
	y[0][32] = 1

	out, err := padToBlockGrid(y, 8, 4)
	if err != nil {
		t.Fatalf("padToBlockGrid: %v", err)
	}
	if len(out[0]) != 36 {
		t.Fatalf("padded length = %d, want 36", len(out[0]))
	}
	if out[0][32] != 1 || out[0][35] != 0 {
		t.Fatal("padding corrupted samples")
	}

	// Already on the grid: length preserved, rows copied.
	y2 := [][]float64{make([]float64, 32)}
	out2, err := padToBlockGrid(y2, 8, 4)
	if err != nil {
		t.Fatalf("padToBlockGrid: %v", err)
	}
	if len(out2[0]) != 32 {
		t.Fatalf("padded length = %d, want 32", len(out2[0]))
	}
	if &out2[0][0] == &y2[0][0] {
		t.Fatal("output aliases input")
	}
}

func TestDetectSyntheticSpindles(t *testing.T) {
	if testing.Short() {
		t.Skip("full pipeline run")
	}

	const (
		rate     = 200.0
		n        = 2000
		burstLen = 200
	)
	truth := []Spindle{{400, 600}, {1200, 1400}}

	cfg := core.ApplyRecordingOptions(
		core.WithSampleRate(rate),
		core.WithChannels(3),
	)
	channels := make([][]float64, cfg.Channels)
	for ch := range channels {
		g := signal.NewGenerator(
			[]core.RecordingOption{core.WithSampleRate(cfg.SampleRate)},
			signal.WithSeed(int64(ch)+1),
		)
		b1, err := g.Burst(13, 6, burstLen, truth[0].Start, n)
		if err != nil {
			t.Fatalf("Burst: %v", err)
		}
		b2, err := g.Burst(13, 6, burstLen, truth[1].Start, n)
		if err != nil {
			t.Fatalf("Burst: %v", err)
		}
		steps, err := signal.Steps([]float64{0, 3, 0}, []int{0, 600, 800}, n)
		if err != nil {
			t.Fatalf("Steps: %v", err)
		}
		noise, err := g.WhiteNoise(0.1, n)
		if err != nil {
			t.Fatalf("WhiteNoise: %v", err)
		}
		row, err := signal.Add(b1, b2, steps, noise)
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		channels[ch] = row
	}

	d, err := New(
		WithSampleRate(rate),
		WithSeparation(separate.NewParams(100,
			separate.WithWeights(0.1, 1, 3),
			separate.WithIterations(30),
		)),
		WithThreshold(0.05),
		WithDurations(0.3, 3),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := d.Detect(channels)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if len(res.Envelope) != n {
		t.Fatalf("envelope length = %d, want %d", len(res.Envelope), n)
	}
	if len(res.Transient) != 3 || len(res.Transient[0]) != n {
		t.Fatalf("transient shape %d x %d", len(res.Transient), len(res.Transient[0]))
	}

	// The envelope inside the planted bursts must clear the threshold with
	// margin, and the background must stay well below it: the rank penalty
	// attenuates the burst amplitude, so the threshold sits in the attenuated
	// scale, not the input scale.
	var inBurst, background float64
	for i, v := range res.Envelope {
		covered := false
		for _, want := range truth {
			if i >= want.Start && i < want.End {
				covered = true
				break
			}
		}
		if covered {
			if v > inBurst {
				inBurst = v
			}
		} else if v > background {
			background = v
		}
	}
	thresh := d.Config().Threshold
	if inBurst <= 2*thresh {
		t.Fatalf("burst envelope peak %v too close to threshold %v", inBurst, thresh)
	}
	if background >= thresh {
		t.Fatalf("background envelope peak %v reaches threshold %v", background, thresh)
	}

	if len(res.Spindles) != len(truth) {
		t.Fatalf("detected %d spindles (%v), want %d", len(res.Spindles), res.Spindles, len(truth))
	}
	for i, want := range truth {
		got := res.Spindles[i]
		if got.End <= want.Start || got.Start >= want.End {
			t.Errorf("spindle %d = %v does not overlap ground truth %v", i, got, want)
		}
	}
}

func TestDetectRejectsEmptyInput(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := d.Detect(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := d.Detect([][]float64{{}}); err == nil {
		t.Fatal("expected error for empty channel")
	}
}

func TestApplyOptions(t *testing.T) {
	cfg := ApplyOptions(
		WithSampleRate(256),
		WithBand(12, 15),
		WithThreshold(0.7),
		WithDurations(0.4, 2.5),
		WithMergeGap(0.2),
		WithFilterTaps(151),
	)
	if cfg.SampleRate != 256 || cfg.LowHz != 12 || cfg.HighHz != 15 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Threshold != 0.7 || cfg.MinDuration != 0.4 || cfg.MaxDuration != 2.5 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.MergeGap != 0.2 || cfg.FilterTaps != 151 {
		t.Fatalf("cfg = %+v", cfg)
	}
}
