package core

import "testing"

func TestNewMatrix(t *testing.T) {
	m := NewMatrix(3, 4)
	if len(m) != 3 {
		t.Fatalf("rows = %d, want 3", len(m))
	}
	for r := range m {
		if len(m[r]) != 4 {
			t.Fatalf("cols = %d, want 4", len(m[r]))
		}
	}
	m[0][0] = 1
	m[2][3] = 2
	if m[1][0] != 0 {
		t.Fatal("expected zero initialization")
	}

	if NewMatrix(0, 4) != nil {
		t.Fatal("expected nil for zero rows")
	}
}

func TestCloneMatrix(t *testing.T) {
	src := NewMatrix(2, 2)
	src[0][0] = 5
	dst := CloneMatrix(src)
	dst[0][0] = 7
	if src[0][0] != 5 {
		t.Fatal("clone aliases source")
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1, 1+1e-13, 1e-12) {
		t.Fatal("expected nearly equal")
	}
	if NearlyEqual(1, 1.1, 1e-12) {
		t.Fatal("expected not equal")
	}
	if !NearlyEqual(0, 0, 0) {
		t.Fatal("expected equal zeros with default epsilon")
	}
}

func TestApplyRecordingOptions(t *testing.T) {
	cfg := ApplyRecordingOptions(WithSampleRate(256), WithChannels(8))
	if cfg.SampleRate != 256 || cfg.Channels != 8 {
		t.Fatalf("cfg = %+v", cfg)
	}

	cfg = ApplyRecordingOptions(WithSampleRate(-1))
	if cfg.SampleRate != DefaultRecordingConfig().SampleRate {
		t.Fatalf("invalid rate accepted: %v", cfg.SampleRate)
	}
}
