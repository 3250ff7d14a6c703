// Package bandpass provides a linear-phase FIR bandpass filter with FFT-based
// application.
//
// Coefficients come from a Hamming-windowed sinc design. Application uses FFT
// convolution and compensates the filter's group delay, so the output has the
// input's length and effectively zero phase, which keeps detected event
// boundaries aligned with the raw recording.
package bandpass

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/mjibson/go-dsp/window"
)

// Filter is a linear-phase FIR bandpass. It caches its FFT plan and the
// kernel spectrum between calls, so a Filter must not be shared across
// goroutines.
type Filter struct {
	taps       []float64
	delay      int
	lowHz      float64
	highHz     float64
	sampleRate float64

	plan     *algofft.Plan[complex128]
	kernelFD []complex128
	fftSize  int
}

// New designs a bandpass for [lowHz, highHz] at the given sample rate with the
// requested tap count. Even tap counts are rounded up so the group delay is an
// integer number of samples. The passband gain is normalized to one at the band
// center.
func New(lowHz, highHz, sampleRate float64, taps int) (*Filter, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("bandpass: sample rate must be > 0: %f", sampleRate)
	}
	if lowHz <= 0 || highHz <= lowHz || highHz >= sampleRate/2 {
		return nil, fmt.Errorf("bandpass: band must satisfy 0 < low < high < nyquist: [%f, %f] at %f Hz",
			lowHz, highHz, sampleRate)
	}
	if taps < 3 {
		return nil, fmt.Errorf("bandpass: tap count must be >= 3: %d", taps)
	}
	if taps%2 == 0 {
		taps++
	}

	fl := lowHz / sampleRate
	fh := highHz / sampleRate
	mid := (taps - 1) / 2

	h := make([]float64, taps)
	for k := range h {
		t := float64(k - mid)
		h[k] = 2*fh*sinc(2*fh*t) - 2*fl*sinc(2*fl*t)
	}
	vecmath.MulBlockInPlace(h, window.Hamming(taps))

	// Normalize to unit gain at the band center.
	fc := (lowHz + highHz) / 2 / sampleRate
	var re, im float64
	for k, v := range h {
		re += v * math.Cos(2*math.Pi*fc*float64(k))
		im -= v * math.Sin(2*math.Pi*fc*float64(k))
	}
	gain := math.Hypot(re, im)
	if gain == 0 {
		return nil, fmt.Errorf("bandpass: degenerate design, zero gain at %f Hz", fc*sampleRate)
	}
	vecmath.ScaleBlockInPlace(h, 1/gain)

	return &Filter{
		taps:       h,
		delay:      mid,
		lowHz:      lowHz,
		highHz:     highHz,
		sampleRate: sampleRate,
	}, nil
}

// Taps returns a copy of the designed coefficients.
func (f *Filter) Taps() []float64 {
	return append([]float64(nil), f.taps...)
}

// Apply filters one channel, returning a same-length, delay-compensated output.
func (f *Filter) Apply(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("bandpass: input must not be empty")
	}
	if err := f.ensurePlan(len(x)); err != nil {
		return nil, err
	}

	xf := make([]complex128, f.fftSize)
	for i, v := range x {
		xf[i] = complex(v, 0)
	}
	if err := f.plan.Forward(xf, xf); err != nil {
		return nil, fmt.Errorf("bandpass: forward FFT failed: %w", err)
	}
	for i := range xf {
		xf[i] *= f.kernelFD[i]
	}
	if err := f.plan.Inverse(xf, xf); err != nil {
		return nil, fmt.Errorf("bandpass: inverse FFT failed: %w", err)
	}

	out := make([]float64, len(x))
	for i := range out {
		out[i] = real(xf[i+f.delay])
	}
	return out, nil
}

// ApplyChannels filters every channel of a multichannel signal.
func (f *Filter) ApplyChannels(x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for r, row := range x {
		filtered, err := f.Apply(row)
		if err != nil {
			return nil, fmt.Errorf("bandpass: channel %d: %w", r, err)
		}
		out[r] = filtered
	}
	return out, nil
}

// ensurePlan keeps the FFT plan and the kernel spectrum for the current
// convolution size, rebuilding both only when the input length changes.
func (f *Filter) ensurePlan(inputLen int) error {
	fftSize := nextPowerOf2(inputLen + len(f.taps) - 1)
	if f.plan != nil && f.fftSize == fftSize {
		return nil
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return fmt.Errorf("bandpass: failed to create FFT plan: %w", err)
	}
	kernelFD := make([]complex128, fftSize)
	for i, v := range f.taps {
		kernelFD[i] = complex(v, 0)
	}
	if err := plan.Forward(kernelFD, kernelFD); err != nil {
		return fmt.Errorf("bandpass: forward FFT failed: %w", err)
	}

	f.plan = plan
	f.kernelFD = kernelFD
	f.fftSize = fftSize
	return nil
}

func sinc(t float64) float64 {
	if t == 0 {
		return 1
	}
	return math.Sin(math.Pi*t) / (math.Pi * t)
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
