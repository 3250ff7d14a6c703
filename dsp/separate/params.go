package separate

import (
	"fmt"

	"github.com/mathworks/Sleep-Spindle-Detector/dsp/blocks"
	"github.com/mathworks/Sleep-Spindle-Detector/dsp/prox"
)

// BlockTransform is the analysis/synthesis operator pair used by [Decompose].
// dsp/blocks provides the default implementation; any substitute must satisfy
// the Parseval identity Synthesize(Analyze(y)) == y, which [Decompose] verifies
// once on its input before iterating.
type BlockTransform interface {
	NumBlocks() int
	NewCoeffs(rows int) *blocks.Coeffs
	Analyze(x [][]float64) (*blocks.Coeffs, error)
	AnalyzeTo(dst *blocks.Coeffs, x [][]float64) error
	Synthesize(c *blocks.Coeffs) ([][]float64, error)
	SynthesizeTo(dst [][]float64, c *blocks.Coeffs) error
}

// TransformFactory builds the block transform for a given geometry.
type TransformFactory func(blockLen, overlap, signalLen int) (BlockTransform, error)

// TransientProx computes the proximal update of one channel row at point z,
// returning the updated row. lamValue weights sparsity of the value, lamDeriv
// sparsity of the second difference; both arrive pre-scaled by 1/mu.
type TransientProx func(z []float64, lamValue, lamDeriv float64) []float64

// BlockProx computes the proximal update of one rows x cols block stored
// row-major, returning the updated block.
type BlockProx func(block []float64, rows, cols int, tau float64) ([]float64, error)

// Params configures [Decompose]. Use [NewParams] to obtain a set with defaults;
// the zero value is not valid.
type Params struct {
	// LamTransient weights the L1 penalty on the transient component itself.
	LamTransient float64
	// LamDeriv weights the L1 penalty on the transient's second difference.
	LamDeriv float64
	// LamRank weights the nuclear-norm penalty on the block coefficients.
	LamRank float64

	// BlockLen is the analysis block length in samples.
	BlockLen int
	// Overlap is the overlap between adjacent blocks in samples.
	Overlap int

	// Mu is the augmented-Lagrangian step size. Must be positive.
	Mu float64
	// Iterations is the fixed number of ADMM iterations. Zero is accepted and
	// returns all-zero components without iterating.
	Iterations int
	// CostHistory enables per-iteration evaluation of the objective.
	CostHistory bool

	// Transform overrides the default dsp/blocks transform when non-nil.
	Transform TransformFactory
	// Transient overrides the fused-lasso transient update when non-nil.
	Transient TransientProx
	// Block overrides the singular-value-thresholding block update when non-nil.
	Block BlockProx
}

// Option mutates a Params.
type Option func(*Params)

// NewParams returns parameters for the given block length with defaults tuned
// for 200 Hz polysomnography: 50% block overlap, step size 0.5, 40 iterations
// and the regularization weights from the reference tuning.
func NewParams(blockLen int, opts ...Option) Params {
	p := Params{
		LamTransient: 0.3,
		LamDeriv:     6.5,
		LamRank:      36,
		BlockLen:     blockLen,
		Overlap:      blockLen / 2,
		Mu:           0.5,
		Iterations:   40,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}
	return p
}

// WithWeights sets the three regularization weights: transient sparsity,
// transient second-difference sparsity, and block rank penalty.
func WithWeights(lamTransient, lamDeriv, lamRank float64) Option {
	return func(p *Params) {
		p.LamTransient = lamTransient
		p.LamDeriv = lamDeriv
		p.LamRank = lamRank
	}
}

// WithOverlap sets the block overlap in samples.
func WithOverlap(overlap int) Option {
	return func(p *Params) {
		p.Overlap = overlap
	}
}

// WithStepSize sets the augmented-Lagrangian step size mu.
func WithStepSize(mu float64) Option {
	return func(p *Params) {
		p.Mu = mu
	}
}

// WithIterations sets the fixed iteration count.
func WithIterations(n int) Option {
	return func(p *Params) {
		p.Iterations = n
	}
}

// WithCostHistory enables per-iteration objective evaluation.
func WithCostHistory() Option {
	return func(p *Params) {
		p.CostHistory = true
	}
}

// WithTransform substitutes a custom block transform factory.
func WithTransform(f TransformFactory) Option {
	return func(p *Params) {
		p.Transform = f
	}
}

// WithTransientProx substitutes the per-channel transient update.
func WithTransientProx(f TransientProx) Option {
	return func(p *Params) {
		p.Transient = f
	}
}

// WithBlockProx substitutes the per-block coefficient update.
func WithBlockProx(f BlockProx) Option {
	return func(p *Params) {
		p.Block = f
	}
}

func (p *Params) validate() error {
	if p.Mu <= 0 {
		return fmt.Errorf("%w: %f", ErrStepSize, p.Mu)
	}
	if p.Iterations < 0 {
		return fmt.Errorf("%w: %d", ErrIterations, p.Iterations)
	}
	if p.LamTransient < 0 || p.LamDeriv < 0 || p.LamRank < 0 {
		return fmt.Errorf("%w: %f, %f, %f", ErrWeight, p.LamTransient, p.LamDeriv, p.LamRank)
	}
	return nil
}

func (p *Params) transformFactory() TransformFactory {
	if p.Transform != nil {
		return p.Transform
	}
	return func(blockLen, overlap, signalLen int) (BlockTransform, error) {
		return blocks.New(blockLen, overlap, signalLen)
	}
}

func (p *Params) transientProx() TransientProx {
	if p.Transient != nil {
		return p.Transient
	}
	return func(z []float64, lamValue, lamDeriv float64) []float64 {
		out := prox.TVDenoise(z, lamDeriv)
		prox.SoftThresholdTo(out, out, lamValue)
		return out
	}
}

func (p *Params) blockProx() BlockProx {
	if p.Block != nil {
		return p.Block
	}
	return prox.SVTBlock
}
