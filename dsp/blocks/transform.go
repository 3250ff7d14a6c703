package blocks

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/mathworks/Sleep-Spindle-Detector/dsp/core"
)

// Coeffs holds block-domain coefficients: one rows x blockLen matrix per block
// position, stored row-major in a flat slice per block.
type Coeffs struct {
	Blocks   [][]float64
	Rows     int
	BlockLen int
}

// NumBlocks returns the number of block positions.
func (c *Coeffs) NumBlocks() int { return len(c.Blocks) }

// Clone returns a deep copy.
func (c *Coeffs) Clone() *Coeffs {
	out := &Coeffs{
		Blocks:   make([][]float64, len(c.Blocks)),
		Rows:     c.Rows,
		BlockLen: c.BlockLen,
	}
	for i, b := range c.Blocks {
		out.Blocks[i] = append([]float64(nil), b...)
	}
	return out
}

// Transform is an overlapping-block analysis/synthesis operator pair for
// signals of a fixed length.
type Transform struct {
	blockLen  int
	overlap   int
	hop       int
	signalLen int
	numBlocks int
	scale     []float64 // per-sample 1/sqrt(coverage), making the pair Parseval
}

// New creates a transform for signals of signalLen samples, blocked into
// blockLen-sample windows advancing by blockLen-overlap.
//
// signalLen must cover an integral number of hops: (signalLen-blockLen) must be
// divisible by (blockLen-overlap). This keeps the block grid aligned with the
// signal end; callers pad or trim their signals to fit.
func New(blockLen, overlap, signalLen int) (*Transform, error) {
	if blockLen <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBlockLength, blockLen)
	}
	if overlap < 0 || overlap >= blockLen {
		return nil, fmt.Errorf("%w: overlap %d, block length %d", ErrOverlap, overlap, blockLen)
	}
	hop := blockLen - overlap
	if signalLen < blockLen || (signalLen-blockLen)%hop != 0 {
		return nil, fmt.Errorf("%w: signal length %d, block length %d, hop %d",
			ErrGeometry, signalLen, blockLen, hop)
	}

	t := &Transform{
		blockLen:  blockLen,
		overlap:   overlap,
		hop:       hop,
		signalLen: signalLen,
		numBlocks: (signalLen-blockLen)/hop + 1,
	}

	cover := make([]int, signalLen)
	for b := 0; b < t.numBlocks; b++ {
		for j := 0; j < blockLen; j++ {
			cover[b*hop+j]++
		}
	}
	t.scale = make([]float64, signalLen)
	for i, cv := range cover {
		t.scale[i] = 1 / math.Sqrt(float64(cv))
	}
	return t, nil
}

// BlockLen returns the block length in samples.
func (t *Transform) BlockLen() int { return t.blockLen }

// Overlap returns the overlap between adjacent blocks in samples.
func (t *Transform) Overlap() int { return t.overlap }

// NumBlocks returns the number of block positions.
func (t *Transform) NumBlocks() int { return t.numBlocks }

// SignalLen returns the signal length the transform was built for.
func (t *Transform) SignalLen() int { return t.signalLen }

// NewCoeffs allocates an all-zero coefficient set for the given channel count.
func (t *Transform) NewCoeffs(rows int) *Coeffs {
	c := &Coeffs{
		Blocks:   make([][]float64, t.numBlocks),
		Rows:     rows,
		BlockLen: t.blockLen,
	}
	for i := range c.Blocks {
		c.Blocks[i] = make([]float64, rows*t.blockLen)
	}
	return c
}

// Analyze maps a multichannel signal to block coefficients.
func (t *Transform) Analyze(x [][]float64) (*Coeffs, error) {
	c := t.NewCoeffs(len(x))
	if err := t.AnalyzeTo(c, x); err != nil {
		return nil, err
	}
	return c, nil
}

// AnalyzeTo maps a multichannel signal into pre-allocated coefficients.
func (t *Transform) AnalyzeTo(dst *Coeffs, x [][]float64) error {
	if err := t.checkSignal(x, len(x)); err != nil {
		return err
	}
	if err := t.checkCoeffs(dst, len(x)); err != nil {
		return err
	}
	k := t.blockLen
	for b := 0; b < t.numBlocks; b++ {
		start := b * t.hop
		blk := dst.Blocks[b]
		for r, row := range x {
			vecmath.MulBlock(blk[r*k:(r+1)*k], row[start:start+k], t.scale[start:start+k])
		}
	}
	return nil
}

// Synthesize reconstructs a multichannel signal from block coefficients by
// weighted overlap-add.
func (t *Transform) Synthesize(c *Coeffs) ([][]float64, error) {
	out := core.NewMatrix(c.Rows, t.signalLen)
	if err := t.SynthesizeTo(out, c); err != nil {
		return nil, err
	}
	return out, nil
}

// SynthesizeTo reconstructs into a pre-allocated signal buffer, overwriting it.
func (t *Transform) SynthesizeTo(dst [][]float64, c *Coeffs) error {
	if err := t.checkCoeffs(c, c.Rows); err != nil {
		return err
	}
	if err := t.checkSignal(dst, c.Rows); err != nil {
		return err
	}
	for _, row := range dst {
		core.Zero(row)
	}
	k := t.blockLen
	for b := 0; b < t.numBlocks; b++ {
		start := b * t.hop
		blk := c.Blocks[b]
		for r, row := range dst {
			seg := row[start : start+k]
			vecmath.MulAddBlock(seg, blk[r*k:(r+1)*k], t.scale[start:start+k], seg)
		}
	}
	return nil
}

func (t *Transform) checkSignal(x [][]float64, rows int) error {
	if len(x) == 0 || len(x) != rows {
		return fmt.Errorf("%w: %d channels, want %d", ErrShape, len(x), rows)
	}
	for r, row := range x {
		if len(row) != t.signalLen {
			return fmt.Errorf("%w: channel %d has %d samples, want %d",
				ErrShape, r, len(row), t.signalLen)
		}
	}
	return nil
}

func (t *Transform) checkCoeffs(c *Coeffs, rows int) error {
	if c == nil || c.Rows != rows || c.BlockLen != t.blockLen || len(c.Blocks) != t.numBlocks {
		return fmt.Errorf("%w: coefficient geometry does not match transform", ErrShape)
	}
	for b, blk := range c.Blocks {
		if len(blk) != c.Rows*c.BlockLen {
			return fmt.Errorf("%w: block %d has %d values, want %d",
				ErrShape, b, len(blk), c.Rows*c.BlockLen)
		}
	}
	return nil
}
