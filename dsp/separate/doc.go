// Package separate decomposes a multichannel signal into a sparse transient
// component and a low-rank oscillatory component.
//
// The model assumes the recording is the sum of two parts: a transient part
// that is sparse and piecewise-smooth in time (baseline shifts, artifacts,
// slow-wave activity), and an oscillatory part whose overlapping short-time
// blocks are collectively low-rank across channels (rhythmic activity such as
// sleep spindles). [Decompose] recovers both by solving the convex program
//
//	min_{x,c}  0.5*||y - x - HT(c)||_F^2
//	         + lam1*||x||_1 + lam2*||D2 x||_1 + lam3*sum_b ||c_b||_*
//
// with a fixed-iteration ADMM (variable splitting) scheme. H/HT is the
// overlapping-block transform pair from dsp/blocks, D2 the second-difference
// operator and ||.||_* the nuclear norm over blocks.
//
// Each iteration performs, in order: a fused-lasso proximal update of the
// transient per channel, a singular-value-thresholding update of the block
// coefficients per block, a closed-form least-squares consensus step coupling
// the two (valid because the transform pair is a Parseval frame), and a scaled
// dual update. The two proximal sweeps are independent across channels and
// blocks and run on a worker pool; the consensus step starts only after both
// sweeps complete.
package separate
