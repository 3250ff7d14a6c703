// Package blocks provides an overlapping-block analysis/synthesis transform pair.
//
// A [Transform] maps a multichannel signal into a sequence of short overlapping
// blocks (analysis) and reconstructs the signal by overlap-add (synthesis). The
// pair is normalized per sample so that synthesis exactly inverts analysis:
//
//	Synthesize(Analyze(y)) == y
//
// for every signal y, every block length and every overlap, including the edge
// samples that fewer blocks cover. The two operators are adjoint, so the pair
// forms a Parseval (tight) frame. Downstream least-squares solvers rely on this
// identity for their closed-form updates.
package blocks
