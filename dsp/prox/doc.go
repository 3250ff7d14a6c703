// Package prox provides proximal operators for sparse and low-rank signal models.
//
// The package offers three primitives:
//
//   - [SoftThreshold]: the proximal operator of the scaled L1 norm (elementwise shrinkage)
//   - [TVDenoise]: the proximal operator of second-order total variation on a 1-D sequence,
//     solved by majorization-minimization with a banded direct solve
//   - [SVTBlock]: the proximal operator of the nuclear norm on a small matrix block
//     (singular value soft-thresholding)
//
// All three are pure functions of their inputs. A threshold or weight of zero turns each
// operator into an exact identity, which callers rely on for degenerate parameter choices.
package prox
