// Package ligerito implements the Ligerito polynomial commitment scheme over
// small binary fields.
//
// Ligerito commits to a multilinear polynomial by reshaping its coefficient
// vector into a matrix, Reed-Solomon encoding each column with an additive
// FFT over GF(2^32), and Merkle hashing the rows of the resulting codeword.
// Evaluation claims are proven with a product sumcheck that is compressed
// recursively: instead of sending a folded polynomial in the clear, the
// prover commits to it with the same matrix structure and glues the fresh
// opening claims onto the running sumcheck via random linear combinations
// drawn from the transcript. After a few steps the remaining coefficients are
// small enough to ship directly.
//
// Polynomial coefficients live in GF(2^32); challenges and all folded data
// live in the tower extension GF(2^128). See the binaryfield package for the
// tower construction.
//
// The scheme is described in "Ligerito: A Small and Concretely Fast
// Polynomial Commitment Scheme" by Andrija Novakovic and Guillermo Angeris.
//
// Proving and verification are deterministic: the same polynomial, seed and
// hash function yield byte-identical proofs whatever the parallelism
// configured with WithNbTasks. The prover and verifier must agree on the
// transcript seed and hash function, or verification fails.
package ligerito

import (
	"github.com/blang/semver/v4"
)

// Version of the proof format. Proofs produced by a different major version
// are not guaranteed to deserialize.
var Version = semver.MustParse("0.1.0")
