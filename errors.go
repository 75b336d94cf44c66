// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ligerito

import "errors"

var (
	// ErrConfigMismatch signals a shape or size disagreement between a
	// configuration and its input: a polynomial of the wrong length, a
	// proof whose structure does not match the verifier configuration, or
	// an inconsistent configuration.
	ErrConfigMismatch = errors.New("ligerito: configuration does not match input shape")

	// ErrSerialization signals malformed or truncated proof bytes.
	ErrSerialization = errors.New("ligerito: malformed proof encoding")

	// ErrMerkleProofInvalid signals a batched Merkle opening that does not
	// authenticate against its commitment root.
	ErrMerkleProofInvalid = errors.New("ligerito: merkle opening does not authenticate")

	// ErrSumcheckInconsistent signals a sumcheck round whose claimed
	// polynomial does not reproduce the running sum.
	ErrSumcheckInconsistent = errors.New("ligerito: sumcheck round inconsistent with running sum")

	// ErrFinalCheckFailed signals a final opening whose rows or combined
	// evaluation do not match the claimed basis coefficients.
	ErrFinalCheckFailed = errors.New("ligerito: final basis consistency check failed")
)
