// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ligerito

import (
	"fmt"
	"time"

	"github.com/consensys/ligerito/binaryfield"
	"github.com/consensys/ligerito/internal/sumcheck"
	"github.com/consensys/ligerito/logger"
	"github.com/consensys/ligerito/merkle"
	"github.com/consensys/ligerito/transcript"
)

// Verify checks a proof against the verifier configuration, replaying the
// prover's transcript and enforcing every Merkle opening, every sumcheck
// round, and the final basis consistency of Yr. A nil return means the
// proof is accepted. Adversarial proof content yields a typed error (see
// the Err sentinels), never a panic.
//
// The transcript seed and hash function options must match the ones used
// at proving time.
func Verify(cfg *VerifierConfig, proof *Proof, opts ...Option) error {
	return verify(cfg, proof, true, opts...)
}

// VerifyPartial checks only the Merkle openings and the sumcheck rounds,
// skipping the final basis consistency check.
//
// Deprecated: the partial check does not bind Yr to the committed
// polynomial and exists for diagnostics only; use Verify.
func VerifyPartial(cfg *VerifierConfig, proof *Proof, opts ...Option) error {
	return verify(cfg, proof, false, opts...)
}

func verify(cfg *VerifierConfig, proof *Proof, complete bool, opts ...Option) error {
	opt, err := newOptions(opts...)
	if err != nil {
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	if proof == nil {
		return fmt.Errorf("%w: nil proof", ErrConfigMismatch)
	}
	if err := checkProofShape(cfg, proof); err != nil {
		return err
	}

	log := logger.Logger().With().
		Str("scheme", "ligerito").
		Int("steps", cfg.RecursiveSteps()).
		Logger()
	start := time.Now()

	steps := cfg.RecursiveSteps()
	sksVks := sumcheck.EvalSkAtVks(cfg.InitialDim)
	fs := transcript.New(opt.seed, opt.newHash)

	fs.AbsorbRoot(proof.InitialRoot)
	challenges := make([]binaryfield.GF128, cfg.InitialK)
	for i := range challenges {
		challenges[i] = transcript.Challenge[binaryfield.GF128](fs)
	}
	fs.AbsorbRoot(proof.RecursiveRoots[0])

	queries := fs.DistinctQueries(1<<(cfg.InitialDim+logInvRate), numQueries)
	if !verifyRowOpening(proof.InitialRoot, cfg.InitialDim+logInvRate, proof.InitialOpening.Rows,
		queries, proof.InitialOpening.Proof, opt) {
		return fmt.Errorf("%w: initial commitment", ErrMerkleProofInvalid)
	}
	alpha := transcript.Challenge[binaryfield.GF128](fs)

	g, e := sumcheck.Induce(cfg.InitialDim, sksVks, queries, liftRows(proof.InitialOpening.Rows),
		challenges, alpha, opt.nbTasks)
	sum := e
	transcript.AbsorbElement(fs, e)

	roundIdx := 0
	for i := 0; i < steps; i++ {
		rs := make([]binaryfield.GF128, 0, cfg.Ks[i])
		for j := 0; j < cfg.Ks[i]; j++ {
			rp := proof.Rounds[roundIdx]
			roundIdx++
			if rp.B.Add(rp.C) != sum {
				return fmt.Errorf("%w: round %d", ErrSumcheckInconsistent, roundIdx-1)
			}
			r := transcript.Challenge[binaryfield.GF128](fs)
			rs = append(rs, r)
			g = sumcheck.FoldTop(g, r, opt.nbTasks)
			sum = sumcheck.EvalRound(rp.A, rp.B, rp.C, r)
			transcript.AbsorbElement(fs, sum)
		}

		if i == steps-1 {
			transcript.AbsorbElements(fs, proof.Final.Yr)
			finalQueries := fs.DistinctQueries(1<<(cfg.LogDims[i]+logInvRate), numQueries)
			if !verifyRowOpening(proof.RecursiveRoots[i], cfg.LogDims[i]+logInvRate, proof.Final.Rows,
				finalQueries, proof.Final.Proof, opt) {
				return fmt.Errorf("%w: final commitment", ErrMerkleProofInvalid)
			}
			if complete {
				if err := checkFinalOpening(cfg.LogDims[i], sksVks, &proof.Final, finalQueries, rs, g, sum); err != nil {
					return err
				}
			}
			break
		}

		fs.AbsorbRoot(proof.RecursiveRoots[i+1])
		stepQueries := fs.DistinctQueries(1<<(cfg.LogDims[i]+logInvRate), numQueries)
		if !verifyRowOpening(proof.RecursiveRoots[i], cfg.LogDims[i]+logInvRate, proof.RecursiveOpenings[i].Rows,
			stepQueries, proof.RecursiveOpenings[i].Proof, opt) {
			return fmt.Errorf("%w: step %d commitment", ErrMerkleProofInvalid, i)
		}
		stepAlpha := transcript.Challenge[binaryfield.GF128](fs)

		g2, e2 := sumcheck.Induce(cfg.LogDims[i], sksVks, stepQueries, proof.RecursiveOpenings[i].Rows,
			rs, stepAlpha, opt.nbTasks)

		glue := sum.Add(e2)
		transcript.AbsorbElement(fs, glue)
		beta := transcript.Challenge[binaryfield.GF128](fs)

		for x := range g {
			g[x] = g[x].Add(beta.Mul(g2[x]))
		}
		sum = sum.Add(beta.Mul(e2))
	}

	log.Debug().Dur("took", time.Since(start)).Msg("verifier done")
	return nil
}

// checkProofShape rejects proofs whose structure cannot have come from the
// matching prover configuration, before any cryptographic work.
func checkProofShape(cfg *VerifierConfig, proof *Proof) error {
	steps := cfg.RecursiveSteps()
	if len(proof.RecursiveRoots) != steps {
		return fmt.Errorf("%w: %d recursive roots, want %d", ErrConfigMismatch, len(proof.RecursiveRoots), steps)
	}
	if len(proof.RecursiveOpenings) != steps-1 {
		return fmt.Errorf("%w: %d recursive openings, want %d", ErrConfigMismatch, len(proof.RecursiveOpenings), steps-1)
	}
	totalRounds := 0
	for _, k := range cfg.Ks {
		totalRounds += k
	}
	if len(proof.Rounds) != totalRounds {
		return fmt.Errorf("%w: %d sumcheck rounds, want %d", ErrConfigMismatch, len(proof.Rounds), totalRounds)
	}

	if err := checkRowsShape(proof.InitialOpening.Rows, openingCount(cfg.InitialDim), 1<<cfg.InitialK); err != nil {
		return fmt.Errorf("initial opening %w", err)
	}
	for i, o := range proof.RecursiveOpenings {
		if err := checkRowsShape(o.Rows, openingCount(cfg.LogDims[i]), 1<<cfg.Ks[i]); err != nil {
			return fmt.Errorf("step %d opening %w", i, err)
		}
	}
	last := steps - 1
	if err := checkRowsShape(proof.Final.Rows, openingCount(cfg.LogDims[last]), 1<<cfg.Ks[last]); err != nil {
		return fmt.Errorf("final opening %w", err)
	}
	if len(proof.Final.Yr) != 1<<cfg.LogDims[last] {
		return fmt.Errorf("%w: %d final coefficients, want %d", ErrConfigMismatch, len(proof.Final.Yr), 1<<cfg.LogDims[last])
	}
	return nil
}

// openingCount is the number of rows opened on a commitment with the given
// log message height.
func openingCount(logDim int) int {
	if domain := 1 << (logDim + logInvRate); domain < numQueries {
		return domain
	}
	return numQueries
}

func checkRowsShape[E binaryfield.Element[E]](rows [][]E, count, width int) error {
	if len(rows) != count {
		return fmt.Errorf("%w: %d rows, want %d", ErrConfigMismatch, len(rows), count)
	}
	for _, row := range rows {
		if len(row) != width {
			return fmt.Errorf("%w: row width %d, want %d", ErrConfigMismatch, len(row), width)
		}
	}
	return nil
}

func verifyRowOpening[E binaryfield.Element[E]](root merkle.Digest, depth int, rows [][]E, queries []int, proof merkle.Proof, opt options) bool {
	h := opt.newHash()
	leaves := make([]merkle.Digest, len(rows))
	for i, row := range rows {
		leaves[i] = merkle.HashRow(h, row)
	}
	return merkle.VerifyBatch(root, depth, leaves, queries, proof, opt.newHash)
}

// checkFinalOpening enforces the two closing identities: every opened row
// of the last commitment must evaluate, under the step's Lagrange weights,
// to the codeword of Yr at its query position, and Yr combined with the
// accumulated basis table must reproduce the running sum.
func checkFinalOpening(logDim int, sksVks []binaryfield.GF32, final *FinalOpening, queries []int, rs, g []binaryfield.GF128, sum binaryfield.GF128) error {
	L := sumcheck.LagrangeBasis(rs)
	one := binaryfield.GF128{}.One()
	var zf binaryfield.GF32

	for qi, q := range queries {
		row := final.Rows[qi]
		var y binaryfield.GF128
		for j := range row {
			y = y.Add(row[j].Mul(L[j]))
		}

		basis := sumcheck.ScaledBasis(logDim, sksVks, zf.FromBits(uint64(q)), one)
		var want binaryfield.GF128
		for x := range basis {
			want = want.Add(final.Yr[x].Mul(basis[x]))
		}
		if y != want {
			return fmt.Errorf("%w: row at query %d", ErrFinalCheckFailed, q)
		}
	}

	var total binaryfield.GF128
	for x := range g {
		total = total.Add(final.Yr[x].Mul(g[x]))
	}
	if total != sum {
		return fmt.Errorf("%w: combined evaluation", ErrFinalCheckFailed)
	}
	return nil
}
