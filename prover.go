// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ligerito

import (
	"fmt"
	"time"

	"github.com/consensys/ligerito/binaryfield"
	"github.com/consensys/ligerito/internal/sumcheck"
	"github.com/consensys/ligerito/logger"
	"github.com/consensys/ligerito/transcript"
)

// Prove commits to the multilinear polynomial given by its coefficients
// over the boolean hypercube and produces a recursive proof of proximity
// with the partial-evaluation claim bound in.
//
// len(poly) must equal cfg.Size(). Prove is deterministic: identical inputs
// and options yield identical proofs regardless of WithNbTasks.
func Prove(cfg *ProverConfig, poly []binaryfield.GF32, opts ...Option) (*Proof, error) {
	opt, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(poly) != cfg.Size() {
		return nil, fmt.Errorf("%w: polynomial length %d, configuration proves %d",
			ErrConfigMismatch, len(poly), cfg.Size())
	}

	log := logger.Logger().With().
		Str("scheme", "ligerito").
		Int("size", len(poly)).
		Int("steps", cfg.RecursiveSteps()).
		Logger()
	start := time.Now()

	steps := cfg.RecursiveSteps()
	fs := transcript.New(opt.seed, opt.newHash)
	sksVks := sumcheck.EvalSkAtVks(log2(cfg.InitialDims.Rows))

	wtns := ligeroCommit(poly, cfg.InitialDims, cfg.InitialCode, opt.newHash, opt.nbTasks)
	proof := &Proof{InitialRoot: wtns.root()}
	fs.AbsorbRoot(proof.InitialRoot)

	challenges := make([]binaryfield.GF128, cfg.InitialK)
	for i := range challenges {
		challenges[i] = transcript.Challenge[binaryfield.GF128](fs)
	}
	f := initialFold(poly, cfg.InitialDims.Rows, sumcheck.LagrangeBasis(challenges), opt.nbTasks)

	cur := ligeroCommit(f, cfg.Dims[0], cfg.Codes[0], opt.newHash, opt.nbTasks)
	proof.RecursiveRoots = append(proof.RecursiveRoots, cur.root())
	fs.AbsorbRoot(cur.root())

	queries := fs.DistinctQueries(cfg.InitialCode.BlockLen(), numQueries)
	alpha := transcript.Challenge[binaryfield.GF128](fs)

	rows := wtns.openRows(queries)
	proof.InitialOpening = BaseOpening{Rows: rows, Proof: wtns.prove(queries)}
	wtns = nil

	g, e := sumcheck.Induce(log2(cfg.InitialDims.Rows), sksVks, queries, liftRows(rows),
		challenges, alpha, opt.nbTasks)
	sum := e
	transcript.AbsorbElement(fs, e)

	for i := 0; i < steps; i++ {
		rs := make([]binaryfield.GF128, 0, cfg.Ks[i])
		for j := 0; j < cfg.Ks[i]; j++ {
			a, b, c := sumcheck.ProductRound(f, g, opt.nbTasks)
			proof.Rounds = append(proof.Rounds, RoundPolynomial{A: a, B: b, C: c})

			r := transcript.Challenge[binaryfield.GF128](fs)
			rs = append(rs, r)
			f = sumcheck.FoldTop(f, r, opt.nbTasks)
			g = sumcheck.FoldTop(g, r, opt.nbTasks)
			sum = sumcheck.EvalRound(a, b, c, r)
			transcript.AbsorbElement(fs, sum)
		}

		if i == steps-1 {
			transcript.AbsorbElements(fs, f)
			finalQueries := fs.DistinctQueries(cfg.Codes[i].BlockLen(), numQueries)
			proof.Final = FinalOpening{
				Yr:    f,
				Rows:  cur.openRows(finalQueries),
				Proof: cur.prove(finalQueries),
			}
			break
		}

		next := ligeroCommit(f, cfg.Dims[i+1], cfg.Codes[i+1], opt.newHash, opt.nbTasks)
		proof.RecursiveRoots = append(proof.RecursiveRoots, next.root())
		fs.AbsorbRoot(next.root())

		stepQueries := fs.DistinctQueries(cfg.Codes[i].BlockLen(), numQueries)
		stepAlpha := transcript.Challenge[binaryfield.GF128](fs)

		stepRows := cur.openRows(stepQueries)
		proof.RecursiveOpenings = append(proof.RecursiveOpenings, Opening{
			Rows:  stepRows,
			Proof: cur.prove(stepQueries),
		})

		g2, e2 := sumcheck.Induce(log2(cfg.Dims[i].Rows), sksVks, stepQueries, stepRows,
			rs, stepAlpha, opt.nbTasks)

		glue := sum.Add(e2)
		transcript.AbsorbElement(fs, glue)
		beta := transcript.Challenge[binaryfield.GF128](fs)

		for x := range g {
			g[x] = g[x].Add(beta.Mul(g2[x]))
		}
		sum = sum.Add(beta.Mul(e2))

		cur = next
	}

	log.Debug().
		Dur("took", time.Since(start)).
		Int("proofSize", proof.SizeBytes()).
		Msg("prover done")
	return proof, nil
}
