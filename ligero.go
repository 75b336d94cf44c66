// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ligerito

import (
	"hash"

	"github.com/consensys/ligerito/binaryfield"
	"github.com/consensys/ligerito/internal/parallel"
	"github.com/consensys/ligerito/merkle"
	"github.com/consensys/ligerito/reedsolomon"
)

// ligeroWitness is a committed matrix: the encoded columns and the Merkle
// tree over the codeword rows. E is GF32 for the initial commitment and
// GF128 for the recursive ones.
type ligeroWitness[E binaryfield.Element[E]] struct {
	dims MatrixDims
	cols [][]E // dims.Cols encoded columns of length dims.Rows<<logInvRate
	tree *merkle.Tree
}

// ligeroCommit reshapes poly column-major into dims (column j holds
// poly[j*Rows:(j+1)*Rows], zero-padded past the end of poly), encodes every
// column with code and commits to the codeword rows. Columns are encoded
// across goroutines; when there are fewer columns than tasks each column
// uses the fork-join FFT instead.
func ligeroCommit[E binaryfield.Element[E]](poly []E, dims MatrixDims, code *reedsolomon.Code[E], newHash func() hash.Hash, nbTasks int) *ligeroWitness[E] {
	m, n := dims.Rows, dims.Cols
	blockLen := code.BlockLen()

	cols := make([][]E, n)
	encodeCol := func(j int, forkJoin bool) {
		buf := make([]E, blockLen)
		if start := j * m; start < len(poly) {
			end := start + m
			if end > len(poly) {
				end = len(poly)
			}
			copy(buf, poly[start:end])
		}
		if forkJoin {
			code.EncodeInPlaceParallel(buf)
		} else {
			code.EncodeInPlace(buf)
		}
		cols[j] = buf
	}
	if n >= nbTasks {
		parallel.Execute(0, n, nbTasks, func(start, end int) {
			for j := start; j < end; j++ {
				encodeCol(j, false)
			}
		})
	} else {
		for j := 0; j < n; j++ {
			encodeCol(j, true)
		}
	}

	leaves := make([]merkle.Digest, blockLen)
	parallel.Execute(0, blockLen, nbTasks, func(start, end int) {
		h := newHash()
		row := make([]E, n)
		for i := start; i < end; i++ {
			for j := 0; j < n; j++ {
				row[j] = cols[j][i]
			}
			leaves[i] = merkle.HashRow(h, row)
		}
	})

	return &ligeroWitness[E]{
		dims: dims,
		cols: cols,
		tree: merkle.BuildTree(leaves, newHash, nbTasks),
	}
}

func (w *ligeroWitness[E]) root() merkle.Digest { return w.tree.Root() }

// openRows gathers the codeword rows at the queried indices.
func (w *ligeroWitness[E]) openRows(queries []int) [][]E {
	rows := make([][]E, len(queries))
	for i, q := range queries {
		row := make([]E, len(w.cols))
		for j := range w.cols {
			row[j] = w.cols[j][q]
		}
		rows[i] = row
	}
	return rows
}

func (w *ligeroWitness[E]) prove(queries []int) merkle.Proof {
	return w.tree.Prove(queries)
}

// initialFold binds the column variables of the base-field polynomial to
// the Lagrange weights of the initial challenges:
//
//	out[x] = sum_j L[j] · poly[j*m+x].
func initialFold(poly []binaryfield.GF32, m int, L []binaryfield.GF128, nbTasks int) []binaryfield.GF128 {
	out := make([]binaryfield.GF128, m)
	parallel.Execute(0, m, nbTasks, func(start, end int) {
		for x := start; x < end; x++ {
			var acc binaryfield.GF128
			for j := range L {
				acc = acc.Add(binaryfield.GF128FromGF32(poly[j*m+x]).Mul(L[j]))
			}
			out[x] = acc
		}
	})
	return out
}

func liftRows(rows [][]binaryfield.GF32) [][]binaryfield.GF128 {
	lifted := make([][]binaryfield.GF128, len(rows))
	for i, row := range rows {
		lr := make([]binaryfield.GF128, len(row))
		for j, v := range row {
			lr[j] = binaryfield.GF128FromGF32(v)
		}
		lifted[i] = lr
	}
	return lifted
}
