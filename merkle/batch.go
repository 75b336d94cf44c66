// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package merkle

import (
	"fmt"
	"hash"
)

// Proof is a batched opening of a set of leaves: the sibling digests needed
// to walk all opened leaves up to the root, deduplicated across the batch,
// in bottom-up layer order. Siblings shared between two opened indices are
// recomputed by the verifier rather than shipped.
type Proof struct {
	Siblings []Digest
}

// Prove opens the leaves at the given indices. Indices must be sorted in
// strictly increasing order and within the leaf range.
func (t *Tree) Prove(indices []int) Proof {
	for i, q := range indices {
		if q < 0 || q >= t.NumLeaves() {
			panic(fmt.Sprintf("merkle: index %d out of range [0, %d)", q, t.NumLeaves()))
		}
		if i > 0 && q <= indices[i-1] {
			panic("merkle: indices must be sorted and distinct")
		}
	}

	var siblings []Digest
	qs := append([]int(nil), indices...)
	for layer := 0; layer < t.Depth(); layer++ {
		nodes := t.layers[layer]
		next := make([]int, 0, len(qs))
		i := 0
		for i < len(qs) {
			q := qs[i]
			next = append(next, q>>1)
			if q&1 == 0 && i+1 < len(qs) && qs[i+1] == q+1 {
				// Both children are opened; the verifier recomputes
				// this pair without help.
				i += 2
			} else {
				siblings = append(siblings, nodes[q^1])
				i++
			}
		}
		qs = next
	}
	return Proof{Siblings: siblings}
}

// VerifyBatch checks a batched opening against root, where leafDigests[i]
// is the claimed digest of the leaf at indices[i] in a tree of the given
// depth. Indices must be sorted strictly increasing. The proof must account
// for exactly the claimed indices: unused or missing siblings fail the
// check. Malformed input yields false, never a panic.
func VerifyBatch(root Digest, depth int, leafDigests []Digest, indices []int, proof Proof, newHash func() hash.Hash) bool {
	if len(leafDigests) != len(indices) || len(indices) == 0 {
		return false
	}
	if depth < 0 || depth >= 63 {
		return false
	}
	for i, q := range indices {
		if q < 0 || q >= 1<<depth {
			return false
		}
		if i > 0 && q <= indices[i-1] {
			return false
		}
	}

	h := newHash()
	cur := append([]Digest(nil), leafDigests...)
	qs := append([]int(nil), indices...)
	pi := 0
	for layer := 0; layer < depth; layer++ {
		nextD := make([]Digest, 0, len(cur))
		nextQ := make([]int, 0, len(qs))
		i := 0
		for i < len(qs) {
			q := qs[i]
			var parent Digest
			switch {
			case q&1 == 0 && i+1 < len(qs) && qs[i+1] == q+1:
				parent = hashSiblings(h, cur[i], cur[i+1])
				i += 2
			case q&1 == 0:
				if pi >= len(proof.Siblings) {
					return false
				}
				parent = hashSiblings(h, cur[i], proof.Siblings[pi])
				pi++
				i++
			default:
				if pi >= len(proof.Siblings) {
					return false
				}
				parent = hashSiblings(h, proof.Siblings[pi], cur[i])
				pi++
				i++
			}
			nextD = append(nextD, parent)
			nextQ = append(nextQ, q>>1)
		}
		cur, qs = nextD, nextQ
	}
	return len(cur) == 1 && pi == len(proof.Siblings) && cur[0] == root
}
