// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package merkle implements complete binary Merkle trees over matrix rows,
// with batched openings for sets of leaf indices.
//
// Leaves and internal nodes are domain separated: a leaf digest commits to a
// length tag followed by the raw little-endian bytes of every row element,
// under a 0x00 prefix, while internal nodes hash their two children under a
// 0x01 prefix. The hash function is pluggable; any 32-byte digest works.
package merkle

import (
	"encoding/binary"
	"fmt"
	"hash"

	"github.com/consensys/ligerito/binaryfield"
	"github.com/consensys/ligerito/internal/parallel"
)

// DigestSize is the tree node size in bytes. Hash functions handed to this
// package must produce digests of exactly this size.
const DigestSize = 32

const (
	leafPrefix = 0x00
	nodePrefix = 0x01
)

// Digest is a tree node.
type Digest [DigestSize]byte

// minParallelPairs is the smallest layer width for which building hashes
// pairs across goroutines.
const minParallelPairs = 1024

// HashRow returns the leaf digest of a matrix row. The hasher is reset
// before use, so it can be reused across calls from a single goroutine.
func HashRow[E binaryfield.Element[E]](h hash.Hash, row []E) Digest {
	var e E
	buf := make([]byte, 0, 9+len(row)*e.ByteLen())
	buf = append(buf, leafPrefix)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(row)))
	for _, x := range row {
		buf = x.AppendBytes(buf)
	}
	h.Reset()
	h.Write(buf)
	return sumDigest(h)
}

func hashSiblings(h hash.Hash, left, right Digest) Digest {
	var buf [1 + 2*DigestSize]byte
	buf[0] = nodePrefix
	copy(buf[1:], left[:])
	copy(buf[1+DigestSize:], right[:])
	h.Reset()
	h.Write(buf[:])
	return sumDigest(h)
}

func sumDigest(h hash.Hash) Digest {
	var d Digest
	sum := h.Sum(d[:0])
	if len(sum) != DigestSize {
		panic(fmt.Sprintf("merkle: hash produces %d-byte digests, want %d", len(sum), DigestSize))
	}
	copy(d[:], sum)
	return d
}

// Tree is a complete binary Merkle tree. layers[0] holds the leaves and the
// last layer holds the single root.
type Tree struct {
	layers [][]Digest
}

// BuildTree assembles the tree over pre-hashed leaf digests. The leaf count
// must be a power of two (a nil slice yields a degenerate empty tree whose
// root is the zero digest). BuildTree takes ownership of leaves. Wide layers
// are hashed across min(nbTasks, GOMAXPROCS) goroutines; nbTasks < 1 means
// GOMAXPROCS.
func BuildTree(leaves []Digest, newHash func() hash.Hash, nbTasks int) *Tree {
	if len(leaves) == 0 {
		return &Tree{}
	}
	if len(leaves)&(len(leaves)-1) != 0 {
		panic(fmt.Sprintf("merkle: leaf count %d is not a power of two", len(leaves)))
	}

	layers := [][]Digest{leaves}
	for width := len(leaves) / 2; width >= 1; width /= 2 {
		child := layers[len(layers)-1]
		parent := make([]Digest, width)
		if width >= minParallelPairs {
			parallel.Execute(0, width, nbTasks, func(start, end int) {
				h := newHash()
				for j := start; j < end; j++ {
					parent[j] = hashSiblings(h, child[2*j], child[2*j+1])
				}
			})
		} else {
			h := newHash()
			for j := range parent {
				parent[j] = hashSiblings(h, child[2*j], child[2*j+1])
			}
		}
		layers = append(layers, parent)
	}
	return &Tree{layers: layers}
}

// Root returns the tree root, or the zero digest for an empty tree.
func (t *Tree) Root() Digest {
	if len(t.layers) == 0 {
		return Digest{}
	}
	return t.layers[len(t.layers)-1][0]
}

// Depth returns the number of edge levels between a leaf and the root.
func (t *Tree) Depth() int {
	if len(t.layers) == 0 {
		return 0
	}
	return len(t.layers) - 1
}

// NumLeaves returns the leaf count.
func (t *Tree) NumLeaves() int {
	if len(t.layers) == 0 {
		return 0
	}
	return len(t.layers[0])
}
