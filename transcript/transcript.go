// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package transcript implements the Fiat-Shamir transcript shared by prover
// and verifier.
//
// The transcript is a duplex sponge over a cryptographic hash: absorbed data
// is written into the running hash state, and each squeeze finalizes a copy
// of the state after mixing in a strictly increasing counter, so consecutive
// challenges differ even without interleaved absorbs. Prover and verifier
// must absorb the same data in the same order with the same seed to derive
// the same challenges.
package transcript

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/ligerito/binaryfield"
	"github.com/consensys/ligerito/merkle"
)

// Transcript holds the sponge state. It is not safe for concurrent use.
type Transcript struct {
	h       hash.Hash
	counter uint32
}

// New returns a transcript seeded with the little-endian encoding of seed.
func New(seed int32, newHash func() hash.Hash) *Transcript {
	h := newHash()
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(seed))
	h.Write(buf[:])
	return &Transcript{h: h}
}

// NewSha256 returns a sha256-backed transcript.
func NewSha256(seed int32) *Transcript {
	return New(seed, sha256.New)
}

// AbsorbRoot mixes a Merkle root into the state.
func (t *Transcript) AbsorbRoot(d merkle.Digest) {
	t.h.Write(d[:])
}

// AbsorbElement mixes one field element into the state.
func AbsorbElement[E binaryfield.Element[E]](t *Transcript, e E) {
	t.h.Write(e.AppendBytes(make([]byte, 0, e.ByteLen())))
}

// AbsorbElements mixes a slice of field elements into the state, in order.
func AbsorbElements[E binaryfield.Element[E]](t *Transcript, es []E) {
	var z E
	buf := make([]byte, 0, len(es)*z.ByteLen())
	for _, e := range es {
		buf = e.AppendBytes(buf)
	}
	t.h.Write(buf)
}

// squeeze mixes the counter into the state and returns the digest of the
// state so far.
func (t *Transcript) squeeze() []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], t.counter)
	t.counter++
	t.h.Write(buf[:])
	return t.h.Sum(nil)
}

// Challenge squeezes one field element, decoded little-endian from the
// digest prefix.
func Challenge[E binaryfield.Element[E]](t *Transcript) E {
	var z E
	d := t.squeeze()
	if z.ByteLen() > len(d) {
		panic("transcript: hash digest shorter than field element")
	}
	return z.FromBytes(d[:z.ByteLen()])
}

// Query squeezes one index in [0, max).
func (t *Transcript) Query(max int) int {
	if max <= 0 {
		panic("transcript: query domain must not be empty")
	}
	d := t.squeeze()
	return int(binary.LittleEndian.Uint64(d[:8]) % uint64(max))
}

// DistinctQueries squeezes distinct indices in [0, max) by rejection
// sampling until count indices were seen, capped at the domain size, and
// returns them sorted in increasing order.
func (t *Transcript) DistinctQueries(max, count int) []int {
	if count > max {
		count = max
	}
	seen := bitset.New(uint(max))
	out := make([]int, 0, count)
	for len(out) < count {
		q := t.Query(max)
		if seen.Test(uint(q)) {
			continue
		}
		seen.Set(uint(q))
		out = append(out, q)
	}
	sort.Ints(out)
	return out
}
