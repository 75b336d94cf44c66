// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ligerito

import (
	"fmt"
	"io"

	"github.com/consensys/ligerito/binaryfield"
	"github.com/consensys/ligerito/merkle"
	"github.com/fxamacker/cbor/v2"
)

// RoundPolynomial is the degree-2 polynomial a + b·t + c·t^2 sent for one
// sumcheck round.
type RoundPolynomial struct {
	A, B, C binaryfield.GF128
}

// BaseOpening opens queried rows of the base-field commitment.
type BaseOpening struct {
	Rows  [][]binaryfield.GF32
	Proof merkle.Proof
}

// Opening opens queried rows of an intermediate extension-field commitment.
type Opening struct {
	Rows  [][]binaryfield.GF128
	Proof merkle.Proof
}

// FinalOpening closes the recursion: Yr holds the fully folded novel-basis
// coefficients of the last committed polynomial, and Rows opens the queried
// rows of that commitment for the verifier's consistency checks.
type FinalOpening struct {
	Yr    []binaryfield.GF128
	Rows  [][]binaryfield.GF128
	Proof merkle.Proof
}

// Proof is a complete recursive Ligerito proof. It verifies against the
// VerifierConfig matching the ProverConfig it was produced with, under the
// same transcript seed and hash function.
type Proof struct {
	InitialRoot       merkle.Digest
	InitialOpening    BaseOpening
	RecursiveRoots    []merkle.Digest
	RecursiveOpenings []Opening
	Final             FinalOpening
	Rounds            []RoundPolynomial
}

// proofMagic prefixes every serialized proof.
const proofMagic = "ligerito/proof"

// proofHeader identifies the serialization format. ReadFrom rejects
// payloads carrying a different magic or major version; minor versions
// are expected to stay wire-compatible.
type proofHeader struct {
	Magic string
	Major uint64
	Minor uint64
}

// WriteTo serializes the proof with deterministic CBOR, prefixed by a
// format header.
func (p *Proof) WriteTo(w io.Writer) (int64, error) {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return 0, err
	}
	header, err := em.Marshal(proofHeader{Magic: proofMagic, Major: Version.Major, Minor: Version.Minor})
	if err != nil {
		return 0, err
	}
	payload, err := em.Marshal(p)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(header)
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(payload)
	return int64(n + m), err
}

// ReadFrom deserializes a proof produced by WriteTo. Malformed bytes or an
// incompatible format header yield an error wrapping ErrSerialization; the
// decoded structure is otherwise unvalidated, Verify performs the shape
// checks.
func (p *Proof) ReadFrom(r io.Reader) (int64, error) {
	dm, err := cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecMode()
	if err != nil {
		return 0, err
	}
	decoder := dm.NewDecoder(r)
	var header proofHeader
	if err := decoder.Decode(&header); err != nil {
		return int64(decoder.NumBytesRead()), fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if header.Magic != proofMagic || header.Major != Version.Major {
		return int64(decoder.NumBytesRead()), fmt.Errorf("%w: incompatible format %q v%d.%d",
			ErrSerialization, header.Magic, header.Major, header.Minor)
	}
	if err := decoder.Decode(p); err != nil {
		return int64(decoder.NumBytesRead()), fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return int64(decoder.NumBytesRead()), nil
}

// SizeBytes returns the raw payload size of the proof: field elements,
// roots and sibling digests, without serialization framing.
func (p *Proof) SizeBytes() int {
	const (
		gf32Len  = 4
		gf128Len = 16
	)
	size := merkle.DigestSize
	for _, row := range p.InitialOpening.Rows {
		size += len(row) * gf32Len
	}
	size += len(p.InitialOpening.Proof.Siblings) * merkle.DigestSize
	size += len(p.RecursiveRoots) * merkle.DigestSize
	for _, o := range p.RecursiveOpenings {
		for _, row := range o.Rows {
			size += len(row) * gf128Len
		}
		size += len(o.Proof.Siblings) * merkle.DigestSize
	}
	size += len(p.Final.Yr) * gf128Len
	for _, row := range p.Final.Rows {
		size += len(row) * gf128Len
	}
	size += len(p.Final.Proof.Siblings) * merkle.DigestSize
	size += len(p.Rounds) * 3 * gf128Len
	return size
}
