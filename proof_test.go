// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ligerito

import (
	"bytes"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestProofSerializationRoundTrip(t *testing.T) {
	_, proof := proveForTest(t, 12)

	var buf bytes.Buffer
	n, err := proof.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	var decoded Proof
	m, err := decoded.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, n, m)
	require.Empty(t, cmp.Diff(proof, &decoded))
	require.Equal(t, proof.SizeBytes(), decoded.SizeBytes())

	vcfg, err := NewVerifierConfig(12)
	require.NoError(t, err)
	require.NoError(t, Verify(vcfg, &decoded))
}

func TestProofWriteToDeterministic(t *testing.T) {
	_, proof := proveForTest(t, 12)

	var a, b bytes.Buffer
	_, err := proof.WriteTo(&a)
	require.NoError(t, err)
	_, err = proof.WriteTo(&b)
	require.NoError(t, err)
	require.True(t, bytes.Equal(a.Bytes(), b.Bytes()))
}

func TestProofReadFromRejectsGarbage(t *testing.T) {
	_, proof := proveForTest(t, 12)
	var buf bytes.Buffer
	_, err := proof.WriteTo(&buf)
	require.NoError(t, err)

	wrongMagic, err := cbor.Marshal(proofHeader{Magic: "ligerito/other", Major: Version.Major})
	require.NoError(t, err)
	futureMajor, err := cbor.Marshal(proofHeader{Magic: proofMagic, Major: Version.Major + 1})
	require.NoError(t, err)

	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not cbor", []byte("definitely not a proof")},
		{"truncated", buf.Bytes()[:buf.Len()/2]},
		{"wrong magic", wrongMagic},
		{"future major version", futureMajor},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var p Proof
			_, err := p.ReadFrom(bytes.NewReader(tc.data))
			require.ErrorIs(t, err, ErrSerialization)
		})
	}
}

func TestProofSizeBytes(t *testing.T) {
	_, proof := proveForTest(t, 12)

	// 148 base rows of 16 GF32 elements alone account for this much.
	require.Greater(t, proof.SizeBytes(), 148*16*4)

	smaller := cloneProof(t, proof)
	smaller.Final.Yr = smaller.Final.Yr[:1]
	require.Less(t, smaller.SizeBytes(), proof.SizeBytes())
}
