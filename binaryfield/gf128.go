// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package binaryfield

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// GF128 is an element of GF(2^128), the quadratic extension
// GF(2^64)[w] / (w² + w + x^17·z). The non-residue x^17·z has trace one over
// GF(2), so the modulus is irreducible. Lo is the constant coefficient, Hi
// the w coefficient.
type GF128 struct {
	Lo, Hi GF64
}

// mulNonRes multiplies t = t0 + t1·z by x^17·z:
// x^17·z·(t0 + t1·z) = x^34·t1 + x^17·(t0 + t1)·z.
func mulNonRes(t GF64) GF64 {
	return GF64{Lo: gf32GenSq.Mul(t.Hi), Hi: gf32Gen.Mul(t.Lo ^ t.Hi)}
}

func (GF128) Zero() GF128 { return GF128{} }
func (GF128) One() GF128  { return GF128{Lo: GF64{Lo: 1}} }

func (z GF128) IsZero() bool { return z == GF128{} }

// Add returns z + x.
func (z GF128) Add(x GF128) GF128 {
	return GF128{Lo: z.Lo.Add(x.Lo), Hi: z.Hi.Add(x.Hi)}
}

// Mul returns z·x: three GF64 multiplications (Karatsuba) plus the
// reduction w² = w + x^17·z.
func (z GF128) Mul(x GF128) GF128 {
	m0 := z.Lo.Mul(x.Lo)
	m1 := z.Hi.Mul(x.Hi)
	m2 := z.Lo.Add(z.Hi).Mul(x.Lo.Add(x.Hi))
	return GF128{
		Lo: m0.Add(mulNonRes(m1)),
		Hi: m2.Add(m0),
	}
}

// Square returns z².
func (z GF128) Square() GF128 {
	s1 := z.Hi.Square()
	return GF128{Lo: z.Lo.Square().Add(mulNonRes(s1)), Hi: s1}
}

// Inverse descends to one GF64 inversion through the norm:
// (a + bw)⁻¹ = (a + b + bw) / (a² + ab + x^17·z·b²).
func (z GF128) Inverse() GF128 {
	if z.IsZero() {
		panic("binaryfield: inverse of zero in GF(2^128)")
	}
	n := z.Lo.Square().Add(z.Lo.Mul(z.Hi)).Add(mulNonRes(z.Hi.Square()))
	nInv := n.Inverse()
	return GF128{Lo: z.Lo.Add(z.Hi).Mul(nInv), Hi: z.Hi.Mul(nInv)}
}

// Div returns z/x. Panics if x is zero.
func (z GF128) Div(x GF128) GF128 {
	if x.IsZero() {
		panic("binaryfield: division by zero in GF(2^128)")
	}
	return z.Mul(x.Inverse())
}

// Pow returns z^e by square-and-multiply.
func (z GF128) Pow(e uint64) GF128 {
	r, b := GF128{}.One(), z
	for ; e != 0; e >>= 1 {
		if e&1 != 0 {
			r = r.Mul(b)
		}
		b = b.Square()
	}
	return r
}

// FromBits places v in the low limb. Domain indices never exceed 64 bits,
// and values below 2^32 agree with GF128FromGF32 of the GF32 pattern, which
// keeps base-field and lifted FFT domains aligned.
func (GF128) FromBits(v uint64) GF128 {
	return GF128{Lo: GF64{}.FromBits(v)}
}

// ByteLen returns the serialized size, 16 bytes.
func (GF128) ByteLen() int { return 16 }

// AppendBytes appends the little-endian encoding of z to buf, low limb
// first.
func (z GF128) AppendBytes(buf []byte) []byte {
	buf = z.Lo.AppendBytes(buf)
	return z.Hi.AppendBytes(buf)
}

// FromBytes decodes a little-endian element from the first 16 bytes of data.
func (GF128) FromBytes(data []byte) GF128 {
	return GF128{
		Lo: GF64{}.FromBytes(data),
		Hi: GF64{}.FromBytes(data[8:]),
	}
}

// MarshalCBOR encodes z as a 16-byte CBOR byte string so proof payloads stay
// compact instead of nested limb maps.
func (z GF128) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(z.AppendBytes(make([]byte, 0, 16)))
}

// UnmarshalCBOR decodes a 16-byte CBOR byte string.
func (z *GF128) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 16 {
		return errors.New("binaryfield: invalid GF128 encoding length")
	}
	*z = GF128{}.FromBytes(raw)
	return nil
}

func (z GF128) String() string {
	return fmt.Sprintf("0x%016x%016x", z.Hi.Bits(), z.Lo.Bits())
}
