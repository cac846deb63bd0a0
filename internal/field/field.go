// Copyright (c) 2022 tevador. All rights reserved.
// Use of this source code is governed by the LGPLv3
// license that can be found in the LICENSE file.

// Package field implements arithmetic over GF(2^255-19), the base field
// of Curve25519. Elements are represented in radix 2^51 as 5 little-endian
// limbs, following the representation used throughout the curve25519-donna
// and ristretto255 family of implementations.
package field

import "math/bits"

const maskLow51Bits = (uint64(1) << 51) - 1

// Element is a field element, stored as 5 limbs l0..l4 with l[i]
// contributing a weight of 2^(51*i). Elements are not required to be
// fully reduced between operations except where documented.
type Element [5]uint64

// Zero is the additive identity.
var Zero = Element{0, 0, 0, 0, 0}

// One is the multiplicative identity.
var One = Element{1, 0, 0, 0, 0}

// Set sets e = a and returns e.
func (e *Element) Set(a *Element) *Element {
	*e = *a
	return e
}

// FromBytes decodes the 255 low bits of the little-endian encoding b
// into e, masking off the top bit of b[31] (i.e. reducing mod 2^255;
// values in [2^255-19, 2^255) are not further reduced to canonical
// form here, matching fe_frombytes's contract).
func (e *Element) FromBytes(b *[32]byte) *Element {
	var t [32]byte
	copy(t[:], b[:])
	t[31] &= 0x7f

	load51 := func(buf []byte, bitOff uint) uint64 {
		var v uint64
		for i := 0; i < 8 && int(bitOff)/8+i < len(buf); i++ {
			idx := int(bitOff)/8 + i
			if idx >= len(buf) {
				break
			}
			v |= uint64(buf[idx]) << (8 * uint(i))
		}
		return (v >> (bitOff % 8)) & maskLow51Bits
	}

	e[0] = load51(t[:], 0)
	e[1] = load51(t[:], 51)
	e[2] = load51(t[:], 102)
	e[3] = load51(t[:], 153)
	e[4] = load51(t[:], 204)
	return e
}

// Bytes returns the canonical 32-byte little-endian encoding of e, in
// [0, p).
func (e *Element) Bytes() [32]byte {
	var t Element
	t.reduceFull(e)

	var out [32]byte
	var acc uint64
	var accBits uint
	pos := 0
	for i := 0; i < 5; i++ {
		acc |= t[i] << accBits
		accBits += 51
		for accBits >= 8 {
			out[pos] = byte(acc)
			acc >>= 8
			accBits -= 8
			pos++
		}
	}
	if pos < 32 {
		out[pos] = byte(acc)
	}
	return out
}

// reduceFull reduces a to a unique representative in [0, p) and stores
// it in e.
func (e *Element) reduceFull(a *Element) {
	t := *a
	carryPropagate(&t)

	// t might be in [p, 2^255). Subtract p = 2^255 - 19 conditionally.
	var q Element
	q[0] = t[0] + 19
	carry := q[0] >> 51
	q[0] &= maskLow51Bits
	for i := 1; i < 5; i++ {
		q[i] = t[i] + carry
		carry = q[i] >> 51
		q[i] &= maskLow51Bits
	}
	// carry is 1 if t + 19 >= 2^255, i.e. t >= p.
	mask := uint64(0) - carry
	for i := 0; i < 5; i++ {
		e[i] = (t[i] & ^mask) | (q[i] & mask)
	}
}

func carryPropagate(t *Element) {
	c0 := t[0] >> 51
	t[0] &= maskLow51Bits
	t[1] += c0
	c1 := t[1] >> 51
	t[1] &= maskLow51Bits
	t[2] += c1
	c2 := t[2] >> 51
	t[2] &= maskLow51Bits
	t[3] += c2
	c3 := t[3] >> 51
	t[3] &= maskLow51Bits
	t[4] += c3
	c4 := t[4] >> 51
	t[4] &= maskLow51Bits
	t[0] += c4 * 19
	c5 := t[0] >> 51
	t[0] &= maskLow51Bits
	t[1] += c5
}

// Add sets e = a + b and returns e.
func (e *Element) Add(a, b *Element) *Element {
	e[0] = a[0] + b[0]
	e[1] = a[1] + b[1]
	e[2] = a[2] + b[2]
	e[3] = a[3] + b[3]
	e[4] = a[4] + b[4]
	carryPropagate(e)
	return e
}

// twoP0 and twoP1234 are the radix-51 limbs of 2*p, biased into a and
// added before the limb-wise subtraction so every limb stays
// non-negative; this is the standard curve25519-donna trick.
const (
	twoP0    = (uint64(1)<<52 - 38)
	twoP1234 = (uint64(1)<<52 - 2)
)

// Sub sets e = a - b and returns e.
func (e *Element) Sub(a, b *Element) *Element {
	e[0] = a[0] + twoP0 - b[0]
	e[1] = a[1] + twoP1234 - b[1]
	e[2] = a[2] + twoP1234 - b[2]
	e[3] = a[3] + twoP1234 - b[3]
	e[4] = a[4] + twoP1234 - b[4]
	carryPropagate(e)
	return e
}

// Neg sets e = -a and returns e.
func (e *Element) Neg(a *Element) *Element {
	return e.Sub(&Zero, a)
}

func mul64(a, b uint64) (hi, lo uint64) {
	return bits.Mul64(a, b)
}

func addWithCarry(lo1, hi1, lo2, hi2 uint64) (lo, hi uint64) {
	var c uint64
	lo, c = bits.Add64(lo1, lo2, 0)
	hi, _ = bits.Add64(hi1, hi2, c)
	return
}

// Mul sets e = a * b mod p and returns e. The inputs need not be fully
// reduced; the output is reduced to at most p+18 (i.e. ready for
// another Mul/Square, or for reduceFull/Bytes).
func (e *Element) Mul(a, b *Element) *Element {
	// Schoolbook multiply of two 5-limb, 51-bit-radix integers,
	// folding the 19x reduction of high limb products in as we go
	// (limb i*j with weight >= 5 contributes 19 * 2^(51*(i+j-5))).
	var r [5]uint64
	var rHi [5]uint64

	b1_19 := b[1] * 19
	b2_19 := b[2] * 19
	b3_19 := b[3] * 19
	b4_19 := b[4] * 19

	// r[0] = a0*b0 + 19*(a1*b4 + a2*b3 + a3*b2 + a4*b1)
	acc := func(idx int, x, y uint64) {
		hi, lo := mul64(x, y)
		r[idx], rHi[idx] = addWithCarry(r[idx], rHi[idx], lo, hi)
	}

	acc(0, a[0], b[0])
	acc(0, a[1], b4_19)
	acc(0, a[2], b3_19)
	acc(0, a[3], b2_19)
	acc(0, a[4], b1_19)

	acc(1, a[0], b[1])
	acc(1, a[1], b[0])
	acc(1, a[2], b4_19)
	acc(1, a[3], b3_19)
	acc(1, a[4], b2_19)

	acc(2, a[0], b[2])
	acc(2, a[1], b[1])
	acc(2, a[2], b[0])
	acc(2, a[3], b4_19)
	acc(2, a[4], b3_19)

	acc(3, a[0], b[3])
	acc(3, a[1], b[2])
	acc(3, a[2], b[1])
	acc(3, a[3], b[0])
	acc(3, a[4], b4_19)

	acc(4, a[0], b[4])
	acc(4, a[1], b[3])
	acc(4, a[2], b[2])
	acc(4, a[3], b[1])
	acc(4, a[4], b[0])

	reduceLimbs(e, &r, &rHi)
	return e
}

// Square sets e = a * a and returns e.
func (e *Element) Square(a *Element) *Element {
	return e.Mul(a, a)
}

// reduceLimbs carries a set of (lo, hi) 102-bit-capacity accumulators
// r[i] = r[i] + rHi[i]<<51*... into a canonical radix-51 limb set,
// folding the overflow of limb 4 back in multiplied by 19.
func reduceLimbs(out *Element, r, rHi *[5]uint64) {
	// r[i] + rHi[i]*2^64 is the exact weighted accumulator for limb i.
	// Fold in the carry from limb i-1 (which fits in 64 bits) with a
	// checked add, then split the 128-bit total at bit 51.
	var limbs [5]uint64
	var carry uint64
	for i := 0; i < 5; i++ {
		v, c := bits.Add64(r[i], carry, 0)
		hi := rHi[i] + c
		limbs[i] = v & maskLow51Bits
		carry = (hi << 13) | (v >> 51)
	}
	limbs[0] += carry * 19
	// final short carry chain
	c0 := limbs[0] >> 51
	limbs[0] &= maskLow51Bits
	limbs[1] += c0
	c1 := limbs[1] >> 51
	limbs[1] &= maskLow51Bits
	limbs[2] += c1
	c2 := limbs[2] >> 51
	limbs[2] &= maskLow51Bits
	limbs[3] += c2
	c3 := limbs[3] >> 51
	limbs[3] &= maskLow51Bits
	limbs[4] += c3
	c4 := limbs[4] >> 51
	limbs[4] &= maskLow51Bits
	limbs[0] += c4 * 19
	c5 := limbs[0] >> 51
	limbs[0] &= maskLow51Bits
	limbs[1] += c5
	*out = limbs
}

// Mul121666 sets e = 121666 * a and returns e, where 121666 is the
// Montgomery curve coefficient constant (A+2)/4.
func (e *Element) Mul121666(a *Element) *Element {
	const c = 121666
	var lo, hi [5]uint64
	for i := 0; i < 5; i++ {
		hi[i], lo[i] = mul64(a[i], c)
	}
	carry := uint64(0)
	for i := 0; i < 5; i++ {
		v, cc := bits.Add64(lo[i], carry, 0)
		h := hi[i] + cc
		e[i] = v & maskLow51Bits
		carry = (h << 13) | (v >> 51)
	}
	e[0] += carry * 19
	c0 := e[0] >> 51
	e[0] &= maskLow51Bits
	e[1] += c0
	return e
}

// CondSwap swaps a and b in place iff swap == 1, in constant time.
// swap must be 0 or 1.
func CondSwap(a, b *Element, swap uint64) {
	mask := uint64(0) - swap
	for i := 0; i < 5; i++ {
		t := mask & (a[i] ^ b[i])
		a[i] ^= t
		b[i] ^= t
	}
}

// Invert sets e = a^(p-2) = 1/a and returns e. If a is zero, the
// result is zero.
func (e *Element) Invert(a *Element) *Element {
	// Standard Curve25519 addition chain:
	// z_2_5_0 -> z_2_10_0 -> z_2_20_0 -> z_2_50_0 -> z_2_100_0 -> z_2_250_0
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t Element

	z2.Square(a)        // 2
	t.Square(&z2)       // 4
	t.Square(&t)        // 8
	z9.Mul(&t, a)       // 9
	z11.Mul(&z9, &z2)   // 11
	t.Square(&z11)      // 22
	z2_5_0.Mul(&t, &z9) // 2^5 - 2^0 = 31

	t.Square(&z2_5_0)
	for i := 0; i < 4; i++ {
		t.Square(&t)
	}
	z2_10_0.Mul(&t, &z2_5_0) // 2^10 - 2^0

	t.Square(&z2_10_0)
	for i := 0; i < 9; i++ {
		t.Square(&t)
	}
	z2_20_0.Mul(&t, &z2_10_0) // 2^20 - 2^0

	t.Square(&z2_20_0)
	for i := 0; i < 19; i++ {
		t.Square(&t)
	}
	t.Mul(&t, &z2_20_0) // 2^40 - 2^0

	for i := 0; i < 10; i++ {
		t.Square(&t)
	}
	z2_50_0.Mul(&t, &z2_10_0) // 2^50 - 2^0

	t.Square(&z2_50_0)
	for i := 0; i < 49; i++ {
		t.Square(&t)
	}
	z2_100_0.Mul(&t, &z2_50_0) // 2^100 - 2^0

	t.Square(&z2_100_0)
	for i := 0; i < 99; i++ {
		t.Square(&t)
	}
	t.Mul(&t, &z2_100_0) // 2^200 - 2^0

	for i := 0; i < 50; i++ {
		t.Square(&t)
	}
	t.Mul(&t, &z2_50_0) // 2^250 - 2^0

	t.Square(&t)
	t.Square(&t)
	t.Square(&t)
	t.Square(&t)
	t.Square(&t) // 2^255 - 2^5

	e.Mul(&t, &z11) // (2^255-32)+11 = 2^255-21 = p-2
	return e
}
