// Copyright (c) 2022 tevador. All rights reserved.
// Use of this source code is governed by the LGPLv3
// license that can be found in the LICENSE file.

// Package mp implements the 256-bit multi-precision integer operations
// that the scalar-mod-l arithmetic above it is built from.
// Every routine here is branch-free with respect to its digit inputs:
// no conditional depends on a digit's value, only on fixed shift counts
// and loop bounds known at compile time.
package mp

import "math/bits"

// Digit is a single 64-bit limb.
type Digit = uint64

// Carry is a single borrow/carry bit, always 0 or 1.
type Carry = uint64

// Mul64 returns the 128-bit product of a and b as (hi, lo).
func Mul64(a, b Digit) (hi, lo Digit) {
	hi, lo = bits.Mul64(a, b)
	return
}

// AddC returns sum = a + b + cin and the carry out; cin and cout are
// in {0,1}.
func AddC(cin Carry, a, b Digit) (sum Digit, cout Carry) {
	s, c := bits.Add64(a, b, cin)
	return s, Carry(c)
}

// SubB returns diff = a - b - bin and the borrow out; bin and bout are
// in {0,1}.
func SubB(bin Carry, a, b Digit) (diff Digit, bout Carry) {
	d, b2 := bits.Sub64(a, b, bin)
	return d, Carry(b2)
}

// EqZero returns 1 if x == 0 and 0 otherwise, computed without a
// comparison operator so that the result does not depend on a branch.
func EqZero(x Digit) Digit {
	return 1 ^ ((x | -x) >> 63)
}

// Lt returns 1 if x < y and 0 otherwise, computed without a comparison
// operator.
func Lt(x, y Digit) Digit {
	return (x ^ ((x ^ y) | ((x - y) ^ y))) >> 63
}

// Shl shifts the 128-bit value (hi:lo) left by n bits, 1 <= n <= 63,
// and returns the high digit of the result.
func Shl(hi, lo Digit, n uint) Digit {
	return (hi << n) | (lo >> (64 - n))
}

// Shr shifts the 128-bit value (hi:lo) right by n bits, 1 <= n <= 63,
// and returns the low digit of the result.
func Shr(hi, lo Digit, n uint) Digit {
	return (lo >> n) | (hi << (64 - n))
}

// Load64LE decodes the first 8 bytes of b as a little-endian digit.
func Load64LE(b []byte) Digit {
	_ = b[7]
	return Digit(b[0]) | Digit(b[1])<<8 | Digit(b[2])<<16 | Digit(b[3])<<24 |
		Digit(b[4])<<32 | Digit(b[5])<<40 | Digit(b[6])<<48 | Digit(b[7])<<56
}

// Store64LE encodes x into the first 8 bytes of b as little-endian.
func Store64LE(b []byte, x Digit) {
	_ = b[7]
	b[0] = byte(x)
	b[1] = byte(x >> 8)
	b[2] = byte(x >> 16)
	b[3] = byte(x >> 24)
	b[4] = byte(x >> 32)
	b[5] = byte(x >> 40)
	b[6] = byte(x >> 48)
	b[7] = byte(x >> 56)
}

// Mul256 computes the full 512-bit product c = a * b of two 256-bit
// (4-digit) integers. Carries are folded once per output limb through a
// running carry accumulator, matching the schoolbook layout of
// mp_mul256 in the reference C implementation.
func Mul256(c *[8]Digit, a, b *[4]Digit) {
	var cr Carry

	t000, t001 := mulLH(a[0], b[0])
	c[0] = t000

	c[1] = t001
	t010, t011 := mulLH(a[0], b[1])
	t100, t101 := mulLH(a[1], b[0])
	cr = addInto(&c[1], t010)
	cr += addInto(&c[1], t100)

	cr = addCarryInto(&c[2], cr, t011)
	t020, t021 := mulLH(a[0], b[2])
	t110, t111 := mulLH(a[1], b[1])
	t200, t201 := mulLH(a[2], b[0])
	cr += addInto(&c[2], t101)
	cr += addInto(&c[2], t020)
	cr += addInto(&c[2], t110)
	cr += addInto(&c[2], t200)

	cr = addCarryInto(&c[3], cr, t021)
	t030, t031 := mulLH(a[0], b[3])
	t120, t121 := mulLH(a[1], b[2])
	t210, t211 := mulLH(a[2], b[1])
	t300, t301 := mulLH(a[3], b[0])
	cr += addInto(&c[3], t111)
	cr += addInto(&c[3], t030)
	cr += addInto(&c[3], t201)
	cr += addInto(&c[3], t120)
	cr += addInto(&c[3], t210)
	cr += addInto(&c[3], t300)

	cr = addCarryInto(&c[4], cr, t031)
	t130, t131 := mulLH(a[1], b[3])
	t220, t221 := mulLH(a[2], b[2])
	t310, t311 := mulLH(a[3], b[1])
	cr += addInto(&c[4], t121)
	cr += addInto(&c[4], t211)
	cr += addInto(&c[4], t301)
	cr += addInto(&c[4], t130)
	cr += addInto(&c[4], t220)
	cr += addInto(&c[4], t310)

	cr = addCarryInto(&c[5], cr, t131)
	t230, t231 := mulLH(a[2], b[3])
	t320, t321 := mulLH(a[3], b[2])
	cr += addInto(&c[5], t221)
	cr += addInto(&c[5], t311)
	cr += addInto(&c[5], t230)
	cr += addInto(&c[5], t320)

	cr = addCarryInto(&c[6], cr, t231)
	t330, t331 := mulLH(a[3], b[3])
	cr += addInto(&c[6], t321)
	cr += addInto(&c[6], t330)

	c[7] = t331 + cr
}

// Sqr256 computes the full 512-bit square c = a * a of a 256-bit
// integer. Off-diagonal partial products are folded in twice, diagonal
// products once, per the layout of mp_sqr256.
func Sqr256(c *[8]Digit, a *[4]Digit) {
	var cr Carry

	t000, t001 := mulLH(a[0], a[0])
	c[0] = t000

	c[1] = t001
	t010, t011 := mulLH(a[0], a[1])
	cr = addInto(&c[1], t010)
	cr += addInto(&c[1], t010)

	cr = addCarryInto(&c[2], cr, t011)
	t020, t021 := mulLH(a[0], a[2])
	t110, t111 := mulLH(a[1], a[1])
	cr += addInto(&c[2], t011)
	cr += addInto(&c[2], t020)
	cr += addInto(&c[2], t110)
	cr += addInto(&c[2], t020)

	cr = addCarryInto(&c[3], cr, t021)
	t030, t031 := mulLH(a[0], a[3])
	t120, t121 := mulLH(a[1], a[2])
	cr += addInto(&c[3], t111)
	cr += addInto(&c[3], t030)
	cr += addInto(&c[3], t021)
	cr += addInto(&c[3], t120)
	cr += addInto(&c[3], t120)
	cr += addInto(&c[3], t030)

	cr = addCarryInto(&c[4], cr, t031)
	t130, t131 := mulLH(a[1], a[3])
	t220, t221 := mulLH(a[2], a[2])
	cr += addInto(&c[4], t121)
	cr += addInto(&c[4], t121)
	cr += addInto(&c[4], t031)
	cr += addInto(&c[4], t130)
	cr += addInto(&c[4], t220)
	cr += addInto(&c[4], t130)

	cr = addCarryInto(&c[5], cr, t131)
	t230, t231 := mulLH(a[2], a[3])
	cr += addInto(&c[5], t221)
	cr += addInto(&c[5], t131)
	cr += addInto(&c[5], t230)
	cr += addInto(&c[5], t230)

	cr = addCarryInto(&c[6], cr, t231)
	t330, t331 := mulLH(a[3], a[3])
	cr += addInto(&c[6], t231)
	cr += addInto(&c[6], t330)

	c[7] = t331 + cr
}

// Mul256Low computes the low 256 bits c = (a * b) mod 2^256 of the
// product of two 256-bit integers. Partial products whose limb-weight
// exceeds 3 are dropped entirely; at weight 3 only the low words of
// each partial product matter.
func Mul256Low(c *[4]Digit, a, b *[4]Digit) {
	var cr Carry

	t000, t001 := mulLH(a[0], b[0])
	c[0] = t000

	c[1] = t001
	t010, t011 := mulLH(a[0], b[1])
	t100, t101 := mulLH(a[1], b[0])
	cr = addInto(&c[1], t010)
	cr += addInto(&c[1], t100)

	cr = addCarryInto(&c[2], cr, t011)
	t020, t021 := mulLH(a[0], b[2])
	t110, t111 := mulLH(a[1], b[1])
	t200, t201 := mulLH(a[2], b[0])
	cr += addInto(&c[2], t101)
	cr += addInto(&c[2], t020)
	cr += addInto(&c[2], t110)
	cr += addInto(&c[2], t200)

	c[3] = t021 + Digit(cr)
	t030, _ := mulLH(a[0], b[3])
	t120, _ := mulLH(a[1], b[2])
	t210, _ := mulLH(a[2], b[1])
	t300, _ := mulLH(a[3], b[0])
	c[3] += t111
	c[3] += t030
	c[3] += t201
	c[3] += t120
	c[3] += t210
	c[3] += t300
}

// Add512 computes c = a + b for two 512-bit (8-digit) integers and
// returns the final carry.
func Add512(c, a, b *[8]Digit) Carry {
	var cr Carry
	for i := 0; i < 8; i++ {
		c[i], cr = AddC(cr, a[i], b[i])
	}
	return cr
}

// Add256 computes c = a + b for two 256-bit integers and returns the
// final carry.
func Add256(c, a, b *[4]Digit) Carry {
	var cr Carry
	for i := 0; i < 4; i++ {
		c[i], cr = AddC(cr, a[i], b[i])
	}
	return cr
}

// Sub256 computes c = a - b for two 256-bit integers and returns the
// final borrow.
func Sub256(c, a, b *[4]Digit) Carry {
	var br Carry
	for i := 0; i < 4; i++ {
		c[i], br = SubB(br, a[i], b[i])
	}
	return br
}

// Shl256 shifts a 256-bit integer left by n bits in place, 0 <= n < 64.
// Bits shifted out of limb 3 are discarded; no modular reduction is
// performed.
func Shl256(a *[4]Digit, n uint) {
	if n == 0 {
		return
	}
	a[3] = Shl(a[3], a[2], n)
	a[2] = Shl(a[2], a[1], n)
	a[1] = Shl(a[1], a[0], n)
	a[0] = a[0] << n
}

func mulLH(a, b Digit) (lo, hi Digit) {
	hi, lo = Mul64(a, b)
	return
}

func addInto(dst *Digit, x Digit) Carry {
	s, c := bits.Add64(*dst, x, 0)
	*dst = s
	return Carry(c)
}

func addCarryInto(dst *Digit, cr Carry, x Digit) Carry {
	s, c := bits.Add64(cr, x, 0)
	*dst = s
	return Carry(c)
}
