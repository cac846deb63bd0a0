// Copyright (c) 2022 tevador. All rights reserved.
// Use of this source code is governed by the LGPLv3
// license that can be found in the LICENSE file.

// Package ladder implements the Montgomery-ladder X25519 scalar
// multiplication over internal/field.Element, following the
// constant-time ladder in RFC 7748 section 5, with one deliberate
// divergence: the clamp leaves bit 254 untouched instead of setting
// it, so that scalars produced by the key-inversion extension (which
// are not guaranteed to have that bit set) can be used directly.
package ladder

import "github.com/tevador/mx25519-go/internal/field"

// Clamp applies the RFC 7748 scalar clamp to k in place, except that
// bit 254 is left as-is rather than forced to 1.
func Clamp(k *[32]byte) {
	k[0] &= 248
	k[31] &= 127
}

// ScalarMult computes the X25519 function over scalar n and
// u-coordinate p, writing the resulting u-coordinate to out. n is
// consumed as-is; callers that need RFC 7748 clamping must call Clamp
// first.
func ScalarMult(out *[32]byte, n *[32]byte, p *[32]byte) {
	var x1, x2, z2, x3, z3, tmp0, tmp1 field.Element

	x1.FromBytes(p)
	x2 = field.One
	z2 = field.Zero
	x3.Set(&x1)
	z3 = field.One

	var swap uint64
	for pos := 254; pos >= 0; pos-- {
		b := uint64(n[pos/8]>>(uint(pos)&7)) & 1
		swap ^= b
		field.CondSwap(&x2, &x3, swap)
		field.CondSwap(&z2, &z3, swap)
		swap = b

		tmp0.Sub(&x3, &z3)
		tmp1.Sub(&x2, &z2)
		x2.Add(&x2, &z2)
		z2.Add(&x3, &z3)

		z3.Mul(&tmp0, &x2)
		z2.Mul(&z2, &tmp1)
		tmp0.Square(&tmp1)
		tmp1.Square(&x2)
		x3.Add(&z3, &z2)
		z2.Sub(&z3, &z2)
		x2.Mul(&tmp1, &tmp0)
		tmp1.Sub(&tmp1, &tmp0)
		z2.Square(&z2)
		z3.Mul121666(&tmp1)
		x3.Square(&x3)
		tmp0.Add(&tmp0, &z3)
		z3.Mul(&x1, &z2)
		z2.Mul(&tmp1, &tmp0)
	}
	field.CondSwap(&x2, &x3, swap)
	field.CondSwap(&z2, &z3, swap)

	z2.Invert(&z2)
	x2.Mul(&x2, &z2)
	*out = x2.Bytes()
}
