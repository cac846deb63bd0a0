// Copyright (c) 2022 tevador. All rights reserved.
// Use of this source code is governed by the LGPLv3
// license that can be found in the LICENSE file.

// Package scalar implements arithmetic modulo the Curve25519 group order
//
//	l = 2^252 + 27742317777372353535851937790883648493
//
// using a 4-limb Montgomery representation, following
// https://briansmith.org/ecc-inversion-addition-chains-01#curve25519_scalar_inversion
// for the fixed addition-chain inversion.
package scalar

import (
	"crypto/subtle"

	"github.com/tevador/mx25519-go/internal/mp"
)

// Scalar is an integer in [0, 2^256), stored as 4 little-endian 64-bit
// limbs. It is not reduced modulo l and carries no Montgomery factor.
type Scalar [4]mp.Digit

// Montgomery is a residue x*R mod l, with R = 2^256, stored as 4
// little-endian limbs. A canonical Montgomery value lies in [0, l).
type Montgomery [4]mp.Digit

// groupOrder is l = 2^252 + 27742317777372353535851937790883648493.
var groupOrder = [4]mp.Digit{
	0x5812631a5cf5d3ed,
	0x14def9dea2f79cd6,
	0x0000000000000000,
	0x1000000000000000,
}

// Eight is the Montgomery form of the constant 8, used as the seed for
// InvertKeys' running product.
var Eight = Montgomery{
	0x4ee0d5ebe20bdd6d,
	0xa5620a8d272931aa,
	0xfffffffffffffff5,
	0x0fffffffffffffff,
}

// montModulus is R^2 mod l = 2^512 mod l.
var montModulus = Montgomery{
	0xa40611e3449c0f01,
	0xd00e1ba768859347,
	0xceec73d217f5be65,
	0x0399411b7c309a3d,
}

// montRPrime is -l^(-1) mod 2^256.
var montRPrime = [4]mp.Digit{
	0xd2b51da312547e1b,
	0xb1a206f2fdba84ff,
	0x14e75438ffa36bea,
	0x9db6c6f26fe91836,
}

// Unpack decodes a 32-byte little-endian encoding into a Scalar.
func Unpack(key *[32]byte) Scalar {
	var sc Scalar
	sc[0] = mp.Load64LE(key[0:8])
	sc[1] = mp.Load64LE(key[8:16])
	sc[2] = mp.Load64LE(key[16:24])
	sc[3] = mp.Load64LE(key[24:32])
	return sc
}

// Pack encodes sc as a 32-byte little-endian array.
func (sc *Scalar) Pack() [32]byte {
	var out [32]byte
	mp.Store64LE(out[0:8], sc[0])
	mp.Store64LE(out[8:16], sc[1])
	mp.Store64LE(out[16:24], sc[2])
	mp.Store64LE(out[24:32], sc[3])
	return out
}

// ClampForInversion masks sc the way InvertKeys masks each input key:
// limb 0 loses its bottom 3 bits and limb 3 loses its top bit.
func (sc *Scalar) ClampForInversion() {
	sc[0] &= 0xfffffffffffffff8
	sc[3] &= 0x7fffffffffffffff
}

// ShiftLeft3 shifts sc left by 3 bits in place with no modular
// reduction. Callers must have already established sc < 2^253.
func (sc *Scalar) ShiftLeft3() {
	mp.Shl256((*[4]mp.Digit)(sc), 3)
}

// reduceMont performs CIOS-style Montgomery reduction of the 512-bit
// product in prod, writing the reduced 256-bit result to res.
func reduceMont(res *[4]mp.Digit, prod *[8]mp.Digit) {
	var quot [4]mp.Digit
	var temp [8]mp.Digit

	mp.Mul256Low(&quot, (*[4]mp.Digit)(prod[:4]), &montRPrime) // quot = prod * r' mod 2^256
	mp.Mul256(&temp, &quot, &groupOrder)                       // temp = quot * l
	cout := mp.Add512(&temp, &temp, prod)                      // temp = temp + prod

	res[0] = temp[4]
	res[1] = temp[5]
	res[2] = temp[6]
	res[3] = temp[7]

	bout := mp.Sub256(res, res, &groupOrder)
	mask := cout - bout // all-ones if res < l, else all-zeros

	var add [4]mp.Digit
	add[0] = groupOrder[0] & mask
	add[1] = groupOrder[1] & mask
	add[2] = groupOrder[2] & mask
	add[3] = groupOrder[3] & mask

	mp.Add256(res, res, &add)
}

// ToMontgomery converts sc into the Montgomery domain.
func ToMontgomery(sc *Scalar) Montgomery {
	var prod [8]mp.Digit
	mp.Mul256(&prod, (*[4]mp.Digit)(sc), (*[4]mp.Digit)(&montModulus))
	var m Montgomery
	reduceMont((*[4]mp.Digit)(&m), &prod)
	return m
}

// FromMontgomery converts m out of the Montgomery domain.
func FromMontgomery(m *Montgomery) Scalar {
	var prod [8]mp.Digit
	prod[0], prod[1], prod[2], prod[3] = m[0], m[1], m[2], m[3]
	var sc Scalar
	reduceMont((*[4]mp.Digit)(&sc), &prod)
	return sc
}

// Equal returns 1 if m and n are equal, and 0 otherwise.
func (m *Montgomery) Equal(n *Montgomery) int {
	var mb, nb [32]byte
	for i := 0; i < 4; i++ {
		mp.Store64LE(mb[i*8:i*8+8], m[i])
		mp.Store64LE(nb[i*8:i*8+8], n[i])
	}
	return subtle.ConstantTimeCompare(mb[:], nb[:])
}

// Mul sets m = a * b mod l (Montgomery multiplication) and returns m.
func (m *Montgomery) Mul(a, b *Montgomery) *Montgomery {
	var prod [8]mp.Digit
	mp.Mul256(&prod, (*[4]mp.Digit)(a), (*[4]mp.Digit)(b))
	reduceMont((*[4]mp.Digit)(m), &prod)
	return m
}

// square sets m = a * a mod l.
func (m *Montgomery) square(a *Montgomery) *Montgomery {
	var prod [8]mp.Digit
	mp.Sqr256(&prod, (*[4]mp.Digit)(a))
	reduceMont((*[4]mp.Digit)(m), &prod)
	return m
}

func (m *Montgomery) nsqrMul(n int, mul *Montgomery) *Montgomery {
	for i := 0; i < n; i++ {
		m.square(m)
	}
	return m.Mul(m, mul)
}

// Inverse sets inv to the Montgomery-domain inverse of sc (i.e.
// inv = sc^(l-2) mod l, still in Montgomery form) using the fixed
// addition chain from Brian Smith's Curve25519 scalar inversion
// writeup, and returns inv. The behavior is undefined if sc is not
// coprime to l (e.g. sc == 0 in Montgomery form).
func (inv *Montgomery) Inverse(sc *Montgomery) *Montgomery {
	_1 := *sc
	var _10, _100, _11, _101, _111, _1001, _1011, _1111 Montgomery

	_10.square(&_1)
	_100.square(&_10)
	_11.Mul(&_10, &_1)
	_101.Mul(&_10, &_11)
	_111.Mul(&_10, &_101)
	_1001.Mul(&_10, &_111)
	_1011.Mul(&_10, &_1001)
	_1111.Mul(&_100, &_1011)

	inv.Mul(&_1, &_1111) // inv = _10000

	inv.nsqrMul(123+3, &_101)
	inv.nsqrMul(2+2, &_11)
	inv.nsqrMul(1+4, &_1111)
	inv.nsqrMul(1+4, &_1111)
	inv.nsqrMul(4, &_1001)
	inv.nsqrMul(2, &_11)
	inv.nsqrMul(1+4, &_1111)
	inv.nsqrMul(1+3, &_101)
	inv.nsqrMul(3+3, &_101)
	inv.nsqrMul(3, &_111)
	inv.nsqrMul(1+4, &_1111)
	inv.nsqrMul(2+3, &_111)
	inv.nsqrMul(2+2, &_11)
	inv.nsqrMul(1+4, &_1011)
	inv.nsqrMul(2+4, &_1011)
	inv.nsqrMul(6+4, &_1001)
	inv.nsqrMul(2+2, &_11)
	inv.nsqrMul(3+2, &_11)
	inv.nsqrMul(3+2, &_11)
	inv.nsqrMul(1+4, &_1001)
	inv.nsqrMul(1+3, &_111)
	inv.nsqrMul(2+4, &_1111)
	inv.nsqrMul(1+4, &_1011)
	inv.nsqrMul(3, &_101)
	inv.nsqrMul(2+4, &_1111)
	inv.nsqrMul(3, &_101)
	inv.nsqrMul(1+2, &_11)

	return inv
}
