// Copyright (c) 2022 tevador. All rights reserved.
// Use of this source code is governed by the LGPLv3
// license that can be found in the LICENSE file.

package mx25519

import (
	"crypto/subtle"

	"github.com/tevador/mx25519-go/internal/scalar"
)

// PrivateKey is a 32-byte scalar. No format is enforced beyond the
// clamping applied internally by ScalarMultBase/ScalarMult/InvertKeys.
type PrivateKey [32]byte

// Equal reports whether k and other hold the same bytes, in constant
// time.
func (k *PrivateKey) Equal(other *PrivateKey) bool {
	return subtle.ConstantTimeCompare(k[:], other[:]) == 1
}

// PublicKey is the little-endian 32-byte encoding of an X-coordinate
// on Curve25519 (or its quadratic twist; no subgroup check is done).
type PublicKey [32]byte

// Equal reports whether p and other hold the same bytes, in constant
// time.
func (p *PublicKey) Equal(other *PublicKey) bool {
	return subtle.ConstantTimeCompare(p[:], other[:]) == 1
}

// basePoint is the X25519 base point's X-coordinate, X=9.
var basePoint = PublicKey{9}

// ScalarMultBase computes out = x([key]*G), where G is the X25519 base
// point, using impl.
func ScalarMultBase(impl *Impl, key *PrivateKey) PublicKey {
	return ScalarMult(impl, key, &basePoint)
}

// ScalarMult computes out = x([key]*P) for the point with X-coordinate
// p, using impl.
func ScalarMult(impl *Impl, key *PrivateKey, p *PublicKey) PublicKey {
	var out PublicKey
	impl.scmul((*[32]byte)(&out), (*[32]byte)(key), (*[32]byte)(p))
	return out
}

// InvertKeys computes a single PrivateKey that, applied through
// ScalarMult after keys[0..n-1] have each been applied in order to a
// point of the main subgroup, returns that point unchanged. keys may
// be empty, in which case the result is the identity element of this
// composition (the Montgomery-inverse of the embedded factor of 8,
// shifted back).
//
// InvertKeys returns ErrInverseOutOfRange in the roughly 2^-124 event
// that the computed inverse is >= 2^252; the returned PrivateKey is
// unspecified in that case.
func InvertKeys(keys []PrivateKey) (PrivateKey, error) {
	prod := scalar.Eight

	for i := range keys {
		var buf [32]byte
		buf = keys[i]
		sc := scalar.Unpack(&buf)
		sc.ClampForInversion()
		mont := scalar.ToMontgomery(&sc)
		prod.Mul(&prod, &mont)
	}

	var inv scalar.Montgomery
	inv.Inverse(&prod)

	res := scalar.FromMontgomery(&inv)
	if res[3] >= 0x1000000000000000 {
		return PrivateKey{}, ErrInverseOutOfRange
	}

	res.ShiftLeft3()
	return PrivateKey(res.Pack()), nil
}
