// Copyright (c) 2022 tevador. All rights reserved.
// Use of this source code is governed by the LGPLv3
// license that can be found in the LICENSE file.

package scalar

import (
	"math/big"
	"testing"
	"testing/quick"
)

func groupOrderBig() *big.Int {
	n := new(big.Int)
	for i := 3; i >= 0; i-- {
		n.Lsh(n, 64)
		n.Or(n, new(big.Int).SetUint64(groupOrder[i]))
	}
	return n
}

func bigToScalar(x *big.Int) Scalar {
	var b [32]byte
	x.FillBytes(b[:]) // big-endian
	var be [32]byte
	for i := 0; i < 32; i++ {
		be[i] = b[31-i]
	}
	return Unpack(&be)
}

func scalarToBig(sc *Scalar) *big.Int {
	n := new(big.Int)
	for i := 3; i >= 0; i-- {
		n.Lsh(n, 64)
		n.Or(n, new(big.Int).SetUint64(sc[i]))
	}
	return n
}

func TestMontgomeryRoundTrip(t *testing.T) {
	l := groupOrderBig()
	f := func(raw [4]uint64) bool {
		s := Scalar(raw)
		x := scalarToBig(&s)
		x.Mod(x, l)

		sc := bigToScalar(x)
		m := ToMontgomery(&sc)
		back := FromMontgomery(&m)
		return scalarToBig(&sc).Cmp(scalarToBig(&back)) == 0
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestScalarInverse(t *testing.T) {
	l := groupOrderBig()
	f := func(raw [4]uint64) bool {
		s := Scalar(raw)
		x := scalarToBig(&s)
		x.Mod(x, l)
		if x.Sign() == 0 {
			x.SetInt64(1)
		}

		sc := bigToScalar(x)
		m := ToMontgomery(&sc)
		var inv Montgomery
		inv.Inverse(&m)

		var one Montgomery
		one.Mul(&m, &inv)
		oneSc := FromMontgomery(&one)
		return scalarToBig(&oneSc).Cmp(big.NewInt(1)) == 0
	}
	cfg := &quick.Config{MaxCount: 64}
	if err := quick.Check(f, cfg); err != nil {
		t.Fatal(err)
	}
}

func TestShiftLeft3(t *testing.T) {
	sc := Scalar{1, 0, 0, 0}
	sc.ShiftLeft3()
	if sc != (Scalar{8, 0, 0, 0}) {
		t.Fatalf("got %v", sc)
	}
}

func TestClampForInversion(t *testing.T) {
	sc := Scalar{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
	sc.ClampForInversion()
	if sc[0]&0x7 != 0 {
		t.Fatal("low 3 bits not cleared")
	}
	if sc[3]>>63 != 0 {
		t.Fatal("top bit not cleared")
	}
}

func TestMontgomeryEqual(t *testing.T) {
	l := groupOrderBig()
	f := func(a, b [4]uint64) bool {
		sa, sb := Scalar(a), Scalar(b)
		xa, xb := scalarToBig(&sa), scalarToBig(&sb)
		xa.Mod(xa, l)
		xb.Mod(xb, l)

		ma := ToMontgomery(&sa)
		mb := ToMontgomery(&sb)
		want := 0
		if xa.Cmp(xb) == 0 {
			want = 1
		}
		return ma.Equal(&mb) == want
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}

	m := ToMontgomery(&Scalar{1, 0, 0, 0})
	if m.Equal(&m) != 1 {
		t.Fatal("Equal not reflexive")
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	f := func(b [32]byte) bool {
		sc := Unpack(&b)
		return sc.Pack() == b
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}
