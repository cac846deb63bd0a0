// Copyright (c) 2022 tevador. All rights reserved.
// Use of this source code is governed by the LGPLv3
// license that can be found in the LICENSE file.

package field

import (
	"math/big"
	"testing"
	"testing/quick"
)

func primeBig() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 255)
	p.Sub(p, big.NewInt(19))
	return p
}

func (e *Element) toBig() *big.Int {
	var r Element
	r.reduceFull(e)
	n := new(big.Int)
	for i := 4; i >= 0; i-- {
		n.Lsh(n, 51)
		n.Or(n, new(big.Int).SetUint64(r[i]))
	}
	return n
}

func fromBig(x *big.Int) Element {
	var out [32]byte
	v := new(big.Int).Set(x)
	mask := big.NewInt(0xff)
	for i := 0; i < 32; i++ {
		out[i] = byte(new(big.Int).And(v, mask).Uint64())
		v.Rsh(v, 8)
	}
	var e Element
	e.FromBytes(&out)
	return e
}

func TestAddSubNeg(t *testing.T) {
	p := primeBig()
	f := func(ra, rb [4]uint64) bool {
		a := fromBig(new(big.Int).SetBytes(limbsToBytes(ra)))
		b := fromBig(new(big.Int).SetBytes(limbsToBytes(rb)))

		var sum, diff, negB, viaNeg, sumBack Element
		sum.Add(&a, &b)
		diff.Sub(&a, &b)
		negB.Neg(&b)
		viaNeg.Add(&a, &negB)
		sumBack.Add(&diff, &b)

		wantSum := new(big.Int).Add(a.toBig(), b.toBig())
		wantSum.Mod(wantSum, p)

		return sum.toBig().Cmp(wantSum) == 0 &&
			sumBack.toBig().Cmp(a.toBig()) == 0 &&
			viaNeg.toBig().Cmp(diff.toBig()) == 0
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func limbsToBytes(limbs [4]uint64) []byte {
	var b [32]byte
	for i, l := range limbs {
		for j := 0; j < 8; j++ {
			b[i*8+j] = byte(l >> (8 * j))
		}
	}
	// reverse to big-endian for big.Int.SetBytes
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b[:]
}

func TestMulSquareConsistency(t *testing.T) {
	f := func(ra [4]uint64) bool {
		a := fromBig(new(big.Int).SetBytes(limbsToBytes(ra)))
		var sq, mul Element
		sq.Square(&a)
		mul.Mul(&a, &a)
		return sq.toBig().Cmp(mul.toBig()) == 0
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestInvert(t *testing.T) {
	p := primeBig()
	f := func(ra [4]uint64) bool {
		a := fromBig(new(big.Int).SetBytes(limbsToBytes(ra)))
		if a.toBig().Sign() == 0 {
			return true
		}
		var inv, prod Element
		inv.Invert(&a)
		prod.Mul(&a, &inv)
		return prod.toBig().Cmp(big.NewInt(1)) == 0 && prod.toBig().Cmp(p) < 0
	}
	cfg := &quick.Config{MaxCount: 64}
	if err := quick.Check(f, cfg); err != nil {
		t.Fatal(err)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	f := func(b [32]byte) bool {
		b[31] &= 0x7f
		var e Element
		e.FromBytes(&b)
		return e.Bytes() == b
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestCondSwap(t *testing.T) {
	a := One
	b := Zero
	CondSwap(&a, &b, 1)
	if a != Zero || b != One {
		t.Fatal("swap=1 did not swap")
	}
	CondSwap(&a, &b, 0)
	if a != Zero || b != One {
		t.Fatal("swap=0 mutated operands")
	}
}
