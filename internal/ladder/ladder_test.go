// Copyright (c) 2022 tevador. All rights reserved.
// Use of this source code is governed by the LGPLv3
// license that can be found in the LICENSE file.

package ladder

import (
	"encoding/hex"
	"testing"
)

func decodeLE(t *testing.T, s string) [32]byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 32 {
		t.Fatalf("wrong length %d", len(b))
	}
	var out [32]byte
	copy(out[:], b)
	return out
}

func TestScalarMultVectors(t *testing.T) {
	cases := []struct {
		name            string
		scalar, x, want string
	}{
		{
			"rfc7748-1",
			"a546e36bf0527c9d3b16154b82465edd62144c0ac1fc5a18506a2244ba449ac4",
			"e6db6867583030db3594c1a424b15f7c726624ec26b3353b10a903a6d0ab1c4c",
			"c3da55379de9c6908e94ea4df28d084f32eccf03491c71f754b4075577a28552",
		},
		{
			"rfc7748-2",
			"4b66e9d4d1b4673c5ad22691957d6af5c11b6421e0ea01d42ca4169e7918ba4d",
			"e5210f12786811d3f4b7959d0538ae2c31dbe7106fc03c3efc4cd549c715a493",
			"95cbde9476e8907d7aade45cb4b873f88b595a68799fa152e6f8f7647aac7957",
		},
		{
			"x-above-p",
			"a92b2c3964e188a899d6f74b99679013b0a2510b5a6a0a90739e444b23f7bae6",
			"f6ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
			"18b1569101d55e0e7e8527a73e27d43393a2d4ec73e67078064bc2a56dcb5860",
		},
		{
			"bit254-zero",
			"abc58a54782e87c7052458c2caa461aa27024fb08801ad4bb376b880e449da88",
			"08558f428dff0dc8ee4bebf2408982cf65538a3ae57dffe4f49f43f5506ccd09",
			"cd178e864e4f3dd3f5e945c04b87825b84d8a224b6c240784515c5f87af27647",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n := decodeLE(t, c.scalar[:64])
			x := decodeLE(t, c.x[:64])
			Clamp(&n)
			var out [32]byte
			ScalarMult(&out, &n, &x)
			got := hex.EncodeToString(out[:])
			if want := c.want[:64]; got != want {
				t.Fatalf("got %s want %s", got, want)
			}
		})
	}
}
