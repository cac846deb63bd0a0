// Copyright (c) 2022 tevador. All rights reserved.
// Use of this source code is governed by the LGPLv3
// license that can be found in the LICENSE file.

// Package mx25519 implements X25519 Diffie-Hellman scalar multiplication
// together with a key-inversion extension: a sequence of clamped
// private scalars can be collapsed into a single scalar that, applied
// through the same ladder, undoes the combined effect of that sequence
// on any point of the main subgroup.
//
// The portable Go core lives under internal/ (limb primitives, field
// and scalar-mod-l arithmetic, the Montgomery ladder); this package is
// the dispatch and public-key surface described by mx25519.h in the
// reference implementation.
package mx25519
