// Copyright (c) 2022 tevador. All rights reserved.
// Use of this source code is governed by the LGPLv3
// license that can be found in the LICENSE file.

// Package cpu mirrors mx25519_get_cpu_cap and select_best_impl from the
// reference implementation's src/cpu.c and src/mx25519.c, using
// golang.org/x/sys/cpu instead of raw CPUID so the detection logic
// reads the same whether the host is amd64, arm64, or anything else.
package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Caps is a bitset mirroring the C enum x25519_cpu_cap. RDTSCP, AVX,
// and AVX2 are carried for parity with the reference enum even though
// no portable operation in this module consumes them; only MULX and
// ADX currently gate a dispatch decision (AMD64X).
type Caps uint32

const (
	RDTSCP Caps = 1 << iota
	AVX
	AVX2
	MULX
	ADX
)

// Detect returns the capability bitset of the running CPU. On
// platforms whose x86 flags x/sys/cpu does not probe (anything but
// amd64 and 386), it returns
// an empty set, matching mx25519_get_cpu_cap's #ifdef HAVE_CPUID
// fallback of cap == 0.
func Detect() Caps {
	if runtime.GOARCH != "amd64" && runtime.GOARCH != "386" {
		return 0
	}
	if !cpu.Initialized {
		return 0
	}
	var c Caps
	if cpu.X86.HasAVX {
		c |= AVX
	}
	if cpu.X86.HasAVX2 {
		c |= AVX2
	}
	if cpu.X86.HasBMI2 {
		c |= MULX
	}
	if cpu.X86.HasADX {
		c |= ADX
	}
	// x/sys/cpu does not expose RDTSCP; the bit is carried in Caps for
	// parity with the reference enum but is never set here.
	return c
}

// Has reports whether every bit set in want is also set in c.
func (c Caps) Has(want Caps) bool {
	return c&want == want
}

// SupportsAMD64X reports whether the running CPU has the MULX and ADX
// extensions the AMD64X backend would require, mirroring
// impl_supported(MX25519_TYPE_AMD64X) from the reference
// implementation.
func SupportsAMD64X() bool {
	return runtime.GOARCH == "amd64" && Detect().Has(MULX|ADX)
}
