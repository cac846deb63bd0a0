// Copyright (c) 2022 tevador. All rights reserved.
// Use of this source code is governed by the LGPLv3
// license that can be found in the LICENSE file.

package mx25519

import (
	"runtime"

	"github.com/tevador/mx25519-go/internal/cpu"
	"github.com/tevador/mx25519-go/internal/ladder"
)

// ImplType selects a scalar-multiplication back-end.
type ImplType int

const (
	// AUTO picks the best implementation the running CPU supports.
	AUTO ImplType = iota
	// PORTABLE is the pure-Go Montgomery ladder; always available.
	PORTABLE
	// ARM64 is a hand-written assembly back-end for aarch64. No such
	// back-end ships in this module; SelectImpl(ARM64) always fails.
	ARM64
	// AMD64 is a hand-written assembly back-end for amd64. No such
	// back-end ships in this module; SelectImpl(AMD64) always fails.
	AMD64
	// AMD64X is the AMD64 back-end accelerated with MULX/ADX. No such
	// back-end ships in this module; SelectImpl(AMD64X) always fails.
	AMD64X

	numImplTypes = 4 // PORTABLE, ARM64, AMD64, AMD64X
)

// scmulFunc is the shape an external back-end provides: a function
// that clamps key itself and writes x([key]*base) to result.
type scmulFunc func(result, key, base *[32]byte)

// Impl is a resolved scalar-multiplication back-end.
type Impl struct {
	typ   ImplType
	scmul scmulFunc
}

// impls mirrors the reference implementation's static mx25519_impls
// table: one slot per non-AUTO ImplType, nil when unsupported on this
// build. Only PORTABLE is ever populated here; ARM64/AMD64/AMD64X are
// the documented extension points for assembly back-ends that this
// module does not ship.
var impls = [numImplTypes]*Impl{
	PORTABLE - 1: {typ: PORTABLE, scmul: portableScmul},
	ARM64 - 1:    nil,
	AMD64 - 1:    nil,
	AMD64X - 1:   nil,
}

func portableScmul(result, key, base *[32]byte) {
	var e [32]byte
	e = *key
	ladder.Clamp(&e)
	ladder.ScalarMult(result, &e, base)
}

func implSupported(t ImplType) bool {
	switch t {
	case PORTABLE:
		return true
	case ARM64:
		return runtime.GOARCH == "arm64" && impls[ARM64-1] != nil
	case AMD64:
		return runtime.GOARCH == "amd64" && impls[AMD64-1] != nil
	case AMD64X:
		return runtime.GOARCH == "amd64" && cpu.SupportsAMD64X() && impls[AMD64X-1] != nil
	default:
		return false
	}
}

func selectBestImpl() ImplType {
	switch runtime.GOARCH {
	case "amd64":
		if implSupported(AMD64X) {
			return AMD64X
		}
		if implSupported(AMD64) {
			return AMD64
		}
		return PORTABLE
	case "arm64":
		if implSupported(ARM64) {
			return ARM64
		}
		return PORTABLE
	default:
		return PORTABLE
	}
}

// SelectImpl resolves an ImplType into a usable Impl. Passing AUTO
// resolves to the best implementation the running CPU and build
// support; any other ImplType that is not supported yields
// ErrUnsupportedImplementation.
func SelectImpl(t ImplType) (*Impl, error) {
	if t == AUTO {
		t = selectBestImpl()
	} else if !implSupported(t) {
		return nil, ErrUnsupportedImplementation
	}
	impl := impls[t-1]
	if impl == nil {
		return nil, ErrUnsupportedImplementation
	}
	return impl, nil
}

// Type reports the ImplType this Impl was resolved to.
func (impl *Impl) Type() ImplType {
	return impl.typ
}
