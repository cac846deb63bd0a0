// Copyright (c) 2022 tevador. All rights reserved.
// Use of this source code is governed by the LGPLv3
// license that can be found in the LICENSE file.

package mx25519

import "errors"

// ErrUnsupportedImplementation is returned by SelectImpl when the
// requested ImplType is not available on this build or CPU.
var ErrUnsupportedImplementation = errors.New("mx25519: implementation not supported on this platform")

// ErrInverseOutOfRange is returned by InvertKeys when the computed
// inverse is >= 2^252 and cannot be safely shifted left by three bits.
// This happens with probability roughly 2^-124 and the returned
// PrivateKey is unspecified in that case.
var ErrInverseOutOfRange = errors.New("mx25519: key inverse out of range")
