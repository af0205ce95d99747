// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bo provides native byte order selection.
//
// Implementation is architecture-specific via build tags where commonly known,
// and falls back to a portable runtime detection elsewhere.
//
// remotefs's wire format is fixed little-endian (see the root package doc),
// independent of the host's native order. bo.Native() is used only to warn
// operators at startup when the server's own architecture is big-endian,
// since on such a host the raw struct-stat blob handed back by op 5 carries
// the host's native field layout while every other wire integer is forced to
// little-endian — a client on a different architecture cannot assume the
// stat blob matches its own layout even when the rest of the protocol does.
package bo
