// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package remotefs implements the length-prefixed binary wire protocol used
// to forward POSIX-like filesystem system calls from a client shim to a
// server that executes them against its own local filesystem.
//
// Wire format: every request frame is
//
//	op_id      uint32  little-endian, selects one of nine operations
//	payload_len uint32 little-endian, byte length of payload
//	payload    [payload_len]byte
//
// and every reply frame begins with a little-endian uint32 reply_len giving
// the byte count of everything that follows, followed by an operation-
// specific result width, an int32 err_code, and operation-specific extra
// bytes. See the OpXxx constants and the Build*Reply helpers for the exact
// per-operation layouts.
//
// This package owns only the framing and codec: reading exactly N bytes off
// a net.Conn, decoding/encoding the fixed-width fields, and the small set of
// sentinel errors that distinguish a transport failure from a clean session
// end. The op executor (package ops) and the session state machine (package
// session) are built on top of it.
package remotefs
