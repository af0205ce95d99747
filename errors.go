// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package remotefs

import "errors"

var (
	// ErrInvalidArgument reports a nil connection or an invalid option value.
	ErrInvalidArgument = errors.New("remotefs: invalid argument")

	// ErrOversizedPayload reports that a declared payload_len exceeds the
	// configured ceiling. The session must be terminated without a reply.
	ErrOversizedPayload = errors.New("remotefs: oversized payload")

	// ErrPeerClosed reports that the peer closed the connection cleanly at a
	// request boundary (zero bytes read while waiting for a new header).
	ErrPeerClosed = errors.New("remotefs: peer closed connection")

	// ErrUnknownOp reports a request whose op_id has no registered handler.
	ErrUnknownOp = errors.New("remotefs: unknown op_id")

	// ErrIdleTimeout reports that no new request arrived before the configured
	// idle deadline elapsed. Treated the same as ErrPeerClosed by callers.
	ErrIdleTimeout = errors.New("remotefs: idle timeout")
)
