// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package remotefs

import "time"

// DefaultMaxPayload is the ceiling on payload_len absent an explicit
// WithMaxPayload option. Path and write lengths sit inside the payload and
// so cannot exceed it; package ops clamps the read and getdirentries nbyte
// arguments to the same ceiling. See the design notes: the original source
// trusted every length field read off the wire.
const DefaultMaxPayload = 64 << 20 // 64 MiB

// Options configures a Conn. The wire format itself is fixed (little-endian,
// stream-framed, see doc.go) — unlike the teacher package this one does not
// need a Protocol/ByteOrder axis, since the spec mandates a single transport.
type Options struct {
	// MaxPayload caps payload_len (see DefaultMaxPayload for how nested
	// length fields are bounded). Zero means DefaultMaxPayload.
	MaxPayload int

	// IdleTimeout, if positive, bounds how long ReadRequest will wait for a
	// new request header before giving up. It never truncates a frame that
	// has already started arriving (the deadline is only armed at a header
	// boundary and cleared the instant any byte of a new frame is read).
	IdleTimeout time.Duration

	// RetryDelay controls how ReadRequest reacts when the idle deadline
	// surfaces as iox.ErrWouldBlock from the transport shim:
	//   - negative: nonblock, surface ErrIdleTimeout immediately
	//   - zero: yield (runtime.Gosched) and rearm the deadline once
	//   - positive: sleep for the duration and rearm the deadline once
	// Rearming happens at most once per ReadRequest call; RetryDelay governs
	// the single retry, it is not a retry-forever loop.
	RetryDelay time.Duration
}

var defaultOptions = Options{
	MaxPayload:  DefaultMaxPayload,
	IdleTimeout: 0,
	RetryDelay:  -1,
}

// Option mutates Options during Conn construction.
type Option func(*Options)

// WithMaxPayload overrides DefaultMaxPayload.
func WithMaxPayload(n int) Option {
	return func(o *Options) { o.MaxPayload = n }
}

// WithIdleTimeout enables the idle-timeout behavior described on Options.
func WithIdleTimeout(d time.Duration) Option {
	return func(o *Options) { o.IdleTimeout = d }
}

// WithRetryDelay sets the single-retry policy applied when the idle deadline
// fires as iox.ErrWouldBlock. See Options.RetryDelay.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) { o.RetryDelay = d }
}
