// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ops is the op executor (§4.2 of the design notes): for each of the
// nine operations it decodes typed arguments from a request payload,
// invokes the corresponding golang.org/x/sys/unix call against the server's
// local filesystem, and marshals the result — including the post-call errno
// — into a reply frame built with the root remotefs package's codec.
package ops

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/wrk15440/remotefs"
)

// FDTracker records which file descriptors a session has opened, so the
// session handler can release them all when the connection ends (§3's
// session-state lifecycle). ops never maps or validates descriptor values —
// per the spec, a descriptor returned to a client is only ever reused by
// that same client's own session, an assumption about well-behaved clients
// rather than something enforced here.
type FDTracker interface {
	Add(fd int)
	Remove(fd int)
}

// errno extracts the platform error number from err, or 0 if err is nil.
// golang.org/x/sys/unix returns unix.Errno directly from failed calls, so
// there is no global, racy errno variable to read — unlike the C source.
// errors.As unwraps errors such as *os.PathError and fmt.Errorf("%w", ...)
// wrapping that dirtree.Build returns, rather than requiring the unix.Errno
// to be the error's own dynamic type.
func errno(err error) int32 {
	if err == nil {
		return 0
	}
	var e unix.Errno
	errors.As(err, &e)
	return int32(e)
}

// Dispatch decodes and executes one request payload for op, returning the
// fully built reply frame. maxPayload bounds any length field read from
// inside the payload (read/getdirentries nbyte) that is not itself bounded
// by the request frame's own payload_len — the caller's configured ceiling
// (config.Config.MaxPayload, as resolved by remotefs.Conn.MaxPayload), not
// a fixed package constant, so a server
// started with a larger REMOTEFS_MAX_PAYLOAD actually honors it. An error
// return means the request was malformed in a way the wire contract treats
// as a protocol error (§4.3): the caller must terminate the session without
// sending a reply.
func Dispatch(op remotefs.OpID, payload []byte, fds FDTracker, maxPayload int) ([]byte, error) {
	switch op {
	case remotefs.OpOpen:
		return doOpen(payload, fds)
	case remotefs.OpClose:
		return doClose(payload, fds)
	case remotefs.OpWrite:
		return doWrite(payload)
	case remotefs.OpRead:
		return doRead(payload, maxPayload)
	case remotefs.OpLseek:
		return doLseek(payload)
	case remotefs.OpStat:
		return doStat(payload)
	case remotefs.OpUnlink:
		return doUnlink(payload)
	case remotefs.OpGetdirentries:
		return doGetdirentries(payload, maxPayload)
	case remotefs.OpGetdirtree:
		return doGetdirtree(payload)
	default:
		return nil, fmt.Errorf("%w: %s", remotefs.ErrUnknownOp, op)
	}
}
