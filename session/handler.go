// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package session is the session handler and listener (§4.3/§4.4 of the
// design notes): it drives one TCP connection through the request/reply
// wire protocol, dispatching each decoded request to the ops package and
// bounding/observing the population of concurrently active connections.
package session

import (
	"errors"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/wrk15440/remotefs"
	"github.com/wrk15440/remotefs/metrics"
	"github.com/wrk15440/remotefs/ops"
)

// sessionState names the handler's position in the per-request cycle
// described in §4.3, kept as an explicit type rather than implicit control
// flow so the transitions are auditable in one place.
type sessionState uint8

const (
	stateReadingHeader sessionState = iota
	stateReadingPayload
	stateDispatching
	stateTerminated
	stateError
)

// Handler drives a single accepted connection through its full lifetime:
// read a request, dispatch it, write the reply, repeat until the client
// disconnects, the wire contract is violated, or the server is shutting
// down.
type Handler struct {
	conn *remotefs.Conn
	fds  *fdSet
	log  *logrus.Entry
	reg  *metrics.Registry

	remote string
	state  sessionState
}

// NewHandler wraps nc for one session. opts are forwarded to
// remotefs.NewConn (idle timeout, max payload, retry policy).
func NewHandler(nc net.Conn, log *logrus.Logger, reg *metrics.Registry, opts ...remotefs.Option) (*Handler, error) {
	conn, err := remotefs.NewConn(nc, opts...)
	if err != nil {
		return nil, err
	}
	remote := ""
	if nc.RemoteAddr() != nil {
		remote = nc.RemoteAddr().String()
	}
	return &Handler{
		conn:   conn,
		fds:    newFDSet(),
		log:    log.WithField("remote", remote),
		reg:    reg,
		remote: remote,
		state:  stateReadingHeader,
	}, nil
}

// Serve runs the request/reply loop to completion. It always returns nil for
// an orderly end of session (clean EOF, unknown op_id, oversized payload);
// a non-nil error indicates a transport failure worth logging by the caller.
// Every return path releases the session's still-open file descriptors.
func (h *Handler) Serve() error {
	defer h.fds.closeAll()

	for {
		op, payload, err := h.conn.ReadRequest()
		if err != nil {
			h.state = stateTerminated
			if errors.Is(err, remotefs.ErrPeerClosed) || errors.Is(err, remotefs.ErrIdleTimeout) {
				return nil
			}
			if errors.Is(err, remotefs.ErrOversizedPayload) {
				h.log.WithField("op_id", uint32(op)).Warn("remotefs: oversized payload, closing session")
				return nil
			}
			h.state = stateError
			return err
		}
		h.state = stateReadingPayload

		h.state = stateDispatching
		reply, dispErr := ops.Dispatch(op, payload, h.fds, h.conn.MaxPayload())
		if dispErr != nil {
			h.log.WithError(dispErr).WithField("op_id", op.String()).Warn("remotefs: unknown op_id or malformed payload, closing session")
			h.state = stateTerminated
			return nil
		}
		h.observe(op, reply)

		if err := h.conn.WriteReply(reply); err != nil {
			h.state = stateError
			return err
		}
		h.state = stateReadingHeader
	}
}

// observe updates the request/error/byte counters for one completed op. It
// is a best-effort bookkeeping step: reg is nil when the caller supplied no
// registry.
func (h *Handler) observe(op remotefs.OpID, reply []byte) {
	if h.reg == nil {
		return
	}
	name := op.String()
	h.reg.RequestsTotal.WithLabelValues(name).Inc()
	if replyIndicatesError(op, reply) {
		h.reg.RequestErrorsTotal.WithLabelValues(name).Inc()
	}
	switch op {
	case remotefs.OpRead, remotefs.OpGetdirentries:
		if n := replyResult64(reply); n > 0 {
			h.reg.BytesReadTotal.Add(float64(n))
		}
	case remotefs.OpWrite:
		if n := replyResult64(reply); n > 0 {
			h.reg.BytesWrittenTotal.Add(float64(n))
		}
	}
}
