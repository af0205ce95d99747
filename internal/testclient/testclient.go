// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package testclient is a minimal client for the wire protocol, used only in
// tests: to exercise session.Handler end-to-end and to build request
// payloads for package ops. It is not a production
// interposition shim — it has none of a real client's path-redirection or
// fd-caching logic, just enough to send one request and read one reply.
package testclient

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"

	"github.com/wrk15440/remotefs"
)

// Client drives one connection's request/reply cycle for tests.
type Client struct {
	nc net.Conn
}

// New wraps nc for sending requests built by the Build* helpers below.
func New(nc net.Conn) *Client { return &Client{nc: nc} }

// Call writes one request frame (op_id, payload) and reads back the reply
// body (everything after reply_len).
func (c *Client) Call(op remotefs.OpID, payload []byte) ([]byte, error) {
	var header [8]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(op))
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(payload)))
	if _, err := c.nc.Write(header[:]); err != nil {
		return nil, fmt.Errorf("testclient: write header: %w", err)
	}
	if len(payload) > 0 {
		if _, err := c.nc.Write(payload); err != nil {
			return nil, fmt.Errorf("testclient: write payload: %w", err)
		}
	}

	var lenBuf [4]byte
	if _, err := io.ReadFull(c.nc, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("testclient: read reply_len: %w", err)
	}
	replyLen := binary.LittleEndian.Uint32(lenBuf[:])
	body := make([]byte, replyLen)
	if replyLen > 0 {
		if _, err := io.ReadFull(c.nc, body); err != nil {
			return nil, fmt.Errorf("testclient: read reply body: %w", err)
		}
	}
	return body, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error { return c.nc.Close() }

// --- request payload builders -------------------------------------------

func appendUint32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendInt32(b []byte, v int32) []byte { return appendUint32(b, uint32(v)) }

func appendUint64(b []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendInt64(b []byte, v int64) []byte { return appendUint64(b, uint64(v)) }

// BuildOpenPayload encodes flags:int32, mode:uint32, path_len:uint64, path.
func BuildOpenPayload(flags int32, mode uint32, path string) []byte {
	b := appendInt32(nil, flags)
	b = appendUint32(b, mode)
	b = appendUint64(b, uint64(len(path)))
	return append(b, path...)
}

// BuildClosePayload encodes fd:int32.
func BuildClosePayload(fd int32) []byte { return appendInt32(nil, fd) }

// BuildWritePayload encodes fd:int32, nbyte:uint64, data.
func BuildWritePayload(fd int32, data []byte) []byte {
	b := appendInt32(nil, fd)
	b = appendUint64(b, uint64(len(data)))
	return append(b, data...)
}

// BuildReadPayload encodes fd:int32, nbyte:uint64.
func BuildReadPayload(fd int32, nbyte uint64) []byte {
	b := appendInt32(nil, fd)
	return appendUint64(b, nbyte)
}

// BuildLseekPayload encodes fd:int32, offset:int64, whence:int32.
func BuildLseekPayload(fd int32, offset int64, whence int32) []byte {
	b := appendInt32(nil, fd)
	b = appendInt64(b, offset)
	return appendInt32(b, whence)
}

// BuildStatPayload encodes path_len:int32, path.
func BuildStatPayload(path string) []byte {
	b := appendInt32(nil, int32(len(path)))
	return append(b, path...)
}

// BuildUnlinkPayload encodes path_len:int32, path.
func BuildUnlinkPayload(path string) []byte { return BuildStatPayload(path) }

// BuildGetdirentriesPayload encodes fd:int32, nbyte:uint64, basep:int64.
func BuildGetdirentriesPayload(fd int32, nbyte uint64, basep int64) []byte {
	b := appendInt32(nil, fd)
	b = appendUint64(b, nbyte)
	return appendInt64(b, basep)
}

// BuildGetdirtreePayload encodes path_len:int32, path.
func BuildGetdirtreePayload(path string) []byte { return BuildStatPayload(path) }
