// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import (
	"golang.org/x/sys/unix"

	"github.com/wrk15440/remotefs"
)

// doRead implements op_id=3 (§4.2.4): fd:int32, nbyte:uint64. On success the
// reply carries exactly result bytes of data; result, not the frame length,
// is the discriminator the client must use, since a failed read carries no
// data at all.
func doRead(payload []byte, maxPayload int) ([]byte, error) {
	r := remotefs.NewPayloadReader(payload)
	fd, err := r.Int32()
	if err != nil {
		return nil, err
	}
	nbyte, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	// nbyte is a caller-chosen read size, not bounded by the request frame's
	// own payload_len (which only carries fd and nbyte themselves). Clamp it
	// to the session's configured ceiling so a client cannot force a
	// multi-gigabyte allocation through this argument alone.
	if maxPayload <= 0 {
		maxPayload = remotefs.DefaultMaxPayload
	}
	if nbyte > uint64(maxPayload) {
		nbyte = uint64(maxPayload)
	}

	scratch := make([]byte, nbyte)
	n, readErr := unix.Read(int(fd), scratch)
	if readErr != nil {
		return remotefs.BuildReply64Extra(-1, errno(readErr), nil), nil
	}
	return remotefs.BuildReply64Extra(int64(n), 0, scratch[:n]), nil
}
