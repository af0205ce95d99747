// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import (
	"golang.org/x/sys/unix"

	"github.com/wrk15440/remotefs"
)

// doWrite implements op_id=2 (§4.2.3): fd:int32, nbyte:uint64, data:bytes[nbyte].
func doWrite(payload []byte) ([]byte, error) {
	r := remotefs.NewPayloadReader(payload)
	fd, err := r.Int32()
	if err != nil {
		return nil, err
	}
	nbyte, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	data, err := r.Bytes(int(nbyte))
	if err != nil {
		return nil, err
	}

	n, writeErr := unix.Write(int(fd), data)
	result := int64(n)
	if writeErr != nil {
		result = -1
	}
	return remotefs.BuildReply64(result, errno(writeErr)), nil
}
