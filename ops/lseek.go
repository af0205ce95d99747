// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import (
	"golang.org/x/sys/unix"

	"github.com/wrk15440/remotefs"
)

// doLseek implements op_id=4 (§4.2.5): fd:int32, offset:int64, whence:int32.
func doLseek(payload []byte) ([]byte, error) {
	r := remotefs.NewPayloadReader(payload)
	fd, err := r.Int32()
	if err != nil {
		return nil, err
	}
	offset, err := r.Int64()
	if err != nil {
		return nil, err
	}
	whence, err := r.Int32()
	if err != nil {
		return nil, err
	}

	pos, seekErr := unix.Seek(int(fd), offset, int(whence))
	result := pos
	if seekErr != nil {
		result = -1
	}
	return remotefs.BuildReply64(result, errno(seekErr)), nil
}
