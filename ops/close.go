// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import (
	"golang.org/x/sys/unix"

	"github.com/wrk15440/remotefs"
)

// doClose implements op_id=1 (§4.2.2): fd:int32.
func doClose(payload []byte, fds FDTracker) ([]byte, error) {
	r := remotefs.NewPayloadReader(payload)
	fd, err := r.Int32()
	if err != nil {
		return nil, err
	}

	closeErr := unix.Close(int(fd))
	// POSIX close() consumes the descriptor slot regardless of the result;
	// stop tracking it either way so a repeated close on the same value
	// cannot be mistaken for still-owned state.
	fds.Remove(int(fd))

	result := int32(0)
	if closeErr != nil {
		result = -1
	}
	return remotefs.BuildReply32(result, errno(closeErr)), nil
}
