// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import (
	"golang.org/x/sys/unix"

	"github.com/wrk15440/remotefs"
)

// doUnlink implements op_id=6 (§4.2.7): path_len:int32, path:bytes[path_len].
func doUnlink(payload []byte) ([]byte, error) {
	r := remotefs.NewPayloadReader(payload)
	pathLen, err := r.Int32()
	if err != nil {
		return nil, err
	}
	pathBytes, err := r.Bytes(int(pathLen))
	if err != nil {
		return nil, err
	}
	path := string(pathBytes)

	unlinkErr := unix.Unlink(path)
	result := int32(0)
	if unlinkErr != nil {
		result = -1
	}
	return remotefs.BuildReply32(result, errno(unlinkErr)), nil
}
