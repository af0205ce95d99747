// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import (
	"golang.org/x/sys/unix"

	"github.com/wrk15440/remotefs"
)

// doOpen implements op_id=0 (§4.2.1): flags:int32, mode:uint32,
// path_len:uint64, path:bytes[path_len].
func doOpen(payload []byte, fds FDTracker) ([]byte, error) {
	r := remotefs.NewPayloadReader(payload)
	flags, err := r.Int32()
	if err != nil {
		return nil, err
	}
	mode, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	pathLen, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	pathBytes, err := r.Bytes(int(pathLen))
	if err != nil {
		return nil, err
	}
	path := string(pathBytes)

	fd, openErr := unix.Open(path, int(flags), uint32(mode))
	if openErr == nil {
		fds.Add(fd)
	} else {
		fd = -1
	}
	return remotefs.BuildReply32(int32(fd), errno(openErr)), nil
}
