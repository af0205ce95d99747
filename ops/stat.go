// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import (
	"golang.org/x/sys/unix"

	"github.com/wrk15440/remotefs"
)

// doStat implements op_id=5 (§4.2.6): path_len:int32, path:bytes[path_len].
// The stat blob is the raw platform struct copied byte-for-byte (see
// remotefs.EncodeStatBlob); it is always present on the wire, even on
// failure, matching the original source.
func doStat(payload []byte) ([]byte, error) {
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

	var sb unix.Stat_t
	statErr := unix.Stat(path, &sb)
	result := int32(0)
	if statErr != nil {
		result = -1
	}
	return remotefs.BuildStatReply(result, errno(statErr), remotefs.EncodeStatBlob(&sb)), nil
}
