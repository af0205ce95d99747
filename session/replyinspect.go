// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"encoding/binary"

	"github.com/wrk15440/remotefs"
)

// replyIndicatesError reports whether a completed op's reply should count
// against remotefs_request_errors_total. The layout of the result field
// differs by op width (§6's wire-format summary), so op selects how to
// interpret the bytes just after reply_len; op8 (getdirtree) uses a
// result_code of 1 rather than a negative result to signal failure.
func replyIndicatesError(op remotefs.OpID, reply []byte) bool {
	switch op {
	case remotefs.OpWrite, remotefs.OpRead, remotefs.OpLseek, remotefs.OpGetdirentries:
		if len(reply) < 12 {
			return false
		}
		return int64(binary.LittleEndian.Uint64(reply[4:12])) < 0
	case remotefs.OpGetdirtree:
		if len(reply) < 8 {
			return false
		}
		return binary.LittleEndian.Uint32(reply[4:8]) == 1
	default: // open, close, stat, unlink: int32 result
		if len(reply) < 8 {
			return false
		}
		return int32(binary.LittleEndian.Uint32(reply[4:8])) < 0
	}
}

// replyResult64 reads the 8-byte int64 result field used by the write, read,
// lseek and getdirentries layouts. Called only for those ops (see Handler's
// observe), so the 12-byte minimum frame length always holds.
func replyResult64(reply []byte) int64 {
	if len(reply) < 12 {
		return 0
	}
	return int64(binary.LittleEndian.Uint64(reply[4:12]))
}
