// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package remotefs

import "strconv"

// OpID selects which filesystem operation a request frame carries.
type OpID uint32

const (
	OpOpen          OpID = 0
	OpClose         OpID = 1
	OpWrite         OpID = 2
	OpRead          OpID = 3
	OpLseek         OpID = 4
	OpStat          OpID = 5
	OpUnlink        OpID = 6
	OpGetdirentries OpID = 7
	OpGetdirtree    OpID = 8
)

// String names an op for diagnostics; unrecognized ids print numerically.
func (op OpID) String() string {
	switch op {
	case OpOpen:
		return "open"
	case OpClose:
		return "close"
	case OpWrite:
		return "write"
	case OpRead:
		return "read"
	case OpLseek:
		return "lseek"
	case OpStat:
		return "stat"
	case OpUnlink:
		return "unlink"
	case OpGetdirentries:
		return "getdirentries"
	case OpGetdirtree:
		return "getdirtree"
	default:
		return "op(" + strconv.FormatUint(uint64(op), 10) + ")"
	}
}
