// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build darwin

package remotefs

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// StatBlobLen is sizeof(unix.Stat_t) on this platform. See statblob_linux.go.
const StatBlobLen = int(unsafe.Sizeof(unix.Stat_t{}))

// EncodeStatBlob copies sb's raw memory layout byte-for-byte.
func EncodeStatBlob(sb *unix.Stat_t) []byte {
	b := (*[unsafe.Sizeof(unix.Stat_t{})]byte)(unsafe.Pointer(sb))
	out := make([]byte, StatBlobLen)
	copy(out, b[:])
	return out
}
