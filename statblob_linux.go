// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package remotefs

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// StatBlobLen is sizeof(unix.Stat_t) on this platform, the length of the
// stat blob in every stat reply. The client and server must run on
// binary-compatible platforms (§4.2.6); the server does not check this, and
// nothing in the protocol lets it detect a mismatched pair.
const StatBlobLen = int(unsafe.Sizeof(unix.Stat_t{}))

// EncodeStatBlob copies sb's raw memory layout byte-for-byte, matching the
// original source's memcpy(retval, &s, sizeof(struct stat)) rather than a
// field-by-field re-serialization.
func EncodeStatBlob(sb *unix.Stat_t) []byte {
	b := (*[unsafe.Sizeof(unix.Stat_t{})]byte)(unsafe.Pointer(sb))
	out := make([]byte, StatBlobLen)
	copy(out, b[:])
	return out
}
