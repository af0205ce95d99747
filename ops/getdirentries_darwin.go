// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build darwin

package ops

import "golang.org/x/sys/unix"

// getdirentriesRaw reads raw directory entries on Darwin via the native
// getdirentries(2) syscall, which takes the same basep cookie the original
// source used. The session never forwards the updated basep back to the
// client (§9 design notes), so its value is passed through unused beyond
// satisfying the syscall's signature.
func getdirentriesRaw(fd int, buf []byte, basep int64) (int, error) {
	bp := uintptr(basep)
	return unix.Getdirentries(fd, buf, &bp)
}
