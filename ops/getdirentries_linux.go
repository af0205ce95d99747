// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package ops

import "golang.org/x/sys/unix"

// getdirentriesRaw reads raw directory entries on Linux via getdents64. The
// kernel tracks the read cursor on the open file description itself, so
// basep is accepted for wire compatibility but never consulted — Linux has
// no getdirentries(2) equivalent that takes an explicit cookie.
func getdirentriesRaw(fd int, buf []byte, basep int64) (int, error) {
	_ = basep
	return unix.Getdents(fd, buf)
}
