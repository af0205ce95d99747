// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"sync"

	"golang.org/x/sys/unix"
)

// fdSet tracks the raw file descriptors a single session has opened, so
// Handler can close whatever the client never explicitly closed when the
// connection ends (§5, "FD isolation" / §9's accepted limitation: the
// descriptor values themselves are never remapped, only their lifetime is
// bounded to the owning session).
type fdSet struct {
	mu  sync.Mutex
	fds map[int]struct{}
}

func newFDSet() *fdSet {
	return &fdSet{fds: make(map[int]struct{})}
}

// Add records fd as belonging to this session. Satisfies ops.FDTracker.
func (s *fdSet) Add(fd int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fds[fd] = struct{}{}
}

// Remove stops tracking fd, without closing it — doClose already closed it
// itself. Satisfies ops.FDTracker.
func (s *fdSet) Remove(fd int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fds, fd)
}

// closeAll closes every fd still tracked, for a session ending without the
// client having closed each descriptor itself.
func (s *fdSet) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for fd := range s.fds {
		_ = unix.Close(fd)
	}
	s.fds = make(map[int]struct{})
}
