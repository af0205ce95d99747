// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package remotefs_test

import (
	"encoding/binary"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/wrk15440/remotefs"
)

func TestConn_ReadRequest_CoalescesFragmentedHeader(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	conn, err := remotefs.NewConn(server)
	if err != nil {
		t.Fatalf("NewConn: %v", err)
	}

	go func() {
		header := make([]byte, 8)
		binary.LittleEndian.PutUint32(header[0:4], uint32(remotefs.OpWrite))
		binary.LittleEndian.PutUint32(header[4:8], 3)
		// Write the header and payload split across several short writes to
		// exercise the coalescing loop.
		for _, chunk := range [][]byte{header[:3], header[3:], []byte("a"), []byte("bc")} {
			_, _ = client.Write(chunk)
			time.Sleep(time.Millisecond)
		}
	}()

	op, payload, err := conn.ReadRequest()
	if err != nil {
		t.Fatalf("ReadRequest: %v", err)
	}
	if op != remotefs.OpWrite {
		t.Fatalf("op = %v, want OpWrite", op)
	}
	if string(payload) != "abc" {
		t.Fatalf("payload = %q, want abc", payload)
	}
}

func TestConn_ReadRequest_OversizedPayloadRejected(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	conn, err := remotefs.NewConn(server, remotefs.WithMaxPayload(4))
	if err != nil {
		t.Fatalf("NewConn: %v", err)
	}

	go func() {
		header := make([]byte, 8)
		binary.LittleEndian.PutUint32(header[0:4], uint32(remotefs.OpWrite))
		binary.LittleEndian.PutUint32(header[4:8], 5)
		_, _ = client.Write(header)
	}()

	_, _, err = conn.ReadRequest()
	if !errors.Is(err, remotefs.ErrOversizedPayload) {
		t.Fatalf("err = %v, want ErrOversizedPayload", err)
	}
}

func TestConn_ReadRequest_CleanEOFIsPeerClosed(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	_ = client.Close()

	conn, err := remotefs.NewConn(server)
	if err != nil {
		t.Fatalf("NewConn: %v", err)
	}
	_, _, err = conn.ReadRequest()
	if !errors.Is(err, remotefs.ErrPeerClosed) {
		t.Fatalf("err = %v, want ErrPeerClosed", err)
	}
}

func TestConn_WriteReply_WritesFullFrame(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	conn, err := remotefs.NewConn(server)
	if err != nil {
		t.Fatalf("NewConn: %v", err)
	}
	frame := remotefs.BuildReply32(0, 0)

	done := make(chan error, 1)
	go func() { done <- conn.WriteReply(frame) }()

	got := make([]byte, len(frame))
	if _, err := io.ReadFull(client, got); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("WriteReply: %v", err)
	}
	for i := range frame {
		if got[i] != frame[i] {
			t.Fatalf("frame mismatch at byte %d: got %#x want %#x", i, got[i], frame[i])
		}
	}
}
