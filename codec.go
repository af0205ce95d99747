// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package remotefs

import (
	"encoding/binary"
	"io"
)

// PayloadReader decodes the fixed-width, little-endian fields that make up
// an operation's request payload, enforcing the declared bounds of the
// underlying slice so a short or truncated payload is reported as
// io.ErrUnexpectedEOF rather than a panic.
type PayloadReader struct {
	b   []byte
	off int
}

// NewPayloadReader wraps a request payload for sequential decoding.
func NewPayloadReader(b []byte) *PayloadReader { return &PayloadReader{b: b} }

func (r *PayloadReader) take(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.b) {
		return nil, io.ErrUnexpectedEOF
	}
	out := r.b[r.off : r.off+n]
	r.off += n
	return out, nil
}

// Int32 reads a little-endian int32.
func (r *PayloadReader) Int32() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// Uint32 reads a little-endian uint32.
func (r *PayloadReader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Int64 reads a little-endian int64.
func (r *PayloadReader) Int64() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// Uint64 reads a little-endian uint64.
func (r *PayloadReader) Uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Bytes reads n raw bytes. The returned slice aliases the payload and must
// not be retained past the lifetime of the request buffer without copying.
func (r *PayloadReader) Bytes(n int) ([]byte, error) {
	return r.take(n)
}

// Remaining reports how many bytes are left unread.
func (r *PayloadReader) Remaining() int { return len(r.b) - r.off }

// --- reply construction -----------------------------------------------

// replyFrame prepends the 4-byte little-endian reply_len prefix (the byte
// count of everything that follows) to body.
func replyFrame(body []byte) []byte {
	frame := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint32(frame[0:4], uint32(len(body)))
	copy(frame[4:], body)
	return frame
}

// BuildReply32 builds the common [reply_len, result:int32, err_code:int32]
// layout shared by open, close, stat, unlink and the op8 error sentinel.
func BuildReply32(result int32, errCode int32) []byte {
	body := make([]byte, 8)
	binary.LittleEndian.PutUint32(body[0:4], uint32(result))
	binary.LittleEndian.PutUint32(body[4:8], uint32(errCode))
	return replyFrame(body)
}

// BuildReply64 builds the [reply_len, result:int64, err_code:int32] layout
// shared by write and lseek.
func BuildReply64(result int64, errCode int32) []byte {
	body := make([]byte, 12)
	binary.LittleEndian.PutUint64(body[0:8], uint64(result))
	binary.LittleEndian.PutUint32(body[8:12], uint32(errCode))
	return replyFrame(body)
}

// BuildReply64Extra builds the [reply_len, result:int64, err_code:int32,
// extra] layout shared by read and getdirentries.
func BuildReply64Extra(result int64, errCode int32, extra []byte) []byte {
	body := make([]byte, 12+len(extra))
	binary.LittleEndian.PutUint64(body[0:8], uint64(result))
	binary.LittleEndian.PutUint32(body[8:12], uint32(errCode))
	copy(body[12:], extra)
	return replyFrame(body)
}

// BuildStatReply builds the [reply_len, result:int32, err_code:int32,
// stat_blob] layout used by stat. statBlob is always present on the wire
// (even on failure), matching the original source.
func BuildStatReply(result int32, errCode int32, statBlob []byte) []byte {
	body := make([]byte, 8+len(statBlob))
	binary.LittleEndian.PutUint32(body[0:4], uint32(result))
	binary.LittleEndian.PutUint32(body[4:8], uint32(errCode))
	copy(body[8:], statBlob)
	return replyFrame(body)
}

// BuildGetdirtreeErrorReply builds the op8 NULL-tree reply:
// [reply_len, result_code=1, err_code].
func BuildGetdirtreeErrorReply(errCode int32) []byte {
	body := make([]byte, 8)
	binary.LittleEndian.PutUint32(body[0:4], 1)
	binary.LittleEndian.PutUint32(body[4:8], uint32(errCode))
	return replyFrame(body)
}

// BuildGetdirtreeTreeReply builds the op8 success reply. Per the wire
// contract's preserved positional quirk (§9 of the design notes), err_code
// sits after tree_len rather than before it:
// [reply_len, result_code=0, tree_len:int64, err_code, serialized_tree, 0x00].
func BuildGetdirtreeTreeReply(errCode int32, tree []byte) []byte {
	body := make([]byte, 4+8+4+len(tree)+1)
	binary.LittleEndian.PutUint32(body[0:4], 0)
	binary.LittleEndian.PutUint64(body[4:12], uint64(len(tree)))
	binary.LittleEndian.PutUint32(body[12:16], uint32(errCode))
	copy(body[16:], tree)
	body[len(body)-1] = 0x00
	return replyFrame(body)
}
