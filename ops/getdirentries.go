// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/wrk15440/remotefs"

// doGetdirentries implements op_id=7 (§4.2.8): fd:int32, nbyte:uint64,
// basep:int64. getdirentriesRaw is platform-specific (see
// getdirentries_linux.go / getdirentries_darwin.go).
//
// Known limitation preserved from the original source: the updated basep is
// not returned to the client, so a readdir loop driven by basep round-
// tripping across requests will not work correctly against this server.
// This is flagged here deliberately, not fixed — fixing it would require a
// wire-format change this spec does not make.
func doGetdirentries(payload []byte, maxPayload int) ([]byte, error) {
	r := remotefs.NewPayloadReader(payload)
	fd, err := r.Int32()
	if err != nil {
		return nil, err
	}
	nbyte, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	basep, err := r.Int64()
	if err != nil {
		return nil, err
	}
	if maxPayload <= 0 {
		maxPayload = remotefs.DefaultMaxPayload
	}
	if nbyte > uint64(maxPayload) {
		nbyte = uint64(maxPayload)
	}

	scratch := make([]byte, nbyte)
	n, getErr := getdirentriesRaw(int(fd), scratch, basep)
	if getErr != nil {
		return remotefs.BuildReply64Extra(-1, errno(getErr), nil), nil
	}
	return remotefs.BuildReply64Extra(int64(n), 0, scratch[:n]), nil
}
