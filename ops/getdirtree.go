// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import (
	"github.com/wrk15440/remotefs"
	"github.com/wrk15440/remotefs/dirtree"
)

// doGetdirtree implements op_id=8 (§4.2.9): path_len:int32, path:bytes[path_len].
// On failure to stat or walk path, the reply carries no tree at all
// (BuildGetdirtreeErrorReply). On success, err_code is stale/don't-care data
// but is still present on the wire, positioned after tree_len rather than
// before it — the one deliberately preserved quirk in this op's reply
// layout (see remotefs.BuildGetdirtreeTreeReply).
func doGetdirtree(payload []byte) ([]byte, error) {
	r := remotefs.NewPayloadReader(payload)
	pathLen, err := r.Int32()
	if err != nil {
		return nil, err
	}
	pathBytes, err := r.Bytes(int(pathLen))
	if err != nil {
		return nil, err
	}
	path := string(pathBytes)

	root, buildErr := dirtree.Build(path)
	if buildErr != nil {
		return remotefs.BuildGetdirtreeErrorReply(errno(buildErr)), nil
	}
	tree := dirtree.Serialize(root)
	return remotefs.BuildGetdirtreeTreeReply(0, tree), nil
}
