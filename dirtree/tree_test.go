// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dirtree_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wrk15440/remotefs/dirtree"
)

// buildSampleTree creates:
//
//	<root>/a/b        (file)
//	<root>/a/c/d      (file)
func buildSampleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	a := filepath.Join(root, "a")
	c := filepath.Join(a, "c")
	if err := os.MkdirAll(c, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(a, "b"), []byte("b"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(c, "d"), []byte("d"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return a
}

func TestBuild_IncludesFilesAndDirectories(t *testing.T) {
	a := buildSampleTree(t)

	root, err := dirtree.Build(a)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if root.Name != "a" {
		t.Fatalf("root.Name = %q, want a", root.Name)
	}
	if len(root.Children) != 2 {
		t.Fatalf("len(root.Children) = %d, want 2 (file b, dir c)", len(root.Children))
	}

	var b, c *dirtree.Node
	for _, ch := range root.Children {
		switch ch.Name {
		case "b":
			b = ch
		case "c":
			c = ch
		}
	}
	if b == nil {
		t.Fatal("missing leaf child b")
	}
	if len(b.Children) != 0 {
		t.Fatalf("b.Children = %v, want none (it is a file)", b.Children)
	}
	if c == nil {
		t.Fatal("missing dir child c")
	}
	if len(c.Children) != 1 || c.Children[0].Name != "d" {
		t.Fatalf("c.Children = %v, want [d]", c.Children)
	}
}

func TestSerializeDeserialize_RoundTrips(t *testing.T) {
	a := buildSampleTree(t)
	root, err := dirtree.Build(a)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	wire := dirtree.Serialize(root)
	got, err := dirtree.Deserialize(wire)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !root.Equal(got) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, root)
	}
}

func TestDeserialize_RejectsTruncatedInput(t *testing.T) {
	root := &dirtree.Node{Name: "x", Children: []*dirtree.Node{{Name: "y"}}}
	wire := dirtree.Serialize(root)

	if _, err := dirtree.Deserialize(wire[:len(wire)-2]); err == nil {
		t.Fatal("Deserialize on truncated input: want error, got nil")
	}
}

func TestBuild_DeepTreeDoesNotOverflowStack(t *testing.T) {
	root := t.TempDir()
	cur := root
	const depth = 2000
	for i := 0; i < depth; i++ {
		cur = filepath.Join(cur, "d")
		if err := os.Mkdir(cur, 0o755); err != nil {
			t.Fatalf("Mkdir at depth %d: %v", i, err)
		}
	}

	node, err := dirtree.Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	wire := dirtree.Serialize(node)
	if _, err := dirtree.Deserialize(wire); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
}
