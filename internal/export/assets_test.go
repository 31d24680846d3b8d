// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bear-export/pkg/types"
)

func TestAssetPath(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		uri  string
		want string
	}{
		{"posts dir maps to assets", "/site/_posts", "ABC/img.png", "/site/assets/posts/ABC/img.png"},
		{"uri carrying _posts", "/site", "_posts/img1.png", "/site/assets/posts/img1.png"},
		{"only first occurrence replaced", "/site/_posts", "_posts/a.png", "/site/assets/posts/_posts/a.png"},
		{"no _posts segment", "/out", "ABC/img.png", "/out/ABC/img.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), AssetPath(tt.dir, tt.uri))
		})
	}
}

func TestCopyImages(t *testing.T) {
	site := t.TempDir()
	posts := filepath.Join(site, "_posts")
	require.NoError(t, os.MkdirAll(posts, 0o755))

	srcDir := t.TempDir()
	present := filepath.Join(srcDir, "a.png")
	require.NoError(t, os.WriteFile(present, []byte("new"), 0o644))

	// Pre-existing target is overwritten.
	target := filepath.Join(site, "assets", "posts", "UID1", "a.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))

	images := []types.Image{
		{URI: "UID1/a.png", Path: present},
		{URI: "UID2/b.png", Path: filepath.Join(srcDir, "b.png")},
		{URI: "UID3/dir.png", Path: srcDir},
	}

	copied, warnings, err := CopyImages(posts, images)
	require.NoError(t, err)
	assert.Equal(t, 1, copied)
	assert.Len(t, warnings, 2)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.NoDirExists(t, filepath.Join(site, "assets", "posts", "UID2"))

	src, err := os.ReadFile(present)
	require.NoError(t, err)
	assert.Equal(t, "new", string(src), "source must not change")
}
