// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/bear-export/pkg/types"
)

// AssetPath maps an image URI to its location in the site: the URI is
// rooted under dir and the first "/_posts" becomes "/assets/posts", so an
// export into site/_posts places images in site/assets/posts.
func AssetPath(dir, uri string) string {
	return strings.Replace(filepath.Join(dir, uri), "/_posts", "/assets/posts", 1)
}

// CopyImages copies each existing image to its AssetPath, creating
// directories and overwriting files as needed. Images missing on disk are
// skipped and reported in the returned warnings.
func CopyImages(dir string, images []types.Image) (int, []string, error) {
	var (
		copied   int
		warnings []string
	)
	for _, img := range images {
		if !img.Exists() {
			warnings = append(warnings, fmt.Sprintf("image %s not found at %s", img.URI, img.Path))
			continue
		}
		target := AssetPath(dir, img.URI)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return copied, warnings, fmt.Errorf("creating asset directory: %w", err)
		}
		if err := copyFile(img.Path, target); err != nil {
			return copied, warnings, err
		}
		copied++
	}
	return copied, warnings, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}
