// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/bear-export/pkg/types"
)

// FrontMatter holds the fixed front matter fields shared by every post.
type FrontMatter struct {
	Layout   string
	Category string
}

// FormatPost returns the post document: front matter followed by body.
func FormatPost(note types.Note, body string, fm FrontMatter) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", note.Title)
	fmt.Fprintf(&b, "date: %s +0000\n", note.Created.UTC().Format(time.DateTime))
	fmt.Fprintf(&b, "tags: [ %s ]\n", strings.Join(note.TagTitles(), ", "))
	fmt.Fprintf(&b, "uuid: %s\n", note.ID)
	fmt.Fprintf(&b, "layout: %s\n", fm.Layout)
	fmt.Fprintf(&b, "category: %s\n", fm.Category)
	b.WriteString("---\n")
	b.WriteString(body)
	return b.String()
}

// WritePost writes the post for note to path, replacing any existing file.
func WritePost(path string, note types.Note, body string, fm FrontMatter) error {
	if err := os.WriteFile(path, []byte(FormatPost(note, body, fm)), 0o644); err != nil {
		return fmt.Errorf("writing post %s: %w", path, err)
	}
	return nil
}
