// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleStripped lists the characters dropped from a title before it is
// turned into a filename.
const titleStripped = "`~!@#$%^&*():;\"<>,./?"

// PostPath returns the post path, without extension, for a note created
// at created: dir/YYYY-MM-DD-<slug>. "These Cats" becomes
// "2020-01-02-these_cats". No existence check is made; a second note with
// the same slug and date overwrites the first.
func PostPath(dir, title string, created time.Time) string {
	return filepath.Join(dir, created.Format(time.DateOnly)+"-"+slugify(title))
}

func slugify(title string) string {
	stripped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(titleStripped, r) {
			return -1
		}
		return r
	}, title)

	lowered := cases.Lower(language.Und).String(stripped)

	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, lowered)
}
