// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/bear-export/pkg/types"
)

const (
	imageMarker = "[image:"
	imageOpen   = "![](assets/posts/"
	publicTag   = "#public"
)

// linkStripped lists the characters removed from a cross-reference title
// when building its link target.
const linkStripped = "()~!@#$&:;?,."

// hrefUnsafe is also removed from static targets so they stay inside the
// quoted href attribute.
const hrefUnsafe = `"<>`

// liquidDelimiters end or open a Liquid tag inside the generated
// {{ "..." }} expression.
var liquidDelimiters = []string{"{{", "}}", "{%", "%}"}

// crossRefPattern matches [[Note Title]] within a single line.
var crossRefPattern = regexp.MustCompile(`\[\[([^\[\]\n]+)\]\]`)

// TransformOptions controls body rewriting.
type TransformOptions struct {
	LinkStyle       types.LinkStyle
	ImageExtensions []string
}

// TransformBody rewrites a raw note body into the Markdown written after
// the front matter. The steps run in a fixed order:
//
//  1. the first line (the title) is dropped;
//  2. image markers "[image:" open a Markdown image under assets/posts/;
//  3. "<ext>]" closes the image for each configured extension;
//  4. lines starting with "#public" are removed;
//  5. [[Note Title]] becomes an anchor with a lowercased target.
//
// Malformed markers are passed through and reported in the returned
// warnings.
func TransformBody(text string, opts TransformOptions) (string, []string) {
	exts := opts.ImageExtensions
	if len(exts) == 0 {
		exts = []string{".png"}
	}

	body := dropFirstLine(text)
	body = strings.ReplaceAll(body, imageMarker, imageOpen)
	for _, ext := range exts {
		body = strings.ReplaceAll(body, ext+"]", ext+")")
	}
	body = removePublicLines(body)

	warnings := unclosedImages(body, exts)

	body, linkWarnings := rewriteCrossRefs(body, opts.LinkStyle)
	warnings = append(warnings, linkWarnings...)

	return body, warnings
}

func dropFirstLine(text string) string {
	i := strings.IndexByte(text, '\n')
	if i < 0 {
		return ""
	}
	return text[i+1:]
}

// removePublicLines drops every line starting with #public together with
// its line terminator.
func removePublicLines(body string) string {
	lines := strings.SplitAfter(body, "\n")
	var b strings.Builder
	b.Grow(len(body))
	for _, line := range lines {
		if strings.HasPrefix(line, publicTag) {
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}

// unclosedImages reports image references whose line has no closing ")".
func unclosedImages(body string, exts []string) []string {
	var warnings []string
	for _, line := range strings.Split(body, "\n") {
		rest := line
		for {
			i := strings.Index(rest, imageOpen)
			if i < 0 {
				break
			}
			rest = rest[i+len(imageOpen):]
			end := strings.IndexByte(rest, ')')
			next := strings.Index(rest, imageOpen)
			if end < 0 || (next >= 0 && next < end) {
				warnings = append(warnings, fmt.Sprintf(
					"image reference %q is not closed by any of %s",
					truncate(imageOpen+rest, 60), strings.Join(exts, ", ")))
			}
		}
	}
	return warnings
}

func rewriteCrossRefs(body string, style types.LinkStyle) (string, []string) {
	var warnings []string

	out := crossRefPattern.ReplaceAllStringFunc(body, func(m string) string {
		title := crossRefPattern.FindStringSubmatch(m)[1]
		if strings.ContainsRune(title, '"') {
			warnings = append(warnings, fmt.Sprintf("cross-reference %q contains a double quote", title))
		}
		if style != types.LinkStatic {
			for _, d := range liquidDelimiters {
				if strings.Contains(title, d) {
					warnings = append(warnings, fmt.Sprintf("cross-reference %q contains Liquid delimiter %s", title, d))
					break
				}
			}
		}
		return fmt.Sprintf(`<a href="%s">%s</a>`, linkTarget(title, style), title)
	})

	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "[[") {
			warnings = append(warnings, fmt.Sprintf("unterminated cross-reference in %q", truncate(line, 60)))
		}
	}
	return out, warnings
}

// linkTarget builds the href for a cross-reference. Static targets are
// resolved here; liquid targets are resolved by Jekyll with the same
// rules. Both are lowercase.
func linkTarget(title string, style types.LinkStyle) string {
	lowered := cases.Lower(language.Und).String(title)

	if style == types.LinkStatic {
		slug := strings.ReplaceAll(lowered, " ", "_")
		return strings.Map(func(r rune) rune {
			if strings.ContainsRune(linkStripped, r) || strings.ContainsRune(hrefUnsafe, r) {
				return -1
			}
			return r
		}, slug)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `{{ "%s" | replace: " ", "_"`, lowered)
	for _, r := range linkStripped {
		fmt.Fprintf(&b, ` | remove: "%c"`, r)
	}
	b.WriteString(" | downcase }}")
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
