// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dump serves notes from a YAML file instead of the Bear
// database. It lets an export run on machines without Bear and gives
// tests a readable fixture format:
//
//	notes:
//	  - title: These Cats
//	    created: 2020-01-02T10:00:00Z
//	    tags: [Blog]
//	    text: |
//	      # These Cats
//	      Meow.
//	    images:
//	      - uri: 9E1B/cat.png
//	        path: images/cat.png
//
// Relative image paths resolve against the dump file's directory. Notes
// without an id get a stable identifier derived from title and creation
// time.
package dump

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bear-export/pkg/types"
)

// noteNamespace scopes the name-based identifiers generated for notes
// without an id.
var noteNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://bear.app/notes"))

type file struct {
	Notes []entry `yaml:"notes"`
}

type entry struct {
	ID      string        `yaml:"id"`
	Title   string        `yaml:"title"`
	Created time.Time     `yaml:"created"`
	Text    string        `yaml:"text"`
	Tags    []string      `yaml:"tags"`
	Images  []types.Image `yaml:"images"`
}

// Store holds the notes of a dump file in memory.
type Store struct {
	notes []types.Note
}

// Load reads and parses the dump file at path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dump %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing dump %s: %w", path, err)
	}

	base := filepath.Dir(path)
	notes := make([]types.Note, len(f.Notes))
	for i, e := range f.Notes {
		notes[i] = e.note(base)
	}
	return &Store{notes: notes}, nil
}

func (e entry) note(base string) types.Note {
	n := types.Note{
		ID:      e.ID,
		Title:   e.Title,
		Created: e.Created.UTC(),
		Text:    e.Text,
	}
	if n.ID == "" {
		name := e.Title + "\x00" + n.Created.Format(time.RFC3339Nano)
		n.ID = strings.ToUpper(uuid.NewSHA1(noteNamespace, []byte(name)).String())
	}
	for _, t := range e.Tags {
		n.Tags = append(n.Tags, types.Tag{Title: t})
	}
	for _, img := range e.Images {
		if img.Path != "" && !filepath.IsAbs(img.Path) {
			img.Path = filepath.Join(base, img.Path)
		}
		n.Images = append(n.Images, img)
	}
	return n
}

// Close is a no-op; the dump is fully read by Load.
func (s *Store) Close() error {
	return nil
}

// Notes returns every note in file order.
func (s *Store) Notes(ctx context.Context) ([]types.Note, error) {
	return s.notes, nil
}

// TagByTitle reports whether any note carries a tag with exactly title.
func (s *Store) TagByTitle(ctx context.Context, title string) (types.Tag, bool, error) {
	for _, n := range s.notes {
		for _, t := range n.Tags {
			if t.Title == title {
				return t, true, nil
			}
		}
	}
	return types.Tag{}, false, nil
}

// TagNotes returns the notes carrying tag, in file order.
func (s *Store) TagNotes(ctx context.Context, tag types.Tag) ([]types.Note, error) {
	var notes []types.Note
	for _, n := range s.notes {
		for _, t := range n.Tags {
			if t.Title == tag.Title {
				notes = append(notes, n)
				break
			}
		}
	}
	return notes, nil
}

// ListTags returns every tag in the dump with its note count, sorted by
// title.
func (s *Store) ListTags(ctx context.Context) ([]types.TagCount, error) {
	counts := make(map[string]int)
	for _, n := range s.notes {
		seen := make(map[string]bool)
		for _, t := range n.Tags {
			if !seen[t.Title] {
				seen[t.Title] = true
				counts[t.Title]++
			}
		}
	}

	tags := make([]types.TagCount, 0, len(counts))
	for title, c := range counts {
		tags = append(tags, types.TagCount{Title: title, Notes: c})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Title < tags[j].Title })
	return tags, nil
}
