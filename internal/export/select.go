// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/bear-export/pkg/types"
)

// ErrTagNotFound is matched by errors.Is for every *TagNotFoundError.
var ErrTagNotFound = errors.New("tag not found")

// TagNotFoundError names a requested tag that the store does not have.
type TagNotFoundError struct {
	Tag string
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("the given tag '%s' does not exist - note they're case sensitive", e.Tag)
}

// Is reports whether target is ErrTagNotFound.
func (e *TagNotFoundError) Is(target error) bool {
	return target == ErrTagNotFound
}

// SelectNotes returns the notes to export. With no tags it returns every
// note in the store. Otherwise every tag is resolved first; if any is
// unknown nothing is returned. The result is each tag's notes in tag
// order, so a note under two requested tags appears twice.
func SelectNotes(ctx context.Context, store NoteStore, tags []string) ([]types.Note, error) {
	if len(tags) == 0 {
		notes, err := store.Notes(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing notes: %w", err)
		}
		return notes, nil
	}

	resolved := make([]types.Tag, 0, len(tags))
	for _, title := range tags {
		tag, ok, err := store.TagByTitle(ctx, title)
		if err != nil {
			return nil, fmt.Errorf("looking up tag %q: %w", title, err)
		}
		if !ok {
			return nil, &TagNotFoundError{Tag: title}
		}
		resolved = append(resolved, tag)
	}

	var notes []types.Note
	for _, tag := range resolved {
		tagged, err := store.TagNotes(ctx, tag)
		if err != nil {
			return nil, fmt.Errorf("listing notes for tag %q: %w", tag.Title, err)
		}
		notes = append(notes, tagged...)
	}
	return notes, nil
}
