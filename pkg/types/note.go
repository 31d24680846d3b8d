// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"os"
	"time"
)

// Note is a single document read from a note store. Notes are never
// written back to their source; the exporter only reads them.
type Note struct {
	// ID is the store's stable unique identifier for the note.
	ID string `json:"id" yaml:"id"`

	// Title is the note title as shown in the note list.
	Title string `json:"title" yaml:"title"`

	// Created is the creation timestamp in UTC.
	Created time.Time `json:"created" yaml:"created"`

	// Text is the raw note body. The first line repeats the title.
	Text string `json:"text" yaml:"text"`

	// Tags lists the tags attached to the note, in store order.
	Tags []Tag `json:"tags" yaml:"tags"`

	// Images lists the image files embedded in the note body.
	Images []Image `json:"images,omitempty" yaml:"images,omitempty"`
}

// TagTitles returns the titles of the note's tags in order.
func (n Note) TagTitles() []string {
	titles := make([]string, len(n.Tags))
	for i, t := range n.Tags {
		titles[i] = t.Title
	}
	return titles
}

// Tag is a named label grouping notes. Titles are case sensitive.
type Tag struct {
	Title string `json:"title" yaml:"title"`
}

// Image is a file embedded in a note.
type Image struct {
	// URI is the relative path used inside the note text
	// (e.g. "9E1B.../photo.png").
	URI string `json:"uri" yaml:"uri"`

	// Path is the absolute path of the source file on disk.
	Path string `json:"path" yaml:"path"`
}

// Exists reports whether the image source is a regular file on disk.
func (i Image) Exists() bool {
	info, err := os.Stat(i.Path)
	return err == nil && info.Mode().IsRegular()
}

// TagCount pairs a tag title with the number of notes under it.
type TagCount struct {
	Title string `json:"title" yaml:"title"`
	Notes int    `json:"notes" yaml:"notes"`
}
