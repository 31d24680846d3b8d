// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// BearConfig holds settings for reading the Bear SQLite database.
type BearConfig struct {
	// Database is the path to Bear's database.sqlite.
	Database string `json:"database" yaml:"database" mapstructure:"database"`

	// ImagesDir is the directory holding note images, one subdirectory
	// per image identifier ("Local Files/Note Images").
	ImagesDir string `json:"images_dir" yaml:"images_dir" mapstructure:"images_dir"`

	// TagsTable is the Core Data join table linking notes and tags.
	// Its name changes between Bear releases (Z_5TAGS, Z_7TAGS).
	TagsTable string `json:"tags_table" yaml:"tags_table" mapstructure:"tags_table"`

	// TagsNoteColumn is the join table column referencing ZSFNOTE.Z_PK.
	TagsNoteColumn string `json:"tags_note_column" yaml:"tags_note_column" mapstructure:"tags_note_column"`

	// TagsTagColumn is the join table column referencing ZSFNOTETAG.Z_PK.
	TagsTagColumn string `json:"tags_tag_column" yaml:"tags_tag_column" mapstructure:"tags_tag_column"`
}

// LinkStyle selects how cross-reference targets are written.
type LinkStyle string

const (
	// LinkLiquid emits a Liquid expression that Jekyll resolves when
	// building the site.
	LinkLiquid LinkStyle = "liquid"

	// LinkStatic emits the resolved, lowercased path directly.
	LinkStatic LinkStyle = "static"
)

// ExportConfig holds settings for a single export run.
type ExportConfig struct {
	// OutputDir is the Jekyll posts directory. It must already exist.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Tags restricts the export to notes under these tags. Empty exports
	// every note.
	Tags []string `json:"tags" yaml:"tags" mapstructure:"tags"`

	// HTML requests HTML rendering. Accepted but not applied to the body.
	HTML bool `json:"html" yaml:"html" mapstructure:"html"`

	// Layout is the front matter layout name (default "default").
	Layout string `json:"layout" yaml:"layout" mapstructure:"layout"`

	// Category is the front matter category (default "blog").
	Category string `json:"category" yaml:"category" mapstructure:"category"`

	// LinkStyle selects liquid or static cross-reference targets.
	LinkStyle LinkStyle `json:"link_style" yaml:"link_style" mapstructure:"link_style"`

	// ImageExtensions lists the extensions whose closing bracket is
	// rewritten into a Markdown image close (default [".png"]).
	ImageExtensions []string `json:"image_extensions" yaml:"image_extensions" mapstructure:"image_extensions"`
}
