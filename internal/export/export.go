// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export converts notes into Jekyll posts. It selects notes from a
// NoteStore, rewrites their bodies, writes one Markdown file per note with
// front matter, and copies embedded images into the site's assets tree.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pdiddy/bear-export/pkg/types"
)

// ErrOutputDirMissing is matched by errors.Is for every *OutputDirError.
var ErrOutputDirMissing = errors.New("output directory does not exist")

// OutputDirError names an output directory that is missing or is not a
// directory.
type OutputDirError struct {
	Path string
}

func (e *OutputDirError) Error() string {
	return fmt.Sprintf("the given output directory %s does not exist", e.Path)
}

// Is reports whether target is ErrOutputDirMissing.
func (e *OutputDirError) Is(target error) bool {
	return target == ErrOutputDirMissing
}

// NoteStore is the read-only note source an export runs against.
type NoteStore interface {
	// Notes returns every note in store order.
	Notes(ctx context.Context) ([]types.Note, error)

	// TagByTitle resolves a tag by exact, case-sensitive title. The bool
	// is false when no tag has that title.
	TagByTitle(ctx context.Context, title string) (types.Tag, bool, error)

	// TagNotes returns the notes under tag in store order.
	TagNotes(ctx context.Context, tag types.Tag) ([]types.Note, error)
}

// Warning records a content problem found while exporting a note. Warnings
// never stop the run.
type Warning struct {
	Note    string `json:"note" yaml:"note"`
	Message string `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	if w.Note == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Note, w.Message)
}

// Report summarizes an export run.
type Report struct {
	// Written lists the post files written, in export order.
	Written []string `json:"written" yaml:"written"`

	// ImagesCopied counts image files copied into the assets tree.
	ImagesCopied int `json:"images_copied" yaml:"images_copied"`

	// Warnings lists skipped images and malformed markers.
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// CheckOutputDir resolves dir to an absolute path and verifies that it is
// an existing directory.
func CheckOutputDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return abs, &OutputDirError{Path: abs}
	}
	if err != nil {
		return abs, fmt.Errorf("checking output directory %s: %w", abs, err)
	}
	if !info.IsDir() {
		return abs, &OutputDirError{Path: abs}
	}
	return abs, nil
}

// Run exports the notes selected by cfg.Tags into cfg.OutputDir. Notes are
// processed one at a time; each post and its images are fully written
// before the next note starts. Progress lines are written to w.
//
// Selection failures abort before any file is written. Existing posts and
// images with the same names are overwritten.
func Run(ctx context.Context, store NoteStore, cfg types.ExportConfig, w io.Writer) (Report, error) {
	var report Report

	outDir, err := CheckOutputDir(cfg.OutputDir)
	if err != nil {
		return report, err
	}
	cfg = withDefaults(cfg)

	notes, err := SelectNotes(ctx, store, cfg.Tags)
	if err != nil {
		return report, err
	}

	if cfg.HTML {
		report.Warnings = append(report.Warnings, Warning{
			Message: "HTML rendering is not implemented; posts are written as Markdown",
		})
	}

	opts := TransformOptions{
		LinkStyle:       cfg.LinkStyle,
		ImageExtensions: cfg.ImageExtensions,
	}
	fm := FrontMatter{Layout: cfg.Layout, Category: cfg.Category}

	for _, note := range notes {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		path := PostPath(outDir, note.Title, note.Created) + ".md"

		body, msgs := TransformBody(note.Text, opts)
		for _, m := range msgs {
			report.Warnings = append(report.Warnings, Warning{Note: note.Title, Message: m})
		}

		if err := WritePost(path, note, body, fm); err != nil {
			return report, err
		}
		report.Written = append(report.Written, path)

		copied, missing, err := CopyImages(outDir, note.Images)
		report.ImagesCopied += copied
		for _, m := range missing {
			report.Warnings = append(report.Warnings, Warning{Note: note.Title, Message: m})
		}
		if err != nil {
			return report, fmt.Errorf("copying images for %q: %w", note.Title, err)
		}

		fmt.Fprintf(w, "exported %s (%d images)\n", filepath.Base(path), copied)
	}

	fmt.Fprintf(w, "\nexported: %d, images: %d, warnings: %d\n",
		len(report.Written), report.ImagesCopied, len(report.Warnings))

	return report, nil
}

func withDefaults(cfg types.ExportConfig) types.ExportConfig {
	if cfg.Layout == "" {
		cfg.Layout = "default"
	}
	if cfg.Category == "" {
		cfg.Category = "blog"
	}
	if cfg.LinkStyle == "" {
		cfg.LinkStyle = types.LinkLiquid
	}
	if len(cfg.ImageExtensions) == 0 {
		cfg.ImageExtensions = []string{".png"}
	}
	return cfg
}
