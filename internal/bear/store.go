// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bear reads notes, tags, and note images from the Bear
// application's Core Data SQLite database. The database is opened
// read-only and is never written.
package bear

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bear-export/pkg/types"
)

const (
	// groupContainer is Bear's macOS group container, relative to $HOME.
	groupContainer = "Library/Group Containers/9K33E3U3T4.net.shinyfrog.bear/Application Data"
	dbFile         = "database.sqlite"
	imagesSubdir   = "Local Files/Note Images"

	defaultTagsTable      = "Z_7TAGS"
	defaultTagsNoteColumn = "Z_7NOTES"
	defaultTagsTagColumn  = "Z_14TAGS"
)

// coreDataEpoch is the reference date for Core Data timestamps.
var coreDataEpoch = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DefaultConfig returns the configuration for a standard Bear install in
// the user's home directory.
func DefaultConfig() types.BearConfig {
	base := groupContainer
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, groupContainer)
	}
	return types.BearConfig{
		Database:       filepath.Join(base, dbFile),
		ImagesDir:      filepath.Join(base, imagesSubdir),
		TagsTable:      defaultTagsTable,
		TagsNoteColumn: defaultTagsNoteColumn,
		TagsTagColumn:  defaultTagsTagColumn,
	}
}

// Store reads the Bear database.
type Store struct {
	db        *sql.DB
	imagesDir string

	tagsTable string
	noteCol   string
	tagCol    string
}

// Open opens the Bear database at cfg.Database read-only. Empty join table
// settings fall back to the current Bear schema (Z_7TAGS).
func Open(cfg types.BearConfig) (*Store, error) {
	s := &Store{
		imagesDir: cfg.ImagesDir,
		tagsTable: orDefault(cfg.TagsTable, defaultTagsTable),
		noteCol:   orDefault(cfg.TagsNoteColumn, defaultTagsNoteColumn),
		tagCol:    orDefault(cfg.TagsTagColumn, defaultTagsTagColumn),
	}
	for _, ident := range []string{s.tagsTable, s.noteCol, s.tagCol} {
		if !identifierPattern.MatchString(ident) {
			return nil, fmt.Errorf("invalid tag join identifier %q", ident)
		}
	}

	path, err := filepath.Abs(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("resolving database path: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening Bear database: %w", err)
	}

	dsn := (&url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}).String()
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening Bear database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening Bear database %s: %w", path, err)
	}
	s.db = db

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// noteColumns selects the note fields. ZCREATIONDATE is declared TIMESTAMP
// but holds Core Data seconds; the cast keeps the driver from converting
// it as Unix time.
const noteColumns = `n.Z_PK, n.ZUNIQUEIDENTIFIER, n.ZTITLE, n.ZTEXT, CAST(n.ZCREATIONDATE AS REAL)`

// Notes returns every note that is not in the trash, ordered by creation
// in the database.
func (s *Store) Notes(ctx context.Context) ([]types.Note, error) {
	return s.queryNotes(ctx,
		`SELECT `+noteColumns+`
		FROM ZSFNOTE n
		WHERE COALESCE(n.ZTRASHED, 0) = 0
		ORDER BY n.Z_PK`)
}

// TagByTitle looks up a tag by exact title. SQLite's default BINARY
// collation makes the match case sensitive.
func (s *Store) TagByTitle(ctx context.Context, title string) (types.Tag, bool, error) {
	var got string
	err := s.db.QueryRowContext(ctx,
		`SELECT ZTITLE FROM ZSFNOTETAG WHERE ZTITLE = ? LIMIT 1`, title,
	).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Tag{}, false, nil
	}
	if err != nil {
		return types.Tag{}, false, fmt.Errorf("querying tag: %w", err)
	}
	return types.Tag{Title: got}, true, nil
}

// TagNotes returns the non-trashed notes under tag.
func (s *Store) TagNotes(ctx context.Context, tag types.Tag) ([]types.Note, error) {
	q := fmt.Sprintf(
		`SELECT DISTINCT `+noteColumns+`
		FROM ZSFNOTE n
		JOIN %[1]s j ON j.%[2]s = n.Z_PK
		JOIN ZSFNOTETAG t ON t.Z_PK = j.%[3]s
		WHERE t.ZTITLE = ? AND COALESCE(n.ZTRASHED, 0) = 0
		ORDER BY n.Z_PK`,
		s.tagsTable, s.noteCol, s.tagCol)
	return s.queryNotes(ctx, q, tag.Title)
}

// ListTags returns every tag with the number of non-trashed notes under it,
// sorted by title.
func (s *Store) ListTags(ctx context.Context) ([]types.TagCount, error) {
	q := fmt.Sprintf(
		`SELECT t.ZTITLE, COUNT(n.Z_PK)
		FROM ZSFNOTETAG t
		LEFT JOIN %[1]s j ON j.%[3]s = t.Z_PK
		LEFT JOIN ZSFNOTE n ON n.Z_PK = j.%[2]s AND COALESCE(n.ZTRASHED, 0) = 0
		GROUP BY t.Z_PK
		ORDER BY t.ZTITLE`,
		s.tagsTable, s.noteCol, s.tagCol)

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []types.TagCount
	for rows.Next() {
		var (
			title sql.NullString
			tc    types.TagCount
		)
		if err := rows.Scan(&title, &tc.Notes); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tc.Title = title.String
		tags = append(tags, tc)
	}
	return tags, rows.Err()
}

// queryNotes runs a note query and then loads tags and images for each
// row. Rows are fully read before the follow-up queries run.
func (s *Store) queryNotes(ctx context.Context, query string, args ...any) ([]types.Note, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}

	var (
		notes []types.Note
		pks   []int64
	)
	for rows.Next() {
		var (
			pk      int64
			id      sql.NullString
			title   sql.NullString
			text    sql.NullString
			created sql.NullFloat64
		)
		if err := rows.Scan(&pk, &id, &title, &text, &created); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, types.Note{
			ID:      id.String,
			Title:   title.String,
			Text:    text.String,
			Created: coreDataTime(created.Float64),
		})
		pks = append(pks, pk)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("reading notes: %w", err)
	}
	rows.Close()

	for i := range notes {
		if notes[i].Tags, err = s.noteTags(ctx, pks[i]); err != nil {
			return nil, err
		}
		if notes[i].Images, err = s.noteImages(ctx, pks[i]); err != nil {
			return nil, err
		}
	}
	return notes, nil
}

func (s *Store) noteTags(ctx context.Context, notePK int64) ([]types.Tag, error) {
	q := fmt.Sprintf(
		`SELECT t.ZTITLE
		FROM ZSFNOTETAG t
		JOIN %[1]s j ON j.%[3]s = t.Z_PK
		WHERE j.%[2]s = ?
		ORDER BY t.Z_PK`,
		s.tagsTable, s.noteCol, s.tagCol)

	rows, err := s.db.QueryContext(ctx, q, notePK)
	if err != nil {
		return nil, fmt.Errorf("querying note tags: %w", err)
	}
	defer rows.Close()

	var tags []types.Tag
	for rows.Next() {
		var title sql.NullString
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scanning note tag: %w", err)
		}
		tags = append(tags, types.Tag{Title: title.String})
	}
	return tags, rows.Err()
}

// noteImages returns the files attached to a note. Bear stores each file
// as Note Images/<identifier>/<filename>, and the note text refers to it
// as [image:<identifier>/<filename>].
func (s *Store) noteImages(ctx context.Context, notePK int64) ([]types.Image, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ZUNIQUEIDENTIFIER, ZFILENAME
		FROM ZSFNOTEFILE
		WHERE ZNOTE = ?
		ORDER BY Z_PK`, notePK)
	if err != nil {
		return nil, fmt.Errorf("querying note images: %w", err)
	}
	defer rows.Close()

	var images []types.Image
	for rows.Next() {
		var uid, name sql.NullString
		if err := rows.Scan(&uid, &name); err != nil {
			return nil, fmt.Errorf("scanning note image: %w", err)
		}
		if !uid.Valid || !name.Valid {
			continue
		}
		images = append(images, types.Image{
			URI:  uid.String + "/" + name.String,
			Path: filepath.Join(s.imagesDir, uid.String, name.String),
		})
	}
	return images, rows.Err()
}

func coreDataTime(seconds float64) time.Time {
	whole, frac := math.Modf(seconds)
	return coreDataEpoch.Add(time.Duration(whole)*time.Second + time.Duration(frac*float64(time.Second)))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
