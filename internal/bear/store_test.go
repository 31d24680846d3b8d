// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bear

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bear-export/pkg/types"
)

// --- test helpers ---

// bearSchema is the subset of Bear's Core Data schema the store reads.
var bearSchema = []string{
	`CREATE TABLE ZSFNOTE (
		Z_PK INTEGER PRIMARY KEY,
		ZTRASHED INTEGER,
		ZCREATIONDATE TIMESTAMP,
		ZTITLE VARCHAR,
		ZTEXT VARCHAR,
		ZUNIQUEIDENTIFIER VARCHAR
	)`,
	`CREATE TABLE ZSFNOTETAG (
		Z_PK INTEGER PRIMARY KEY,
		ZTITLE VARCHAR
	)`,
	`CREATE TABLE Z_7TAGS (
		Z_7NOTES INTEGER,
		Z_14TAGS INTEGER,
		PRIMARY KEY (Z_7NOTES, Z_14TAGS)
	)`,
	`CREATE TABLE ZSFNOTEFILE (
		Z_PK INTEGER PRIMARY KEY,
		ZNOTE INTEGER,
		ZFILENAME VARCHAR,
		ZUNIQUEIDENTIFIER VARCHAR
	)`,
}

// created2020 is 2020-01-02 10:00:00 UTC in Core Data seconds.
var created2020 = float64(time.Date(2020, 1, 2, 10, 0, 0, 0, time.UTC).Sub(coreDataEpoch) / time.Second)

func testDB(t *testing.T) (types.BearConfig, *sql.DB) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "Application Data", dbFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(dbPath), 0o755))

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, stmt := range bearSchema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	cfg := types.BearConfig{
		Database:  dbPath,
		ImagesDir: filepath.Join(dir, "Application Data", imagesSubdir),
	}
	return cfg, db
}

func exec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	_, err := db.Exec(query, args...)
	require.NoError(t, err)
}

func seed(t *testing.T, db *sql.DB) {
	t.Helper()
	exec(t, db, `INSERT INTO ZSFNOTE VALUES (1, 0, ?, 'These Cats', ?, 'UUID-1')`, created2020, "# These Cats\nMeow")
	exec(t, db, `INSERT INTO ZSFNOTE VALUES (2, 0, ?, 'Drafts', ?, 'UUID-2')`, created2020+86400, "# Drafts\nTodo")
	exec(t, db, `INSERT INTO ZSFNOTE VALUES (3, 1, ?, 'Trashed', '# Trashed', 'UUID-3')`, created2020)
	exec(t, db, `INSERT INTO ZSFNOTE VALUES (4, NULL, NULL, 'No Date', NULL, 'UUID-4')`)

	exec(t, db, `INSERT INTO ZSFNOTETAG VALUES (10, 'Blog')`)
	exec(t, db, `INSERT INTO ZSFNOTETAG VALUES (11, 'blog/cats')`)
	exec(t, db, `INSERT INTO ZSFNOTETAG VALUES (12, 'Empty')`)

	exec(t, db, `INSERT INTO Z_7TAGS VALUES (1, 10)`)
	exec(t, db, `INSERT INTO Z_7TAGS VALUES (1, 11)`)
	exec(t, db, `INSERT INTO Z_7TAGS VALUES (2, 10)`)
	exec(t, db, `INSERT INTO Z_7TAGS VALUES (3, 10)`)

	exec(t, db, `INSERT INTO ZSFNOTEFILE VALUES (20, 1, 'cat.png', 'FILE-1')`)
	exec(t, db, `INSERT INTO ZSFNOTEFILE VALUES (21, 1, 'kitten.png', 'FILE-2')`)
}

func openStore(t *testing.T, cfg types.BearConfig) *Store {
	t.Helper()
	store, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// --- tests ---

func TestNotes(t *testing.T) {
	cfg, db := testDB(t)
	seed(t, db)
	store := openStore(t, cfg)

	notes, err := store.Notes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 3, "trashed note excluded")

	cats := notes[0]
	assert.Equal(t, "UUID-1", cats.ID)
	assert.Equal(t, "These Cats", cats.Title)
	assert.Equal(t, "# These Cats\nMeow", cats.Text)
	assert.Equal(t, time.Date(2020, 1, 2, 10, 0, 0, 0, time.UTC), cats.Created)
	assert.Equal(t, []string{"Blog", "blog/cats"}, cats.TagTitles())

	require.Len(t, cats.Images, 2)
	assert.Equal(t, "FILE-1/cat.png", cats.Images[0].URI)
	assert.Equal(t, filepath.Join(cfg.ImagesDir, "FILE-1", "cat.png"), cats.Images[0].Path)

	assert.Equal(t, "UUID-2", notes[1].ID)
	assert.Empty(t, notes[1].Images)

	noDate := notes[2]
	assert.Equal(t, coreDataEpoch, noDate.Created)
	assert.Empty(t, noDate.Text)
	assert.Empty(t, noDate.Tags)
}

func TestTagByTitle(t *testing.T) {
	cfg, db := testDB(t)
	seed(t, db)
	store := openStore(t, cfg)

	tests := []struct {
		title  string
		wantOK bool
	}{
		{"Blog", true},
		{"blog/cats", true},
		{"blog", false},
		{"BLOG", false},
		{"Missing", false},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			tag, ok, err := store.TagByTitle(context.Background(), tt.title)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.title, tag.Title)
			}
		})
	}
}

func TestTagNotes(t *testing.T) {
	cfg, db := testDB(t)
	seed(t, db)
	store := openStore(t, cfg)

	notes, err := store.TagNotes(context.Background(), types.Tag{Title: "Blog"})
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "UUID-1", notes[0].ID)
	assert.Equal(t, "UUID-2", notes[1].ID)
	assert.Equal(t, []string{"Blog"}, notes[1].TagTitles())

	notes, err = store.TagNotes(context.Background(), types.Tag{Title: "Empty"})
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestListTags(t *testing.T) {
	cfg, db := testDB(t)
	seed(t, db)
	store := openStore(t, cfg)

	tags, err := store.ListTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []types.TagCount{
		{Title: "Blog", Notes: 2},
		{Title: "Empty", Notes: 0},
		{Title: "blog/cats", Notes: 1},
	}, tags)
}

func TestOpen_CustomJoinTable(t *testing.T) {
	cfg, db := testDB(t)
	exec(t, db, `CREATE TABLE Z_5TAGS (Z_5NOTES INTEGER, Z_10TAGS INTEGER)`)
	exec(t, db, `INSERT INTO ZSFNOTE VALUES (1, 0, ?, 'Old', '# Old', 'UUID-OLD')`, created2020)
	exec(t, db, `INSERT INTO ZSFNOTETAG VALUES (1, 'Legacy')`)
	exec(t, db, `INSERT INTO Z_5TAGS VALUES (1, 1)`)

	cfg.TagsTable = "Z_5TAGS"
	cfg.TagsNoteColumn = "Z_5NOTES"
	cfg.TagsTagColumn = "Z_10TAGS"
	store := openStore(t, cfg)

	notes, err := store.TagNotes(context.Background(), types.Tag{Title: "Legacy"})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, []string{"Legacy"}, notes[0].TagTitles())
}

func TestOpen_Errors(t *testing.T) {
	t.Run("missing database", func(t *testing.T) {
		_, err := Open(types.BearConfig{Database: filepath.Join(t.TempDir(), "nope.sqlite")})
		assert.Error(t, err)
	})

	t.Run("invalid join identifier", func(t *testing.T) {
		cfg, _ := testDB(t)
		cfg.TagsTable = "Z_7TAGS; DROP TABLE ZSFNOTE"
		_, err := Open(cfg)
		assert.ErrorContains(t, err, "invalid tag join identifier")
	})
}

func TestStoreIsReadOnly(t *testing.T) {
	cfg, db := testDB(t)
	seed(t, db)
	store := openStore(t, cfg)

	_, err := store.db.Exec(`DELETE FROM ZSFNOTE`)
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, dbFile, filepath.Base(cfg.Database))
	assert.Contains(t, cfg.ImagesDir, "Note Images")
	assert.Equal(t, defaultTagsTable, cfg.TagsTable)
}
