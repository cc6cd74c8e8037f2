// Package index stores page and revision metadata from a dump in SQLite.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/jacoelho/mwdump"
)

// DriverName is the database/sql driver used by Open.
const DriverName = "sqlite3"

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("index: not found")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS pages (
		id           INTEGER PRIMARY KEY,
		namespace    INTEGER NOT NULL,
		title        TEXT    NOT NULL,
		redirect     TEXT,
		restrictions TEXT,
		revisions    INTEGER NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS pages_title ON pages (namespace, title)`,
	`CREATE TABLE IF NOT EXISTS revisions (
		id               INTEGER PRIMARY KEY,
		page_id          INTEGER NOT NULL,
		parent_id        INTEGER,
		timestamp        TEXT    NOT NULL,
		contributor_kind TEXT    NOT NULL,
		contributor_name TEXT,
		contributor_id   INTEGER,
		minor            INTEGER NOT NULL,
		origin           INTEGER,
		comment_kind     TEXT    NOT NULL,
		comment          TEXT,
		model            TEXT    NOT NULL,
		format           TEXT    NOT NULL,
		text_bytes       INTEGER NOT NULL,
		sha1             TEXT    NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS revisions_page ON revisions (page_id)`,
}

const (
	insertPageSQL = `INSERT OR REPLACE INTO pages (id, namespace, title, redirect, restrictions, revisions)
		VALUES (?, ?, ?, ?, ?, ?)`
	deleteRevisionsSQL = `DELETE FROM revisions WHERE page_id = ?`
	insertRevisionSQL  = `INSERT INTO revisions (
			id, page_id, parent_id, timestamp, contributor_kind, contributor_name, contributor_id,
			minor, origin, comment_kind, comment, model, format, text_bytes, sha1
		) VALUES (
			:id, :page_id, :parent_id, :timestamp, :contributor_kind, :contributor_name, :contributor_id,
			:minor, :origin, :comment_kind, :comment, :model, :format, :text_bytes, :sha1
		)`
	selectPageSQL = `SELECT id, namespace, title, redirect, restrictions, revisions
		FROM pages WHERE namespace = ? AND title = ?`
	countSQL = `SELECT
		(SELECT COUNT(*) FROM pages) AS pages,
		(SELECT COUNT(*) FROM revisions) AS revisions`
)

// Store is a page index backed by a SQL database.
type Store struct {
	db *sqlx.DB
}

// PageRow is a stored page.
type PageRow struct {
	Redirect     sql.NullString `db:"redirect"`
	Restrictions sql.NullString `db:"restrictions"`
	Title        string         `db:"title"`
	ID           int64          `db:"id"`
	Namespace    int            `db:"namespace"`
	Revisions    int            `db:"revisions"`
}

// Counts holds the number of stored rows.
type Counts struct {
	Pages     int `db:"pages"`
	Revisions int `db:"revisions"`
}

type revisionRow struct {
	ParentID        sql.NullInt64  `db:"parent_id"`
	ContributorName sql.NullString `db:"contributor_name"`
	ContributorID   sql.NullInt64  `db:"contributor_id"`
	Origin          sql.NullInt64  `db:"origin"`
	Comment         sql.NullString `db:"comment"`
	Timestamp       string         `db:"timestamp"`
	ContributorKind string         `db:"contributor_kind"`
	CommentKind     string         `db:"comment_kind"`
	Model           string         `db:"model"`
	Format          string         `db:"format"`
	SHA1            string         `db:"sha1"`
	ID              int64          `db:"id"`
	PageID          int64          `db:"page_id"`
	TextBytes       int            `db:"text_bytes"`
	Minor           bool           `db:"minor"`
}

// Open connects to the SQLite database at dsn.
// A single connection is kept so ":memory:" databases persist across calls.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open index %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)
	return New(db), nil
}

// New wraps an existing connection.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the tables when they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate index: %w", err)
		}
	}
	return nil
}

// InsertPage stores page and its revisions in one transaction,
// replacing any earlier copy of the page.
func (s *Store) InsertPage(ctx context.Context, page *mwdump.Page) (err error) {
	if page == nil {
		return errors.New("insert page: nil page")
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = errors.Join(err, fmt.Errorf("failed to rollback: %w", rbErr))
			}
		}
	}()

	pageID := int64(page.ID)
	if _, err = tx.ExecContext(ctx, insertPageSQL,
		pageID,
		page.Namespace,
		page.Title,
		nullString(page.RedirectTarget),
		nullString(page.Restrictions),
		len(page.Revisions),
	); err != nil {
		return fmt.Errorf("failed to insert page %d: %w", page.ID, err)
	}
	if _, err = tx.ExecContext(ctx, deleteRevisionsSQL, pageID); err != nil {
		return fmt.Errorf("failed to clear revisions of page %d: %w", page.ID, err)
	}
	for i := range page.Revisions {
		row := newRevisionRow(pageID, &page.Revisions[i])
		if _, err = tx.NamedExecContext(ctx, insertRevisionSQL, row); err != nil {
			return fmt.Errorf("failed to insert revision %d: %w", row.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit page %d: %w", page.ID, err)
	}
	return nil
}

// PageByTitle looks up a page by namespace and title.
func (s *Store) PageByTitle(ctx context.Context, namespace int, title string) (*PageRow, error) {
	var row PageRow
	if err := s.db.GetContext(ctx, &row, selectPageSQL, namespace, title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get page %q: %w", title, err)
	}
	return &row, nil
}

// Count reports how many pages and revisions are stored.
func (s *Store) Count(ctx context.Context) (Counts, error) {
	var counts Counts
	if err := s.db.GetContext(ctx, &counts, countSQL); err != nil {
		return Counts{}, fmt.Errorf("failed to count rows: %w", err)
	}
	return counts, nil
}

func newRevisionRow(pageID int64, rev *mwdump.Revision) revisionRow {
	row := revisionRow{
		ID:        int64(rev.ID),
		PageID:    pageID,
		ParentID:  nullInt(rev.ParentID),
		Origin:    nullInt(rev.Origin),
		Timestamp: rev.Timestamp.UTC().Format(time.RFC3339),
		Minor:     rev.Minor,
		Model:     rev.Model,
		Format:    rev.Format,
		TextBytes: len(rev.Text),
		SHA1:      rev.SHA1,
	}
	switch c := rev.Contributor.(type) {
	case mwdump.UserContributor:
		row.ContributorKind = "user"
		row.ContributorName = sql.NullString{String: c.Username, Valid: true}
		row.ContributorID = sql.NullInt64{Int64: int64(c.ID), Valid: true}
	case mwdump.IPContributor:
		row.ContributorKind = "ip"
		row.ContributorName = sql.NullString{String: c.Addr.String(), Valid: true}
	default:
		row.ContributorKind = "deleted"
	}
	switch c := rev.Comment.(type) {
	case mwdump.VisibleComment:
		row.CommentKind = "visible"
		row.Comment = sql.NullString{String: c.Text, Valid: true}
	case mwdump.DeletedOrAbsentComment:
		if c.Deleted {
			row.CommentKind = "deleted"
		} else {
			row.CommentKind = "absent"
		}
	default:
		row.CommentKind = "absent"
	}
	return row
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(v *uint64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
