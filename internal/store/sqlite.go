package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/pmzi/WordSmith/internal/word"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const wordsTable = "words"

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var recordColumns = []string{
	"id",
	"word",
	"pronunciation",
	"meaning",
	"example",
	"context",
	"target_language",
	"translation_to_target_language",
	"created_at",
}

// SQLite is the word cache backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*SQLite, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases shared and serializes
	// writers on file databases.
	db.SetMaxOpenConns(1)

	if err := Migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Migrate applies every pending embedded migration to db.
func Migrate(ctx context.Context, db *sql.DB) error {
	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// FindByWord returns the record stored for the exact word, or nil when the
// word has never been resolved.
func (s *SQLite) FindByWord(ctx context.Context, w string) (*word.Record, error) {
	query, args, err := sq.Select(recordColumns...).
		From(wordsTable).
		Where(sq.Eq{"word": w}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("find word %q", w))
	}
	return rec, nil
}

// FindByID returns the record with the given id.
func (s *SQLite) FindByID(ctx context.Context, id int64) (*word.Record, error) {
	query, args, err := sq.Select(recordColumns...).
		From(wordsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("word %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("find word %d", id))
	}
	return rec, nil
}

// Insert stores a new record. The id and creation time are assigned by the
// database.
func (s *SQLite) Insert(ctx context.Context, f word.Fields) (*word.Record, error) {
	if strings.TrimSpace(f.Word) == "" {
		return nil, fmt.Errorf("insert word: %w: word must be non-empty", ErrInvalidRecord)
	}

	query, args, err := sq.Insert(wordsTable).
		Columns(
			"word",
			"pronunciation",
			"meaning",
			"example",
			"context",
			"target_language",
			"translation_to_target_language",
		).
		Values(
			f.Word,
			f.Pronunciation,
			f.Meaning,
			f.Example,
			f.Context,
			f.TargetLanguage,
			f.TranslationToTargetLanguage,
		).
		Suffix("RETURNING " + strings.Join(recordColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("insert word %q", f.Word))
	}
	return rec, nil
}

// Update overwrites every translation field of the record with the given
// id. Optional fields are replaced, not merged. The word itself is the key
// and is left unchanged.
func (s *SQLite) Update(ctx context.Context, id int64, f word.Fields) (*word.Record, error) {
	query, args, err := sq.Update(wordsTable).
		SetMap(map[string]any{
			"pronunciation":                  f.Pronunciation,
			"meaning":                        f.Meaning,
			"example":                        f.Example,
			"context":                        f.Context,
			"target_language":                f.TargetLanguage,
			"translation_to_target_language": f.TranslationToTargetLanguage,
		}).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(recordColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update word %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("update word %d", id))
	}
	return rec, nil
}

// ListAll returns every stored record in insertion order.
func (s *SQLite) ListAll(ctx context.Context) ([]word.Record, error) {
	query, args, err := sq.Select(recordColumns...).
		From(wordsTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "list words")
	}
	defer rows.Close()

	var records []word.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, mapError(err, "scan word")
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "list words")
	}
	return records, nil
}

// Delete removes the record with the given id.
func (s *SQLite) Delete(ctx context.Context, id int64) error {
	query, args, err := sq.Delete(wordsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, fmt.Sprintf("delete word %d", id))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err, fmt.Sprintf("delete word %d", id))
	}
	if n == 0 {
		return fmt.Errorf("delete word %d: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*word.Record, error) {
	var (
		rec            word.Record
		sentence       sql.NullString
		targetLanguage sql.NullString
		gloss          sql.NullString
		createdAt      string
	)

	err := row.Scan(
		&rec.ID,
		&rec.Word,
		&rec.Pronunciation,
		&rec.Meaning,
		&rec.Example,
		&sentence,
		&targetLanguage,
		&gloss,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Context = nullString(sentence)
	rec.TargetLanguage = nullString(targetLanguage)
	rec.TranslationToTargetLanguage = nullString(gloss)

	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}

	return &rec, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
