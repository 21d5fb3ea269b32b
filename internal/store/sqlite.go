package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/amenity-labs/amenity-finder/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS ratings (
	id            TEXT PRIMARY KEY,
	business_id   TEXT NOT NULL UNIQUE,
	business_name TEXT NOT NULL,
	user_rating   INTEGER NOT NULL CHECK (user_rating BETWEEN 1 AND 5),
	user_review   TEXT NOT NULL DEFAULT '',
	visited_date  DATETIME NOT NULL,
	updated_at    DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ratings_visited_date ON ratings(visited_date DESC);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetRating(ctx context.Context, businessID string) (*model.RatingRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, business_id, business_name, user_rating, user_review, visited_date, updated_at
		 FROM ratings WHERE business_id = ?`,
		businessID,
	)

	var r model.RatingRecord
	err := row.Scan(&r.ID, &r.BusinessID, &r.BusinessName, &r.UserRating, &r.UserReview, &r.VisitedDate, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get rating %s", businessID)
	}
	return &r, nil
}

// UpsertRating uses the same single-statement ON CONFLICT write as the
// Postgres store, so the one-record-per-business invariant holds even with
// concurrent submissions. visited_date is set on insert only.
func (s *SQLiteStore) UpsertRating(ctx context.Context, businessID, businessName string, userRating int, userReview string) (*model.RatingRecord, error) {
	if err := validateUpsertArgs(businessID, businessName, userRating); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	row := s.db.QueryRowContext(ctx,
		`INSERT INTO ratings (id, business_id, business_name, user_rating, user_review, visited_date, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (business_id) DO UPDATE SET
		   business_name = excluded.business_name,
		   user_rating   = excluded.user_rating,
		   user_review   = excluded.user_review,
		   updated_at    = excluded.updated_at
		 RETURNING id, business_id, business_name, user_rating, user_review, visited_date, updated_at`,
		id, businessID, businessName, userRating, userReview, now, now,
	)

	var r model.RatingRecord
	if err := row.Scan(&r.ID, &r.BusinessID, &r.BusinessName, &r.UserRating, &r.UserReview, &r.VisitedDate, &r.UpdatedAt); err != nil {
		return nil, eris.Wrapf(err, "sqlite: upsert rating %s", businessID)
	}
	return &r, nil
}

func (s *SQLiteStore) ListRatings(ctx context.Context, limit, offset int) ([]model.RatingRecord, error) {
	limit, offset, err := normalizeListArgs(limit, offset)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, business_id, business_name, user_rating, user_review, visited_date, updated_at
		 FROM ratings ORDER BY visited_date DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list ratings")
	}
	defer rows.Close()

	var ratings []model.RatingRecord
	for rows.Next() {
		var r model.RatingRecord
		if err := rows.Scan(&r.ID, &r.BusinessID, &r.BusinessName, &r.UserRating, &r.UserReview, &r.VisitedDate, &r.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan rating")
		}
		ratings = append(ratings, r)
	}
	return ratings, eris.Wrap(rows.Err(), "sqlite: list ratings iterate")
}
