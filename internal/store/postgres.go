package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/amenity-labs/amenity-finder/internal/db"
	"github.com/amenity-labs/amenity-finder/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// upsertRatingSQL is a single conditional write: the existence check and the
// insert-or-update happen inside one statement, so two concurrent submissions
// for the same business can never produce two rows or lose an update.
// visited_date is set on insert only.
const upsertRatingSQL = `
INSERT INTO ratings (id, business_id, business_name, user_rating, user_review, visited_date, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (business_id) DO UPDATE SET
  business_name = EXCLUDED.business_name,
  user_rating   = EXCLUDED.user_rating,
  user_review   = EXCLUDED.user_review,
  updated_at    = EXCLUDED.updated_at
RETURNING id, business_id, business_name, user_rating, user_review, visited_date, updated_at`

// preparedStatements lists queries to prepare on each new connection.
var preparedStatements = map[string]string{
	"upsert_rating": upsertRatingSQL,
	"get_rating":    `SELECT id, business_id, business_name, user_rating, user_review, visited_date, updated_at FROM ratings WHERE business_id = $1`,
	"list_ratings":  `SELECT id, business_id, business_name, user_rating, user_review, visited_date, updated_at FROM ratings ORDER BY visited_date DESC LIMIT $1 OFFSET $2`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS ratings (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	business_id   TEXT NOT NULL UNIQUE,
	business_name TEXT NOT NULL,
	user_rating   INTEGER NOT NULL CHECK (user_rating BETWEEN 1 AND 5),
	user_review   TEXT NOT NULL DEFAULT '',
	visited_date  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_ratings_visited_date ON ratings(visited_date DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) GetRating(ctx context.Context, businessID string) (*model.RatingRecord, error) {
	var r model.RatingRecord
	err := s.pool.QueryRow(ctx,
		`SELECT id, business_id, business_name, user_rating, user_review, visited_date, updated_at
		 FROM ratings WHERE business_id = $1`,
		businessID,
	).Scan(&r.ID, &r.BusinessID, &r.BusinessName, &r.UserRating, &r.UserReview, &r.VisitedDate, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get rating %s", businessID)
	}
	return &r, nil
}

func (s *PostgresStore) UpsertRating(ctx context.Context, businessID, businessName string, userRating int, userReview string) (*model.RatingRecord, error) {
	if err := validateUpsertArgs(businessID, businessName, userRating); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	var r model.RatingRecord
	err := s.pool.QueryRow(ctx, upsertRatingSQL,
		id, businessID, businessName, userRating, userReview, now,
	).Scan(&r.ID, &r.BusinessID, &r.BusinessName, &r.UserRating, &r.UserReview, &r.VisitedDate, &r.UpdatedAt)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: upsert rating %s", businessID)
	}
	return &r, nil
}

func (s *PostgresStore) ListRatings(ctx context.Context, limit, offset int) ([]model.RatingRecord, error) {
	limit, offset, err := normalizeListArgs(limit, offset)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, business_id, business_name, user_rating, user_review, visited_date, updated_at
		 FROM ratings ORDER BY visited_date DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list ratings")
	}
	defer rows.Close()

	var ratings []model.RatingRecord
	for rows.Next() {
		var r model.RatingRecord
		if err := rows.Scan(&r.ID, &r.BusinessID, &r.BusinessName, &r.UserRating, &r.UserReview, &r.VisitedDate, &r.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan rating")
		}
		ratings = append(ratings, r)
	}
	return ratings, eris.Wrap(rows.Err(), "postgres: list ratings iterate")
}
