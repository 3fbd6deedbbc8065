package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

// PostgresSource reads the dataset from the bot's Postgres database.
type PostgresSource struct {
	pool *pgxpool.Pool
}

func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresSource) Close() {
	s.pool.Close()
}

// LoadUsers returns all users with a display name, highest views first.
func (s *PostgresSource) LoadUsers(ctx context.Context) ([]model.UserAggregate, error) {
	cols, err := s.columns(ctx, UsersTable)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s not found", UsersTable)
	}

	query, err := usersQuery("", cols)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

// LoadVideos returns every video, newest first. Owners are resolved through
// the user table and stay nil for unknown users.
func (s *PostgresSource) LoadVideos(ctx context.Context) ([]model.VideoRecord, error) {
	cols, err := s.columns(ctx, VideosTable)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return []model.VideoRecord{}, nil
	}

	query, err := videosQuery("", cols)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVideos(rows)
}

// columns returns the lowercase column names of table in the current schema.
// A missing table yields an empty map.
func (s *PostgresSource) columns(ctx context.Context, table string) (map[string]bool, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[strings.ToLower(name)] = true
	}
	return cols, rows.Err()
}
