package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Jeanads/trendx-analytics/internal/db"
	"github.com/Jeanads/trendx-analytics/internal/model"
)

// DuckDBSource reads the bot's SQLite file through an attached DuckDB
// catalog.
type DuckDBSource struct {
	conn *sql.DB
}

func NewDuckDBSource(conn *sql.DB) *DuckDBSource {
	return &DuckDBSource{conn: conn}
}

func (s *DuckDBSource) Name() string { return "duckdb" }

func (s *DuckDBSource) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

func (s *DuckDBSource) Close() {
	s.conn.Close()
}

func (s *DuckDBSource) LoadUsers(ctx context.Context) ([]model.UserAggregate, error) {
	ok, err := db.HasTable(ctx, s.conn, UsersTable)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("table %s not found", UsersTable)
	}

	cols, err := db.Columns(ctx, s.conn, UsersTable)
	if err != nil {
		return nil, err
	}
	query, err := usersQuery(db.SQLiteSchema+".", cols)
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (s *DuckDBSource) LoadVideos(ctx context.Context) ([]model.VideoRecord, error) {
	ok, err := db.HasTable(ctx, s.conn, VideosTable)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.VideoRecord{}, nil
	}

	cols, err := db.Columns(ctx, s.conn, VideosTable)
	if err != nil {
		return nil, err
	}
	query, err := videosQuery(db.SQLiteSchema+".", cols)
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVideos(rows)
}
