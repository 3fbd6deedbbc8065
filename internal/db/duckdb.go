package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog/log"
)

// SQLiteSchema is the catalog name the dashboard database is attached under.
const SQLiteSchema = "src"

// OpenDuckDB opens an in-memory DuckDB instance and attaches the SQLite file
// at path read-only through the sqlite extension. Every column of the
// attached tables is read as text so malformed counters never fail a scan.
func OpenDuckDB(ctx context.Context, path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sqlite file: %w", err)
	}

	connector, err := duckdb.NewConnector("", func(execer driver.ExecerContext) error {
		for _, stmt := range []string{
			"LOAD sqlite",
			"SET sqlite_all_varchar = true",
		} {
			if _, err := execer.ExecContext(context.Background(), stmt, nil); err != nil {
				return fmt.Errorf("%s: %w", stmt, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("duckdb connector: %w", err)
	}

	// INSTALL must run before any connection executes the init statements.
	if err := installSQLite(ctx); err != nil {
		connector.Close()
		return nil, err
	}

	conn := sql.OpenDB(connector)
	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	attach := fmt.Sprintf("ATTACH '%s' AS %s (TYPE sqlite, READ_ONLY)", escapeLiteral(path), SQLiteSchema)
	if _, err := conn.ExecContext(ctx, attach); err != nil {
		conn.Close()
		return nil, fmt.Errorf("attach %s: %w", path, err)
	}

	log.Info().Str("component", "db").Str("path", path).Msg("sqlite file attached through duckdb")
	return conn, nil
}

// installSQLite downloads the sqlite extension into the local extension
// directory when it is not there yet.
func installSQLite(ctx context.Context) error {
	conn, err := sql.Open("duckdb", "")
	if err != nil {
		return fmt.Errorf("duckdb open: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "INSTALL sqlite"); err != nil {
		return fmt.Errorf("install sqlite extension: %w", err)
	}
	return nil
}

// HasTable reports whether the attached SQLite file contains table.
func HasTable(ctx context.Context, conn *sql.DB, table string) (bool, error) {
	var n int
	err := conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_catalog = ? AND table_name = ?`,
		SQLiteSchema, table).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Columns returns the lowercase column names of an attached table.
func Columns(ctx context.Context, conn *sql.DB, table string) (map[string]bool, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT column_name FROM information_schema.columns
		WHERE table_catalog = ? AND table_name = ?`,
		SQLiteSchema, table)
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

func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
