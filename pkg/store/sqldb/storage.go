package sqldb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/marcboeker/go-duckdb/v2"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const ParticipantsSchema = `
	CREATE TABLE IF NOT EXISTS participants (
		id VARCHAR(36) PRIMARY KEY,
		full_name VARCHAR NOT NULL,
		nik VARCHAR NOT NULL UNIQUE,
		address VARCHAR NOT NULL,
		phone VARCHAR NOT NULL,
		gender VARCHAR NOT NULL,
		cycle_status VARCHAR NOT NULL,
		performance_status VARCHAR NOT NULL DEFAULT '',
		enrolled_at DATE NOT NULL,
		initial_count INTEGER NOT NULL,
		return_target INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
`

const ReportsSchema = `
	CREATE TABLE IF NOT EXISTS reports (
		id VARCHAR(36) PRIMARY KEY,
		participant_id VARCHAR(36) NOT NULL,
		quarter INTEGER NOT NULL,
		year INTEGER NOT NULL,
		period_start DATE NOT NULL,
		period_end DATE NOT NULL,
		label VARCHAR NOT NULL,
		initial_count INTEGER NOT NULL,
		current_count INTEGER NOT NULL,
		return_target INTEGER NOT NULL,
		died INTEGER NOT NULL,
		born INTEGER NOT NULL,
		sold INTEGER NOT NULL,
		notes VARCHAR NOT NULL DEFAULT '',
		obstacle VARCHAR NOT NULL DEFAULT '',
		solution VARCHAR NOT NULL DEFAULT '',
		report_date DATE NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (participant_id, quarter)
	);
`

var bootQueries = []string{
	ParticipantsSchema,
	ReportsSchema,
}

type Settings struct {
	Driver Dialect
	DSN    string
}

// Target describes where the store lives without exposing credentials.
// Postgres DSNs are reduced to user@host:port/database.
func (s Settings) Target() string {
	if s.Driver != DialectPostgres {
		return s.DSN
	}
	cfg, err := pgconn.ParseConfig(s.DSN)
	if err != nil {
		return "invalid postgres dsn"
	}
	return fmt.Sprintf("%s@%s:%d/%s", cfg.User, cfg.Host, cfg.Port, cfg.Database)
}

// DB couples a connection pool with the SQL dialect spoken over it.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Wrap binds an already opened pool to a dialect, e.g. a sqlmock connection.
func Wrap(db *sql.DB, dialect Dialect) *DB {
	return &DB{DB: db, Dialect: dialect}
}

func NewDB(settings Settings) (*DB, error) {
	switch settings.Driver {
	case "", DialectDuckDB:
		return newDuckDB(settings.DSN)
	case DialectSQLite:
		return newSQLDB(DialectSQLite, "sqlite", settings.DSN)
	case DialectPostgres:
		return newSQLDB(DialectPostgres, "pgx", settings.DSN)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", settings.Driver)
	}
}

func newDuckDB(path string) (*DB, error) {
	if path == "" {
		path = "ternak-atlas.db"
	}
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", path), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return Wrap(sql.OpenDB(c), DialectDuckDB), nil
}

func newSQLDB(dialect Dialect, driverName, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%s store requires a dsn", dialect)
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		// a single connection keeps ":memory:" databases shared and serializes writers
		db.SetMaxOpenConns(1)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}
	for _, query := range bootQueries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return Wrap(db, dialect), nil
}
