// Package store implements the relational storage behind the stats core on
// database/sql. MySQL (the Get5 schema), PostgreSQL and SQLite are supported;
// statements are built with squirrel so placeholders and quoting follow the
// selected dialect.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/g5stats/stats-api/internal/logic"
)

// Dialect names a supported database.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect maps a DATABASE_DRIVER value to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "mysql", "":
		return MySQL, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", s)
}

func (d Dialect) driverName() string {
	switch d {
	case Postgres:
		return "pgx"
	case SQLite:
		return "sqlite"
	}
	return "mysql"
}

func (d Dialect) placeholder() sq.PlaceholderFormat {
	if d == Postgres {
		return sq.Dollar
	}
	return sq.Question
}

// quote quotes an identifier. Only needed for `match`, which is reserved in
// MySQL and SQLite.
func (d Dialect) quote(ident string) string {
	if d == MySQL {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}

// Config holds connection settings.
type Config struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB is the stats store. It implements logic.Store.
type DB struct {
	db      *sql.DB
	dialect Dialect
}

var _ logic.Store = (*DB)(nil)

// Open connects and pings the configured database.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.URL
	if dialect == MySQL {
		if dsn, err = mysqlDSN(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if dialect == SQLite {
		// An in-memory database lives in a single connection.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect, err)
	}

	return New(db, dialect), nil
}

// New wraps an open handle.
func New(db *sql.DB, dialect Dialect) *DB {
	return &DB{db: db, dialect: dialect}
}

// mysqlDSN forces the options the store relies on: found-rows semantics so an
// update that changes nothing still reports its matched row, and DATETIME
// parsing into time.Time.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ClientFoundRows = true
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

func (d *DB) Dialect() Dialect { return d.dialect }

// SQL exposes the handle for migrations.
func (d *DB) SQL() *sql.DB { return d.db }

func (d *DB) Ping(ctx context.Context) error { return d.db.PingContext(ctx) }

func (d *DB) Close() error { return d.db.Close() }

// Builder returns a statement builder with the dialect's placeholders.
func (d *DB) Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.dialect.placeholder())
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn runs statements against either the pool or an open transaction.
type conn struct {
	q       querier
	dialect Dialect
	builder sq.StatementBuilderType
}

var _ logic.Tx = (*conn)(nil)

func (d *DB) conn() *conn {
	return &conn{q: d.db, dialect: d.dialect, builder: d.Builder()}
}

// WithTx runs fn in a transaction, committing on nil and rolling back on
// error or panic.
func (d *DB) WithTx(ctx context.Context, fn func(tx logic.Tx) error) (err error) {
	sqlTx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = sqlTx.Rollback()
		}
	}()

	if err = fn(&conn{q: sqlTx, dialect: d.dialect, builder: d.Builder()}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

func (c *conn) exec(ctx context.Context, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	res, err := c.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
