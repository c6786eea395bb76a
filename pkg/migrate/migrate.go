// Package migrate applies the versioned SQL files in a schema table, one
// transaction per file.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const codeUndefinedTable = "42P01"

// ErrNothingToRollback is returned by Down on an empty schema.
var ErrNothingToRollback = errors.New("no migrations to roll back")

// Migration is one numbered up/down pair.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

// Status reports whether a known migration is applied.
type Status struct {
	Version   int
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

// Conn is the subset of *pgx.Conn the migrator uses.
type Conn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Migrator runs migrations loaded from a filesystem against Conn.
type Migrator struct {
	conn       Conn
	table      string
	migrations []Migration
	logger     *zap.Logger
}

// Connect opens a pgx connection for the migrator. The caller closes it.
func Connect(ctx context.Context, url string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return conn, nil
}

// New loads migrations from fsys. table defaults to schema_migrations.
func New(conn Conn, fsys fs.FS, table string, logger *zap.Logger) (*Migrator, error) {
	migrations, err := Load(fsys)
	if err != nil {
		return nil, err
	}
	if table == "" {
		table = "schema_migrations"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{conn: conn, table: pgx.Identifier{table}.Sanitize(), migrations: migrations, logger: logger}, nil
}

// Load reads NNNNNN_name.up.sql / .down.sql pairs from the root of fsys.
// Versions must start at 1 and be contiguous; every version needs an up file.
func Load(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	byVersion := map[int]*Migration{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		file := entry.Name()
		var up bool
		var stem string
		switch {
		case strings.HasSuffix(file, ".up.sql"):
			up, stem = true, strings.TrimSuffix(file, ".up.sql")
		case strings.HasSuffix(file, ".down.sql"):
			stem = strings.TrimSuffix(file, ".down.sql")
		default:
			continue
		}
		prefix, name, _ := strings.Cut(stem, "_")
		version, err := strconv.Atoi(prefix)
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("migration %s: invalid version prefix", file)
		}
		body, err := fs.ReadFile(fsys, path.Clean(file))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", file, err)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: name}
			byVersion[version] = m
		}
		if up {
			m.UpSQL = string(body)
		} else {
			m.DownSQL = string(body)
		}
	}

	if len(byVersion) == 0 {
		return nil, errors.New("no migration files found")
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		migrations = append(migrations, *m)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	for i, m := range migrations {
		if m.Version != i+1 {
			return nil, fmt.Errorf("migration %d is missing", i+1)
		}
		if strings.TrimSpace(m.UpSQL) == "" {
			return nil, fmt.Errorf("migration %d has no up file", m.Version)
		}
	}
	return migrations, nil
}

// Migrations returns the loaded migrations in version order.
func (m *Migrator) Migrations() []Migration {
	return append([]Migration(nil), m.migrations...)
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
        version INTEGER PRIMARY KEY,
        name TEXT NOT NULL,
        applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW())`, m.table)
	if _, err := m.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", m.table, err)
	}
	return nil
}

func (m *Migrator) applied(ctx context.Context) (map[int]time.Time, error) {
	rows, err := m.conn.Query(ctx, fmt.Sprintf("SELECT version, applied_at FROM %s ORDER BY version", m.table))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeUndefinedTable {
			return map[int]time.Time{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", m.table, err)
	}
	defer rows.Close()

	applied := map[int]time.Time{}
	for rows.Next() {
		var version int
		var at time.Time
		if err := rows.Scan(&version, &at); err != nil {
			return nil, fmt.Errorf("scan %s: %w", m.table, err)
		}
		applied[version] = at
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", m.table, err)
	}
	return applied, nil
}

// Version returns the highest applied version, 0 when none.
func (m *Migrator) Version(ctx context.Context) (int, error) {
	applied, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}
	current := 0
	for v := range applied {
		if v > current {
			current = v
		}
	}
	return current, nil
}

// Status lists every known migration with its applied state.
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(m.migrations))
	for _, mig := range m.migrations {
		st := Status{Version: mig.Version, Name: mig.Name}
		if at, ok := applied[mig.Version]; ok {
			at := at
			st.Applied = true
			st.AppliedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}

// Up applies pending migrations in order and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	return m.Steps(ctx, len(m.migrations))
}

// Down rolls back the latest applied migration.
func (m *Migrator) Down(ctx context.Context) error {
	n, err := m.Steps(ctx, -1)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNothingToRollback
	}
	return nil
}

// Steps applies n pending migrations when n > 0 or rolls back -n applied ones
// when n < 0. It returns the number of migrations run.
func (m *Migrator) Steps(ctx context.Context, n int) (int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}
	current, err := m.Version(ctx)
	if err != nil {
		return 0, err
	}

	ran := 0
	for ; n > 0 && current < len(m.migrations); n-- {
		if err := ctx.Err(); err != nil {
			return ran, err
		}
		mig := m.migrations[current]
		if err := m.apply(ctx, mig, true); err != nil {
			return ran, err
		}
		current = mig.Version
		ran++
	}
	for ; n < 0 && current > 0; n++ {
		if err := ctx.Err(); err != nil {
			return ran, err
		}
		mig := m.migrations[current-1]
		if strings.TrimSpace(mig.DownSQL) == "" {
			return ran, fmt.Errorf("migration %d has no down file", mig.Version)
		}
		if err := m.apply(ctx, mig, false); err != nil {
			return ran, err
		}
		current = mig.Version - 1
		ran++
	}
	return ran, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration, up bool) (err error) {
	direction, body := "up", mig.UpSQL
	if !up {
		direction, body = "down", mig.DownSQL
	}
	log := m.logger.With(zap.Int("version", mig.Version), zap.String("name", mig.Name), zap.String("direction", direction))

	tx, err := m.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", mig.Version, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, body); err != nil {
		return fmt.Errorf("migration %d %s: %w", mig.Version, direction, err)
	}
	if up {
		_, err = tx.Exec(ctx, fmt.Sprintf("INSERT INTO %s (version, name) VALUES ($1, $2)", m.table), mig.Version, mig.Name)
	} else {
		_, err = tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE version = $1", m.table), mig.Version)
	}
	if err != nil {
		return fmt.Errorf("record migration %d: %w", mig.Version, err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration %d: %w", mig.Version, err)
	}
	log.Info("migration applied")
	return nil
}
