package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	_ "github.com/lib/pq"

	"task-prompt-api/internal/config"
	"task-prompt-api/pkg/logger"
)

// migrationLockID pg_advisory_lock 使用的锁编号，防止多个实例同时迁移
const migrationLockID = 72010417

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    VARCHAR(255) PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migration 单个迁移脚本
type Migration struct {
	Version string
	Up      string
	Down    string
}

// Migrator 基于 database/sql 与 lib/pq 的迁移执行器
type Migrator struct {
	db    *sql.DB
	files fs.FS
}

// NewMigrator 打开独立连接执行迁移
func NewMigrator(cfg *config.PostgresConfig, files fs.FS) (*Migrator, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open migration connection: %w", err)
	}
	return &Migrator{db: db, files: files}, nil
}

// Close 关闭连接
func (m *Migrator) Close() error {
	return m.db.Close()
}

// Up 依次应用尚未执行的迁移，返回本次应用的版本
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	migrations, err := LoadMigrations(m.files)
	if err != nil {
		return nil, err
	}

	conn, release, err := m.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err := conn.ExecContext(ctx, createVersionTable); err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, mig := range migrations {
		if applied[mig.Version] {
			continue
		}
		if err := runInTx(ctx, conn, mig.Up, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Version); err != nil {
			return done, fmt.Errorf("migration %s failed: %w", mig.Version, err)
		}
		logger.Info(ctx, "migration applied", "version", mig.Version)
		done = append(done, mig.Version)
	}
	return done, nil
}

// Down 回滚最近一次迁移，无可回滚时返回空字符串
func (m *Migrator) Down(ctx context.Context) (string, error) {
	migrations, err := LoadMigrations(m.files)
	if err != nil {
		return "", err
	}

	conn, release, err := m.lock(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	if _, err := conn.ExecContext(ctx, createVersionTable); err != nil {
		return "", fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return "", err
	}

	for i := len(migrations) - 1; i >= 0; i-- {
		mig := migrations[i]
		if !applied[mig.Version] {
			continue
		}
		if mig.Down == "" {
			return "", fmt.Errorf("migration %s has no down script", mig.Version)
		}
		if err := runInTx(ctx, conn, mig.Down, `DELETE FROM schema_migrations WHERE version = $1`, mig.Version); err != nil {
			return "", fmt.Errorf("rollback %s failed: %w", mig.Version, err)
		}
		logger.Info(ctx, "migration rolled back", "version", mig.Version)
		return mig.Version, nil
	}
	return "", nil
}

func (m *Migrator) lock(ctx context.Context) (*sql.Conn, func(), error) {
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get migration connection: %w", err)
	}
	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, migrationLockID); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	release := func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, migrationLockID)
		conn.Close()
	}
	return conn, release, nil
}

func appliedVersions(ctx context.Context, conn *sql.Conn) (map[string]bool, error) {
	rows, err := conn.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func runInTx(ctx context.Context, conn *sql.Conn, script, bookkeeping, version string) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, script); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, bookkeeping, version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// LoadMigrations 读取并按版本排序迁移脚本
func LoadMigrations(files fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	byVersion := make(map[string]*Migration)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		var version string
		var up bool
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			version, up = strings.TrimSuffix(name, ".up.sql"), true
		case strings.HasSuffix(name, ".down.sql"):
			version = strings.TrimSuffix(name, ".down.sql")
		default:
			return nil, fmt.Errorf("migration %s must end with .up.sql or .down.sql", name)
		}

		body, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		mig, ok := byVersion[version]
		if !ok {
			mig = &Migration{Version: version}
			byVersion[version] = mig
		}
		if up {
			mig.Up = string(body)
		} else {
			mig.Down = string(body)
		}
	}

	out := make([]Migration, 0, len(byVersion))
	for _, mig := range byVersion {
		if mig.Up == "" {
			return nil, fmt.Errorf("migration %s has no up script", mig.Version)
		}
		out = append(out, *mig)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}
