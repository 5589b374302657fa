package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"legalpay-be/internal/config"
	"legalpay-be/internal/db"
	"legalpay-be/internal/logger"

	"go.uber.org/zap"
)

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

func main() {
	mode := flag.String("mode", "up", "migration mode: up or down")
	dir := flag.String("dir", "./migrations", "directory with .sql migration files")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	m := &migrator{db: database, log: log}
	if err := m.run(*mode, *dir); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
}

type migrator struct {
	db  *sql.DB
	log *zap.Logger
}

func (m *migrator) run(mode, dir string) error {
	if _, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
	`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	switch mode {
	case "up":
		return m.up(files)
	case "down":
		return m.down(files)
	}
	return fmt.Errorf("unknown mode %q (use 'up' or 'down')", mode)
}

func (m *migrator) up(files []string) error {
	for _, file := range files {
		version := filepath.Base(file)

		var applied bool
		err := m.db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
		).Scan(&applied)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", version, err)
		}
		if applied {
			m.log.Info("migration already applied", zap.String("version", version))
			continue
		}

		stmt, err := readSection(file, upMarker)
		if err != nil {
			return err
		}

		m.log.Info("applying migration", zap.String("version", version))
		if _, err := m.db.Exec(stmt); err != nil {
			return fmt.Errorf("apply %s: %w", version, err)
		}
		if _, err := m.db.Exec(
			`INSERT INTO schema_migrations (version) VALUES ($1)`, version,
		); err != nil {
			return fmt.Errorf("record %s: %w", version, err)
		}
	}

	m.log.Info("all migrations applied")
	return nil
}

func (m *migrator) down(files []string) error {
	var last string
	err := m.db.QueryRow(
		`SELECT version FROM schema_migrations ORDER BY applied_at DESC LIMIT 1`,
	).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		m.log.Warn("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("find last migration: %w", err)
	}

	var file string
	for _, f := range files {
		if filepath.Base(f) == last {
			file = f
			break
		}
	}
	if file == "" {
		return fmt.Errorf("migration file missing for version %s", last)
	}

	stmt, err := readSection(file, downMarker)
	if err != nil {
		return err
	}

	m.log.Info("rolling back migration", zap.String("version", last))
	if _, err := m.db.Exec(stmt); err != nil {
		return fmt.Errorf("roll back %s: %w", last, err)
	}
	if _, err := m.db.Exec(
		`DELETE FROM schema_migrations WHERE version = $1`, last,
	); err != nil {
		return fmt.Errorf("unrecord %s: %w", last, err)
	}

	return nil
}

// readSection pulls the statements between the section marker and the next
// marker (or end of file).
func readSection(file, marker string) (string, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", file, err)
	}

	var sb strings.Builder
	inSection := false
	for _, line := range strings.Split(string(content), "\n") {
		switch {
		case strings.HasPrefix(line, marker):
			inSection = true
		case inSection && strings.HasPrefix(line, "-- +migrate"):
			return sb.String(), nil
		case inSection:
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
