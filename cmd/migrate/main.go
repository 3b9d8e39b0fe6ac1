package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/kikoi/portfolio-backend/internal/config"
	"github.com/kikoi/portfolio-backend/internal/logging"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   apply pending migrations
  status      list migrations and whether they are applied
  down        roll back the most recent migration
  reset       drop every table and recreate it from the consolidated schema
  fresh       drop every table and apply all migrations in order`)
	os.Exit(1)
}

func main() {
	_ = godotenv.Load()
	logging.Setup(false)

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logging.Fatal("DATABASE_URL is not set")
	}
	cfg := &config.Config{DatabaseURL: dbURL, DatabaseServiceKey: os.Getenv("DATABASE_SERVICE_KEY")}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	dir := findMigrationDir()

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "":
		runUp(ctx, pool, dir)
	case "status":
		runStatus(ctx, pool, dir)
	case "down":
		runDown(ctx, pool, dir)
	case "reset":
		runDropAll(ctx, pool, dir)
		runConsolidated(ctx, pool, dir)
	case "fresh":
		runDropAll(ctx, pool, dir)
		runUp(ctx, pool, dir)
	default:
		usage()
	}
}

func findMigrationDir() string {
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}

// upMigrations returns migration names (without ".up.sql") in apply order.
func upMigrations(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Fatal("read migrations dir failed", "dir", dir, "error", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, strings.TrimSuffix(e.Name(), ".up.sql"))
		}
	}
	sort.Strings(names)
	return names
}

func ensureSchemaMigrations(ctx context.Context, pool *pgxpool.Pool) {
	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		logging.Fatal("create schema_migrations failed", "error", err)
	}
}

func appliedSet(ctx context.Context, pool *pgxpool.Pool) map[string]bool {
	rows, err := pool.Query(ctx, "SELECT name FROM schema_migrations")
	if err != nil {
		logging.Fatal("read schema_migrations failed", "error", err)
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			logging.Fatal("scan schema_migrations failed", "error", err)
		}
		applied[name] = true
	}
	if err := rows.Err(); err != nil {
		logging.Fatal("read schema_migrations failed", "error", err)
	}
	return applied
}

func execFile(ctx context.Context, pool *pgxpool.Pool, path string) {
	sql, err := os.ReadFile(path)
	if err != nil {
		logging.Fatal("read migration failed", "file", path, "error", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		logging.Fatal("migration failed", "file", path, "error", err)
	}
}

func runUp(ctx context.Context, pool *pgxpool.Pool, dir string) {
	ensureSchemaMigrations(ctx, pool)
	applied := appliedSet(ctx, pool)

	count := 0
	for _, name := range upMigrations(dir) {
		if applied[name] {
			continue
		}
		execFile(ctx, pool, filepath.Join(dir, name+".up.sql"))
		if _, err := pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			logging.Fatal("record migration failed", "migration", name, "error", err)
		}
		count++
		slog.Info("migration applied", "migration", name)
	}

	if count == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", count)
	}
}

func runStatus(ctx context.Context, pool *pgxpool.Pool, dir string) {
	ensureSchemaMigrations(ctx, pool)
	applied := appliedSet(ctx, pool)
	for _, name := range upMigrations(dir) {
		state := "pending"
		if applied[name] {
			state = "applied"
		}
		fmt.Printf("%-8s %s\n", state, name)
	}
}

func runDown(ctx context.Context, pool *pgxpool.Pool, dir string) {
	ensureSchemaMigrations(ctx, pool)

	var name string
	err := pool.QueryRow(ctx, "SELECT name FROM schema_migrations ORDER BY name DESC LIMIT 1").Scan(&name)
	if err != nil {
		slog.Info("nothing to roll back")
		return
	}
	execFile(ctx, pool, filepath.Join(dir, name+".down.sql"))
	if _, err := pool.Exec(ctx, "DELETE FROM schema_migrations WHERE name = $1", name); err != nil {
		logging.Fatal("unrecord migration failed", "migration", name, "error", err)
	}
	slog.Info("migration rolled back", "migration", name)
}

func runDropAll(ctx context.Context, pool *pgxpool.Pool, dir string) {
	slog.Info("dropping all tables")
	execFile(ctx, pool, filepath.Join(dir, "000_drop_all.sql"))
}

// runConsolidated applies the single-file schema and marks every numbered
// migration as applied.
func runConsolidated(ctx context.Context, pool *pgxpool.Pool, dir string) {
	slog.Info("applying consolidated schema")
	execFile(ctx, pool, filepath.Join(dir, "000_consolidated.sql"))

	ensureSchemaMigrations(ctx, pool)
	names := upMigrations(dir)
	for _, name := range names {
		if _, err := pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name); err != nil {
			logging.Fatal("record migration failed", "migration", name, "error", err)
		}
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(names))
}
