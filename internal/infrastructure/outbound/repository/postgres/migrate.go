package postgres

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	ports "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/infrastructure/config"
)

// MigrationURL turns the database config into a URL for the pgx/v5 migrate
// driver.
func MigrationURL(cfg config.Database) string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.DbName)
}

// Migrate applies every pending up migration found in cfg.MigrationsPath.
// An already current schema is not an error.
func Migrate(cfg config.Database, log ports.Logger) error {
	m, err := migrate.New("file://"+cfg.MigrationsPath, MigrationURL(cfg))
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn("Failed to close migrator", slog.Any("source_error", srcErr), slog.Any("db_error", dbErr))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database schema already at latest version")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		log.Warn("Could not read schema version", slog.String("error", err.Error()))
		return nil
	}
	log.Info("Database migrations applied", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}
