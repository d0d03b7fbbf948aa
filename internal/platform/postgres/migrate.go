package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/seeg/recruiting-platform/internal/config"
	"github.com/seeg/recruiting-platform/internal/platform/logger"
)

// ExpectedSchemaVersion is the migration version this binary was built
// against. RunMigrations fails closed if the database ends up anywhere
// else, so a half-applied or ahead-of-code schema never serves traffic.
const ExpectedSchemaVersion = 1

// RunMigrations executes database migrations
func RunMigrations(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger, migrationsPath string) error {
	log.Info("Starting database migrations", zap.String("path", migrationsPath))

	sourceURL := fmt.Sprintf("file://%s", migrationsPath)

	databaseURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.SSLMode,
	)

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		log.Error("Failed to create migrator", zap.Error(err))
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		version, dirty, vErr := m.Version()
		if vErr != nil {
			log.Error("Failed to get migration version", zap.Error(vErr))
		} else {
			log.Error("Migration failed",
				zap.Error(err),
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		log.Error("Could not get migration version after completion", zap.Error(err))
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	log.Info("Database migrations completed successfully",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)

	if dirty || version != ExpectedSchemaVersion {
		log.Fatal("Database schema version does not match the version this binary expects",
			zap.Uint("version", version),
			zap.Uint("expected", ExpectedSchemaVersion),
			zap.Bool("dirty", dirty),
		)
	}

	return nil
}
