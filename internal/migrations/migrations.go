// Package migrations применяет SQL-миграции журнала прогонов через golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"mailSuite/internal/config"
	"mailSuite/internal/logger"
)

//go:embed sql/*.sql
var files embed.FS

// Source - встроенные миграции.
func Source() (source.Driver, error) {
	return iofs.New(files, "sql")
}

// Run поднимает схему до последней версии. Без настроенной БД или с MIGRATIONS_ENABLED=false ничего не делает.
func Run(cfg *config.Cfg, log *logger.Zap) error {
	if !cfg.Database.Enabled() {
		log.Info("БД не настроена, миграции пропущены")
		return nil
	}
	if !cfg.Migrations.Enabled {
		log.Info("Миграции отключены")
		return nil
	}

	src, err := Source()
	if err != nil {
		return fmt.Errorf("чтение миграций: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("инициализация миграций: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn("Ошибка закрытия миграций", zap.NamedError("source", srcErr), zap.NamedError("db", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("применение миграций: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("версия схемы: %w", err)
	}
	log.Info("Миграции применены", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
