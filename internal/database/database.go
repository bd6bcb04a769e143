package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"mailSuite/internal/config"
	"mailSuite/internal/logger"
)

type Database struct {
	*gorm.DB
}

// New подключается к PostgreSQL по настройкам DB_*.
func New(cfg *config.Cfg, log *logger.Zap) (*Database, error) {
	db, err := Open(postgres.Open(cfg.Database.DSN()))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("получение пула соединений: %w", err)
	}
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("проверка соединения с БД: %w", err)
	}

	log.Info("Подключение к БД установлено",
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.Name))
	return db, nil
}

// Open открывает GORM поверх произвольного диалекта, в тестах - поверх sqlmock.
func Open(dialector gorm.Dialector) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("подключение к БД: %w", err)
	}
	return &Database{DB: db}, nil
}

func (d *Database) Close(log *logger.Zap) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		log.Error("Ошибка получения соединения с БД", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("Ошибка закрытия соединения с БД", zap.Error(err))
	}
}
