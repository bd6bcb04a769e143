// Package logger собирает zap-логгер по окружению и уровню из конфигурации.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Zap struct {
	*zap.Logger
}

// New возвращает development-логгер для ENV=dev и JSON-логгер для остальных окружений.
func New(env, level string) (*Zap, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("неверный уровень логирования %q: %w", level, err)
	}

	var cfg zap.Config
	if env == "dev" || env == "local" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &Zap{Logger: l.With(zap.String("env", env))}, nil
}

func Nop() *Zap {
	return &Zap{Logger: zap.NewNop()}
}
