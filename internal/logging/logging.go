package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New monta o logger dos binários: console, debug em modo desenvolvimento, info em produção.
func New(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar logger: %w", err)
	}
	return logger.Sugar(), nil
}
