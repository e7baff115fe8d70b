package main

import (
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/config"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/logging"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.NewLogger(cfg.ServiceName, cfg.LogLevel)
}
