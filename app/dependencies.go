package app

import (
	"go.uber.org/zap"

	"github.com/formywor/join-gateway/config"
	"github.com/formywor/join-gateway/handlers"
	"github.com/formywor/join-gateway/services/relay"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	Relay *relay.Service

	JoinHandler   *handlers.JoinHandler
	HealthHandler *handlers.HealthHandler
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(cfg *config.Config, logger *zap.Logger) *Dependencies {
	relayService := relay.NewService(cfg, logger)

	deps := &Dependencies{
		Config:        cfg,
		Logger:        logger,
		Relay:         relayService,
		JoinHandler:   handlers.NewJoinHandler(relayService, logger),
		HealthHandler: handlers.NewHealthHandler(cfg.Upstream),
	}

	if !cfg.Upstream.Configured() {
		logger.Warn("no upstream targets or base URL configured; join requests will fail")
	}

	logger.Info("all dependencies initialized",
		zap.Strings("upstream_targets", cfg.Upstream.Targets),
		zap.String("upstream_base_url", cfg.Upstream.BaseURL),
		zap.Duration("upstream_timeout", cfg.Upstream.Timeout))
	return deps
}
