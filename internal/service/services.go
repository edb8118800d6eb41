package service

import (
	"github.com/asig/closed-loop/internal/config"
	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/scheduler"
	"github.com/asig/closed-loop/internal/store"
	"github.com/asig/closed-loop/internal/utils"
	"github.com/asig/closed-loop/internal/validators"
)

// Services aggregates the engine's service layer.
type Services struct {
	AuthService       AuthService
	CollectionService CollectionService
	ItemService       ItemService
	StatsService      StatsService
}

// NewServices wires the services to the repositories, the credential
// verifier chosen by configuration, and the shared clock.
func NewServices(repos *store.Repositories, verifier CredentialVerifier, cfg config.App, clock utils.Clock, log *logger.Logger) *Services {
	validator := validators.NewReviewDataValidator()
	sched := scheduler.NewEbbinghaus()

	return &Services{
		AuthService:       NewAuthService(verifier, repos.Users, validator, cfg, log),
		CollectionService: NewCollectionService(repos.Collections, validator, log),
		ItemService:       NewItemService(repos.Items, repos.Collections, sched, clock, validator, log),
		StatsService:      NewStatsService(repos.Items, clock, log),
	}
}
