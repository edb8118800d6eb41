package main

import (
	"context"
	"fmt"

	"github.com/asig/closed-loop/internal/adapter"
	"github.com/asig/closed-loop/internal/config"
	httphandler "github.com/asig/closed-loop/internal/handler/http"
	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/server"
	"github.com/asig/closed-loop/internal/service"
	"github.com/asig/closed-loop/internal/store"
	"github.com/asig/closed-loop/internal/utils"
	"github.com/asig/closed-loop/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("closed-loop-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flushEnabled := cfg.Workers.FlushInterval > 0
	s, err := store.NewStore(ctx, cfg.Storage, flushEnabled, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating store")
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Error().Err(err).Msg("error closing store")
		}
	}()

	repos := store.NewRepositories(s, utils.NewUUIDGenerator(), utils.NewSystemClock(), log)

	verifier, err := newVerifier(cfg, repos, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating credential verifier")
	}

	services := service.NewServices(repos, verifier, cfg.App, utils.NewSystemClock(), log)

	srv, err := server.NewServer(httphandler.NewHandler(services, log).Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if flushEnabled {
		if flusher, ok := s.(workers.Flusher); ok {
			workers.NewWorkers(
				workers.NewFlushWorker(ctx, flusher, cfg.Workers.FlushInterval, log),
			).Run()
		}
	}

	srv.RunServer()
}

// newVerifier picks the credential verification strategy from the config:
// remote mode authenticates against the configured auth service and mirrors
// identities locally, local mode keeps accounts entirely in the store.
func newVerifier(cfg *config.StructuredConfig, repos *store.Repositories, log *logger.Logger) (service.CredentialVerifier, error) {
	if cfg.App.AuthMode != config.AuthModeRemote {
		return service.NewLocalVerifier(repos.Users, log), nil
	}

	gateway, err := adapter.NewHTTPAuthGateway(cfg.Adapter, log)
	if err != nil {
		return nil, err
	}

	return service.NewRemoteVerifier(gateway, repos.Users, repos.Collections, log), nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
