package routes

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"credito_tributario/internal/adapter/persistence/repository"
	"credito_tributario/internal/adapter/persistence/snapshot"
	"credito_tributario/internal/infrastructure/cache"
	"credito_tributario/internal/infrastructure/config"
	"credito_tributario/internal/infrastructure/database"
	"credito_tributario/internal/infrastructure/notification"
	"credito_tributario/internal/session"
	"credito_tributario/internal/usecase"
	"credito_tributario/internal/usecase/interfaces"
)

const webhookTimeout = 5 * time.Second

// Dependencies are the use cases served by the router plus what must be
// released on shutdown.
type Dependencies struct {
	Clients   usecase.IClientUseCase
	Proposals usecase.IProposalUseCase
	Contracts usecase.IContractUseCase
	Session   usecase.ISessionUseCase

	dispatcher *notification.Dispatcher
	closers    []io.Closer
}

func newDependencies(ctx context.Context, cfg config.Config) (*Dependencies, error) {
	ddb, err := database.NewDynamoDBClient(ctx, cfg.Dynamo)
	if err != nil {
		return nil, err
	}

	clientRepo := repository.NewClientDynamoRepository(ddb)
	proposalRepo := repository.NewProposalDynamoRepository(ddb)
	contractRepo := repository.NewContractDynamoRepository(ddb)

	if cfg.Dynamo.CreateTables {
		if err := database.EnsureTables(ctx, ddb, clientRepo.TableName(), proposalRepo.TableName(), contractRepo.TableName()); err != nil {
			return nil, err
		}
	}

	deps := &Dependencies{}

	sinks := []notification.Sink{notification.LogSink{}}
	if cfg.WebhookURL != "" {
		sinks = append(sinks, notification.NewWebhookSink(cfg.WebhookURL, webhookTimeout))
	}
	deps.dispatcher = notification.NewDispatcher(cfg.NotificationBuffer, sinks...)

	storage, err := newSnapshotStorage(ctx, cfg, deps)
	if err != nil {
		return nil, err
	}

	queryCache := cache.NewQueryCache(cfg.CacheSize, cfg.CacheTTL)
	registry := session.NewRegistry(storage, clientRepo, deps.dispatcher)

	deps.Clients = usecase.NewClientUseCase(clientRepo, registry, queryCache, deps.dispatcher)
	deps.Proposals = usecase.NewProposalUseCase(proposalRepo, clientRepo, contractRepo, queryCache, deps.dispatcher)
	deps.Contracts = usecase.NewContractUseCase(contractRepo, queryCache, deps.dispatcher)
	deps.Session = usecase.NewSessionUseCase(registry, clientRepo)
	return deps, nil
}

func newSnapshotStorage(ctx context.Context, cfg config.Config, deps *Dependencies) (interfaces.ISnapshotStorage, error) {
	switch cfg.SessionDriver {
	case config.SessionDriverMemory:
		log.Printf("[routes][session] using in-memory session storage, sessions are lost on restart")
		return snapshot.NewMemoryStorage(), nil
	case config.SessionDriverSQLite:
		s, err := snapshot.NewSQLiteStorage(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, s)
		log.Printf("[routes][session] using sqlite session storage path=%s", s.Path())
		return s, nil
	case config.SessionDriverRedis:
		s := snapshot.NewRedisStorage(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
		deps.closers = append(deps.closers, s)
		if err := s.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		log.Printf("[routes][session] using redis session storage addr=%s", cfg.RedisAddr)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown session store driver %q", cfg.SessionDriver)
	}
}

// Close drains the pending notifications and releases the session storage.
func (d *Dependencies) Close(ctx context.Context) {
	if d.dispatcher != nil {
		if err := d.dispatcher.Close(ctx); err != nil {
			log.Printf("[routes][shutdown] notifications not drained err=%v", err)
		}
	}
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			log.Printf("[routes][shutdown] close err=%v", err)
		}
	}
}
