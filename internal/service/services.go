package service

import (
	"time"

	"github.com/kirinyoku/loket-go/internal/domain"
	postgres "github.com/kirinyoku/loket-go/internal/repository/postgres"
	redis "github.com/kirinyoku/loket-go/internal/repository/redis"
	"github.com/kirinyoku/loket-go/internal/service/query"
	"github.com/kirinyoku/loket-go/internal/service/queue"
)

type Services struct {
	Queue *queue.Service
	Query *query.Service
}

type Config struct {
	Query query.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub *redis.QueuePubSub,
	catalog *domain.Catalog,
	cfg Config,
) *Services {
	now := time.Now

	return &Services{
		Queue: queue.New(store.Tickets(), store.Counters(), catalog, cache, pubsub, now),
		Query: query.New(store.Tickets(), catalog, cache, now, cfg.Query),
	}
}
