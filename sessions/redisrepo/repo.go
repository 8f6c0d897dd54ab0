// Package redisrepo stores session records in Redis. Values are serialized
// JSON under "session:"-prefixed keys; Redis owns expiry via per-key TTL.
package redisrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/jrsteele09/go-postlogin-service/internal/config"
	"github.com/jrsteele09/go-postlogin-service/sessions"
)

type Repo struct {
	client *redis.Client
}

var _ sessions.Repo = (*Repo)(nil)

// New wraps an established Redis client. The client is a process-wide
// singleton shared read-only across requests; callers own its lifecycle.
func New(client *redis.Client) *Repo {
	return &Repo{client: client}
}

// NewClient builds a Redis client from configuration. REDIS_URL, when set,
// overrides the discrete host/port/password/db settings.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	if url := cfg.GetRedisURL(); url != "" {
		opts, err := redis.ParseURL(url)
		if err != nil {
			return nil, errors.Wrap(err, "[redisrepo.NewClient] redis.ParseURL")
		}
		return redis.NewClient(opts), nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.GetRedisHost(), cfg.GetRedisPort()),
		Password: cfg.GetRedisPassword(),
		DB:       cfg.GetRedisDB(),
	}), nil
}

func (r *Repo) Put(ctx context.Context, record *sessions.SessionData, ttl time.Duration) error {
	value, err := record.Marshal()
	if err != nil {
		return errors.Wrap(err, "[Repo.Put] marshal")
	}

	if err := r.client.Set(ctx, sessions.Key(record.ChatUsername), value, ttl).Err(); err != nil {
		return errors.Wrap(err, "[Repo.Put] redis SET")
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, chatUsername string) (*sessions.SessionData, error) {
	value, err := r.client.Get(ctx, sessions.Key(chatUsername)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sessions.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Repo.Get] redis GET")
	}

	record, err := sessions.Unmarshal(value)
	if err != nil {
		return nil, errors.Wrap(sessions.ErrCorruptRecord, err.Error())
	}
	return record, nil
}

func (r *Repo) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "[Repo.Ping] redis PING")
	}
	return nil
}
