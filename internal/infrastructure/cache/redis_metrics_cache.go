// Package cache implementa ports.MetricsCache sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
)

// MetricsKey clave de la proyección de métricas.
const MetricsKey = "cajaplus:metricas"

// RedisMetricsCache guarda la proyección como JSON con TTL.
// Los errores de Redis se registran y se tratan como fallo de caché.
type RedisMetricsCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisMetricsCache construye el cliente. No valida conectividad; usar Ping.
func NewRedisMetricsCache(addr, password string, db int, ttl time.Duration, log zerolog.Logger) *RedisMetricsCache {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 2 * time.Second,
	})
	return &RedisMetricsCache{client: client, ttl: ttl, log: log}
}

func (c *RedisMetricsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisMetricsCache) Close() error {
	return c.client.Close()
}

func (c *RedisMetricsCache) Get(ctx context.Context) (*dto.MetricsDTO, bool) {
	val, err := c.client.Get(ctx, MetricsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("cache: get métricas")
		return nil, false
	}
	var m dto.MetricsDTO
	if err := json.Unmarshal(val, &m); err != nil {
		c.log.Warn().Err(err).Msg("cache: métricas ilegibles")
		return nil, false
	}
	return &m, true
}

func (c *RedisMetricsCache) Set(ctx context.Context, m *dto.MetricsDTO) {
	if m == nil {
		return
	}
	payload, err := json.Marshal(m)
	if err != nil {
		c.log.Warn().Err(err).Msg("cache: serializar métricas")
		return
	}
	if err := c.client.Set(ctx, MetricsKey, payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache: set métricas")
	}
}

func (c *RedisMetricsCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, MetricsKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache: invalidar métricas")
	}
}
