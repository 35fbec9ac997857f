package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Caisse-api/internal/application/sales"
)

var _ sales.Cache = (*RedisCache)(nil)

// RedisCache implementa el cache de lecturas sobre Redis.
// Los fallos del backend se tratan como miss: el cache nunca
// tumba una venta ni una consulta.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache construye el adaptador sobre un cliente ya conectado.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get devuelve el valor y true en hit; ([]byte(nil), false) en miss o error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("cache get falló")
		}
		return nil, false
	}
	return val, true
}

// Set guarda el valor con TTL. Los errores solo se loguean.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set falló")
	}
}

// Delete invalida una clave. Los errores solo se loguean.
func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache delete falló")
	}
}
