// Package cache: adaptador Redis para el caché de resúmenes de stock.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/inventario-lotes/internal/application/stock"
	"github.com/tu-usuario/inventario-lotes/pkg/config"
)

var _ stock.SummaryCache = (*RedisCache)(nil)

// RedisCache implementa stock.SummaryCache sobre Redis. Vive delante del
// agregador como caché de resultados de corta vida; todas sus fallas las
// absorbe el agregador (fail open).
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache conecta a Redis y verifica la conexión con un PING.
func NewRedisCache(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{rdb: rdb}, nil
}

// Get devuelve (valor, true, nil) en hit y ("", false, nil) en miss.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

// Set guarda el valor con la vigencia indicada.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete descarta la clave. Borrar una clave inexistente no es error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close cierra la conexión subyacente.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
