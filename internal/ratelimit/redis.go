package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Limiter é um rate limiter de janela fixa sobre Redis, usado nos
// endpoints de credencial (login/register). Erro de Redis nunca derruba
// a requisição: fail-open.
type Limiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewLimiter(redisClient *redis.Client, limit int, window time.Duration, prefix string) *Limiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	if prefix == "" {
		prefix = "ratelimit"
	}

	return &Limiter{
		redis:  redisClient,
		limit:  limit,
		window: window,
		prefix: prefix,
	}
}

// NewClientFromURL abre um cliente Redis a partir de REDIS_URL.
func NewClientFromURL(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

// Allow incrementa o contador da chave e compara com o limite da janela.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.redis == nil {
		return true, nil
	}

	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)

	pipe := l.redis.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return true, fmt.Errorf("redis error: %w", err)
	}

	return incr.Val() <= int64(l.limit), nil
}

// Reset limpa o contador de uma chave.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if l == nil || l.redis == nil {
		return nil
	}
	return l.redis.Del(ctx, fmt.Sprintf("%s:%s", l.prefix, key)).Err()
}
