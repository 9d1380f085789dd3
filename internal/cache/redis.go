package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// Redis agrupa o cliente e o locker. Um *Redis nil é válido: leituras
// dão miss, escritas são ignoradas e os locks são concedidos sem coordenação.
type Redis struct {
	client *redis.Client
	locker *redislock.Client
}

// Conectar retorna nil quando o endereço está vazio
func Conectar(ctx context.Context, endereco, senha string, db int) (*Redis, error) {
	if endereco == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     endereco,
		Password: senha,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("falha ao conectar no redis: %w", err)
	}
	return Novo(client), nil
}

func Novo(client *redis.Client) *Redis {
	return &Redis{client: client, locker: redislock.New(client)}
}

func (r *Redis) GetObject(ctx context.Context, key string, dest any) (bool, error) {
	if r == nil {
		return false, nil
	}
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetObject(ctx context.Context, key string, obj any, exp time.Duration) error {
	if r == nil {
		return nil
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, b, exp).Err()
}

func (r *Redis) Remove(ctx context.Context, keys ...string) error {
	if r == nil {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Lock obtém um lock exclusivo. O retorno é a função de liberação.
// Sem redis, ou se o lock não for obtido a tempo, segue sem coordenação
// e o chamador depende das restrições do banco.
func (r *Redis) Lock(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	noop := func() {}
	if r == nil {
		return noop, nil
	}
	lock, err := r.locker.Obtain(ctx, "lock:"+key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 20),
	})
	if err != nil {
		return noop, err
	}
	return func() { _ = lock.Release(context.Background()) }, nil
}
