// Package redisstore guarda los datos en Redis con el layout de claves y JSON
// (camelCase, epoch ms) que ya usa la app web, así ambas comparten la base.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	historyKey        = "care:history" // zset, score = createdAt
	scheduleIDsKey    = "care:schedules"
	schedulePrefix    = "care:schedule:"
	medicationIDsKey  = "care:meds"
	medicationPrefix  = "care:med:"
	restrictionIDsKey = "care:restrictions"
	restrictionPrefix = "care:restriction:"
)

func scheduleKey(id string) string    { return schedulePrefix + id }
func medicationKey(id string) string  { return medicationPrefix + id }
func restrictionKey(id string) string { return restrictionPrefix + id }

// Open parsea una URL redis:// o rediss:// y verifica la conexión.
func Open(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// loadMembers lee un set de ids y sus documentos JSON. Los documentos
// faltantes o corruptos se omiten.
func loadMembers[T any](ctx context.Context, rdb redis.Cmdable, idsKey string, keyOf func(string) string, decode func([]byte) (T, error)) ([]T, error) {
	ids, err := rdb.SMembers(ctx, idsKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, keyOf(id))
	}
	raws, err := rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		s, ok := raw.(string)
		if !ok {
			continue
		}
		v, err := decode([]byte(s))
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// removeMember borra el documento y su id del set; notFound si no estaba.
func removeMember(ctx context.Context, rdb redis.Cmdable, idsKey, key, id string, notFound error) error {
	var srem *redis.IntCmd
	_, err := rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		srem = p.SRem(ctx, idsKey, id)
		p.Del(ctx, key)
		return nil
	})
	if err != nil {
		return err
	}
	if srem.Val() == 0 {
		return notFound
	}
	return nil
}
