package redisstore

import (
	"context"

	"caretrack/internal/domain/history"

	"github.com/redis/go-redis/v9"
)

// scanBatch es cuántas entradas se leen por vuelta cuando hay filtro.
const scanBatch = 200

type HistoryRepo struct {
	rdb *redis.Client
}

func (r *HistoryRepo) Append(ctx context.Context, e history.Entry) error {
	doc, err := encodeEntry(e)
	if err != nil {
		return err
	}
	return r.rdb.ZAdd(ctx, historyKey, redis.Z{Score: float64(e.CreatedAt.UnixMilli()), Member: doc}).Err()
}

// List recorre el zset de mayor a menor score. Sin filtro lee exactamente
// limit entradas; con filtro avanza por lotes hasta completar limit.
func (r *HistoryRepo) List(ctx context.Context, filter history.ListFilter) ([]history.Entry, error) {
	limit := history.NormalizeLimit(filter.Limit)
	filtered := filter.ScheduleID != "" || len(filter.Kinds) > 0

	batch := int64(limit)
	if filtered {
		batch = scanBatch
	}

	out := make([]history.Entry, 0, limit)
	for start := int64(0); len(out) < limit; start += batch {
		raws, err := r.rdb.ZRevRange(ctx, historyKey, start, start+batch-1).Result()
		if err != nil {
			return nil, err
		}
		for _, raw := range raws {
			e, err := decodeEntry([]byte(raw))
			if err != nil || !filter.Matches(e) {
				continue
			}
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
		if int64(len(raws)) < batch {
			break
		}
	}
	return out, nil
}
