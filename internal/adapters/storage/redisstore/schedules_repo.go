package redisstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"caretrack/internal/domain/schedules"

	"github.com/redis/go-redis/v9"
)

// maxWatchRetries acota los reintentos de RecordDose ante escrituras concurrentes.
const maxWatchRetries = 5

type SchedulesRepo struct {
	rdb *redis.Client
}

func (r *SchedulesRepo) Create(ctx context.Context, s schedules.Schedule) error {
	doc, err := encodeSchedule(s)
	if err != nil {
		return err
	}
	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, scheduleKey(s.ID), doc, 0)
		p.SAdd(ctx, scheduleIDsKey, s.ID)
		return nil
	})
	return err
}

func (r *SchedulesRepo) GetByID(ctx context.Context, id string) (schedules.Schedule, error) {
	return getSchedule(ctx, r.rdb, id)
}

// getter cubre tanto *redis.Client como *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func getSchedule(ctx context.Context, c getter, id string) (schedules.Schedule, error) {
	raw, err := c.Get(ctx, scheduleKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return schedules.Schedule{}, schedules.ErrNotFound
	}
	if err != nil {
		return schedules.Schedule{}, err
	}
	s, err := decodeSchedule(raw)
	if err != nil {
		return schedules.Schedule{}, fmt.Errorf("decode schedule %s: %w", id, err)
	}
	return s, nil
}

func (r *SchedulesRepo) List(ctx context.Context) ([]schedules.Schedule, error) {
	out, err := loadMembers(ctx, r.rdb, scheduleIDsKey, scheduleKey, decodeSchedule)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartAt.Equal(out[j].StartAt) {
			return out[i].StartAt.Before(out[j].StartAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Update reescribe el documento solo si ya existe (SET XX).
func (r *SchedulesRepo) Update(ctx context.Context, s schedules.Schedule) error {
	doc, err := encodeSchedule(s)
	if err != nil {
		return err
	}
	ok, err := r.rdb.SetXX(ctx, scheduleKey(s.ID), doc, redis.KeepTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return schedules.ErrNotFound
	}
	return nil
}

func (r *SchedulesRepo) Delete(ctx context.Context, id string) error {
	return removeMember(ctx, r.rdb, scheduleIDsKey, scheduleKey(id), id, schedules.ErrNotFound)
}

// RecordDose vigila la clave del schedule y escribe el schedule y la entrada
// del historial en un mismo MULTI. Si otro cliente toca el schedule en el
// medio, se reintenta.
func (r *SchedulesRepo) RecordDose(ctx context.Context, id string, d schedules.Dose) (schedules.Schedule, error) {
	key := scheduleKey(id)
	var updated schedules.Schedule

	txf := func(tx *redis.Tx) error {
		s, err := getSchedule(ctx, tx, id)
		if err != nil {
			return err
		}

		taken := d.TakenAt
		s.LastTakenAt = &taken

		doc, err := encodeSchedule(s)
		if err != nil {
			return err
		}
		entry, err := encodeEntry(d.Entry(s))
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, doc, redis.KeepTTL)
			p.ZAdd(ctx, historyKey, redis.Z{Score: float64(taken.UnixMilli()), Member: entry})
			return nil
		})
		if err != nil {
			return err
		}
		updated = s
		return nil
	}

	for i := 0; i < maxWatchRetries; i++ {
		err := r.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return schedules.Schedule{}, err
		}
		return updated, nil
	}
	return schedules.Schedule{}, fmt.Errorf("record dose %s: too many concurrent writes", id)
}
