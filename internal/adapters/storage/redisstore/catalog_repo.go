package redisstore

import (
	"context"
	"encoding/json"

	"caretrack/internal/domain/catalog"
	"caretrack/internal/domain/restrictions"

	"github.com/redis/go-redis/v9"
)

type MedicationsRepo struct {
	rdb *redis.Client
}

func (r *MedicationsRepo) Create(ctx context.Context, m catalog.Medication) error {
	doc, err := json.Marshal(medicationRecord{ID: m.ID, Name: m.Name, Purpose: string(m.Purpose)})
	if err != nil {
		return err
	}
	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, medicationKey(m.ID), doc, 0)
		p.SAdd(ctx, medicationIDsKey, m.ID)
		return nil
	})
	return err
}

func (r *MedicationsRepo) List(ctx context.Context) ([]catalog.Medication, error) {
	return loadMembers(ctx, r.rdb, medicationIDsKey, medicationKey, decodeMedication)
}

func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	return removeMember(ctx, r.rdb, medicationIDsKey, medicationKey(id), id, catalog.ErrNotFound)
}

type RestrictionsRepo struct {
	rdb *redis.Client
}

func (r *RestrictionsRepo) Create(ctx context.Context, it restrictions.Restriction) error {
	doc, err := json.Marshal(restrictionRecord{
		ID:       it.ID,
		Category: string(it.Category),
		Title:    it.Title,
		Details:  it.Details,
	})
	if err != nil {
		return err
	}
	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, restrictionKey(it.ID), doc, 0)
		p.SAdd(ctx, restrictionIDsKey, it.ID)
		return nil
	})
	return err
}

func (r *RestrictionsRepo) List(ctx context.Context) ([]restrictions.Restriction, error) {
	return loadMembers(ctx, r.rdb, restrictionIDsKey, restrictionKey, decodeRestriction)
}

func (r *RestrictionsRepo) Delete(ctx context.Context, id string) error {
	return removeMember(ctx, r.rdb, restrictionIDsKey, restrictionKey(id), id, restrictions.ErrNotFound)
}
