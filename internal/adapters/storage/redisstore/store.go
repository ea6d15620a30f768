package redisstore

import (
	"caretrack/internal/domain/catalog"
	"caretrack/internal/domain/history"
	"caretrack/internal/domain/restrictions"
	"caretrack/internal/domain/schedules"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Schedules() schedules.Repository       { return &SchedulesRepo{rdb: s.rdb} }
func (s *Store) History() history.Repository           { return &HistoryRepo{rdb: s.rdb} }
func (s *Store) Medications() catalog.Repository       { return &MedicationsRepo{rdb: s.rdb} }
func (s *Store) Restrictions() restrictions.Repository { return &RestrictionsRepo{rdb: s.rdb} }

func (s *Store) Close() error { return s.rdb.Close() }
