package sqlstore

import (
	"caretrack/internal/domain/catalog"
	"caretrack/internal/domain/history"
	"caretrack/internal/domain/restrictions"
	"caretrack/internal/domain/schedules"

	"github.com/jmoiron/sqlx"
)

// Store agrupa los repos sobre una misma conexión (Postgres o SQLite).
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Schedules() schedules.Repository       { return NewSchedulesRepo(s.db) }
func (s *Store) History() history.Repository           { return NewHistoryRepo(s.db) }
func (s *Store) Medications() catalog.Repository       { return NewMedicationsRepo(s.db) }
func (s *Store) Restrictions() restrictions.Repository { return NewRestrictionsRepo(s.db) }

func (s *Store) Close() error { return s.db.Close() }
