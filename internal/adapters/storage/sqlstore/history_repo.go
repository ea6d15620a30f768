package sqlstore

import (
	"context"
	"strings"
	"time"

	"caretrack/internal/domain/history"

	"github.com/jmoiron/sqlx"
)

type HistoryRepo struct {
	db *sqlx.DB
}

func NewHistoryRepo(db *sqlx.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

type entryRow struct {
	ID             string `db:"id"`
	Kind           string `db:"kind"`
	CreatedAt      int64  `db:"created_at"`
	Author         string `db:"author"`
	MedicationName string `db:"medication_name"`
	Dosage         string `db:"dosage"`
	Note           string `db:"note"`
	ScheduleID     string `db:"schedule_id"`
	Message        string `db:"message"`
}

func (r *HistoryRepo) Append(ctx context.Context, e history.Entry) error {
	return insertEntry(ctx, r.db, e)
}

func (r *HistoryRepo) List(ctx context.Context, filter history.ListFilter) ([]history.Entry, error) {
	var (
		where []string
		args  []any
	)
	if filter.ScheduleID != "" {
		where = append(where, "schedule_id = ?")
		args = append(args, filter.ScheduleID)
	}
	if len(filter.Kinds) > 0 {
		kinds := make([]string, 0, len(filter.Kinds))
		for _, k := range filter.Kinds {
			kinds = append(kinds, string(k))
		}
		where = append(where, "kind IN (?)")
		args = append(args, kinds)
	}

	query := `SELECT id, kind, created_at, author, medication_name, dosage, note, schedule_id, message FROM history_entries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, history.NormalizeLimit(filter.Limit))

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}

	var rows []entryRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	out := make([]history.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, history.Entry{
			ID:             row.ID,
			Kind:           history.Kind(row.Kind),
			CreatedAt:      time.UnixMilli(row.CreatedAt),
			Author:         row.Author,
			MedicationName: row.MedicationName,
			Dosage:         row.Dosage,
			Note:           row.Note,
			ScheduleID:     row.ScheduleID,
			Message:        row.Message,
		})
	}
	return out, nil
}

func insertEntry(ctx context.Context, ex sqlx.ExtContext, e history.Entry) error {
	_, err := sqlx.NamedExecContext(ctx, ex, `
		INSERT INTO history_entries (
			id, kind, created_at, author,
			medication_name, dosage, note, schedule_id,
			message
		) VALUES (
			:id, :kind, :created_at, :author,
			:medication_name, :dosage, :note, :schedule_id,
			:message
		)
	`, entryRow{
		ID:             e.ID,
		Kind:           string(e.Kind),
		CreatedAt:      e.CreatedAt.UnixMilli(),
		Author:         e.Author,
		MedicationName: e.MedicationName,
		Dosage:         e.Dosage,
		Note:           e.Note,
		ScheduleID:     e.ScheduleID,
		Message:        e.Message,
	})
	return err
}
