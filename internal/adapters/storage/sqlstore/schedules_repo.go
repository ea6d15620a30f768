package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"caretrack/internal/domain/schedules"

	"github.com/jmoiron/sqlx"
)

type SchedulesRepo struct {
	db *sqlx.DB
}

func NewSchedulesRepo(db *sqlx.DB) *SchedulesRepo {
	return &SchedulesRepo{db: db}
}

type scheduleRow struct {
	ID             string        `db:"id"`
	MedicationName string        `db:"medication_name"`
	Dosage         string        `db:"dosage"`
	FrequencyMS    int64         `db:"frequency_ms"`
	StartAt        int64         `db:"start_at"`
	EndAt          sql.NullInt64 `db:"end_at"`
	LastTakenAt    sql.NullInt64 `db:"last_taken_at"`
	Notes          string        `db:"notes"`
}

const scheduleColumns = `id, medication_name, dosage, frequency_ms, start_at, end_at, last_taken_at, notes`

func (r *SchedulesRepo) Create(ctx context.Context, s schedules.Schedule) error {
	row := toScheduleRow(s)
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO schedules (`+scheduleColumns+`)
		VALUES (:id, :medication_name, :dosage, :frequency_ms, :start_at, :end_at, :last_taken_at, :notes)
	`, row)
	return err
}

func (r *SchedulesRepo) GetByID(ctx context.Context, id string) (schedules.Schedule, error) {
	return getSchedule(ctx, r.db, id)
}

func (r *SchedulesRepo) List(ctx context.Context) ([]schedules.Schedule, error) {
	var rows []scheduleRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+scheduleColumns+` FROM schedules ORDER BY start_at, id`); err != nil {
		return nil, err
	}

	out := make([]schedules.Schedule, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toSchedule())
	}
	return out, nil
}

func (r *SchedulesRepo) Update(ctx context.Context, s schedules.Schedule) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE schedules
		SET
			medication_name = :medication_name,
			dosage = :dosage,
			frequency_ms = :frequency_ms,
			start_at = :start_at,
			end_at = :end_at,
			last_taken_at = :last_taken_at,
			notes = :notes
		WHERE id = :id
	`, toScheduleRow(s))
	if err != nil {
		return err
	}
	return expectOne(res, schedules.ErrNotFound)
}

func (r *SchedulesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM schedules WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return expectOne(res, schedules.ErrNotFound)
}

// RecordDose actualiza last_taken_at e inserta la entrada del historial en
// la misma transacción.
func (r *SchedulesRepo) RecordDose(ctx context.Context, id string, d schedules.Dose) (schedules.Schedule, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return schedules.Schedule{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE schedules SET last_taken_at = ? WHERE id = ?`), d.TakenAt.UnixMilli(), id)
	if err != nil {
		return schedules.Schedule{}, err
	}
	if err := expectOne(res, schedules.ErrNotFound); err != nil {
		return schedules.Schedule{}, err
	}

	s, err := getSchedule(ctx, tx, id)
	if err != nil {
		return schedules.Schedule{}, err
	}
	if err := insertEntry(ctx, tx, d.Entry(s)); err != nil {
		return schedules.Schedule{}, fmt.Errorf("append dose to history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return schedules.Schedule{}, err
	}
	return s, nil
}

func getSchedule(ctx context.Context, q sqlx.ExtContext, id string) (schedules.Schedule, error) {
	var row scheduleRow
	err := sqlx.GetContext(ctx, q, &row, q.Rebind(`SELECT `+scheduleColumns+` FROM schedules WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schedules.Schedule{}, schedules.ErrNotFound
		}
		return schedules.Schedule{}, err
	}
	return row.toSchedule(), nil
}

func toScheduleRow(s schedules.Schedule) scheduleRow {
	return scheduleRow{
		ID:             s.ID,
		MedicationName: s.MedicationName,
		Dosage:         s.Dosage,
		FrequencyMS:    s.Frequency.Milliseconds(),
		StartAt:        s.StartAt.UnixMilli(),
		EndAt:          nullMillis(s.EndAt),
		LastTakenAt:    nullMillis(s.LastTakenAt),
		Notes:          s.Notes,
	}
}

func (row scheduleRow) toSchedule() schedules.Schedule {
	return schedules.Schedule{
		ID:             row.ID,
		MedicationName: row.MedicationName,
		Dosage:         row.Dosage,
		Frequency:      time.Duration(row.FrequencyMS) * time.Millisecond,
		StartAt:        time.UnixMilli(row.StartAt),
		EndAt:          fromNullMillis(row.EndAt),
		LastTakenAt:    fromNullMillis(row.LastTakenAt),
		Notes:          row.Notes,
	}
}

func nullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func fromNullMillis(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.UnixMilli(v.Int64)
	return &t
}

func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
