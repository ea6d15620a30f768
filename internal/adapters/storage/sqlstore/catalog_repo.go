package sqlstore

import (
	"context"

	"caretrack/internal/domain/catalog"
	"caretrack/internal/domain/restrictions"

	"github.com/jmoiron/sqlx"
)

type MedicationsRepo struct {
	db *sqlx.DB
}

func NewMedicationsRepo(db *sqlx.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

type medicationRow struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Purpose string `db:"purpose"`
}

func (r *MedicationsRepo) Create(ctx context.Context, m catalog.Medication) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO medications (id, name, purpose) VALUES (:id, :name, :purpose)`,
		medicationRow{ID: m.ID, Name: m.Name, Purpose: string(m.Purpose)})
	return err
}

func (r *MedicationsRepo) List(ctx context.Context) ([]catalog.Medication, error) {
	var rows []medicationRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name, purpose FROM medications`); err != nil {
		return nil, err
	}
	out := make([]catalog.Medication, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.Medication{ID: row.ID, Name: row.Name, Purpose: catalog.Purpose(row.Purpose)})
	}
	return out, nil
}

func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM medications WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return expectOne(res, catalog.ErrNotFound)
}

type RestrictionsRepo struct {
	db *sqlx.DB
}

func NewRestrictionsRepo(db *sqlx.DB) *RestrictionsRepo {
	return &RestrictionsRepo{db: db}
}

type restrictionRow struct {
	ID       string `db:"id"`
	Category string `db:"category"`
	Title    string `db:"title"`
	Details  string `db:"details"`
}

func (r *RestrictionsRepo) Create(ctx context.Context, it restrictions.Restriction) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO restrictions (id, category, title, details) VALUES (:id, :category, :title, :details)`,
		restrictionRow{ID: it.ID, Category: string(it.Category), Title: it.Title, Details: it.Details})
	return err
}

func (r *RestrictionsRepo) List(ctx context.Context) ([]restrictions.Restriction, error) {
	var rows []restrictionRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, category, title, details FROM restrictions`); err != nil {
		return nil, err
	}
	out := make([]restrictions.Restriction, 0, len(rows))
	for _, row := range rows {
		out = append(out, restrictions.Restriction{
			ID:       row.ID,
			Category: restrictions.Category(row.Category),
			Title:    row.Title,
			Details:  row.Details,
		})
	}
	return out, nil
}

func (r *RestrictionsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM restrictions WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return expectOne(res, restrictions.ErrNotFound)
}
