package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/eduspark/eduspark/core/attendance"
)

type attendanceRepository struct {
	db sqlxDB
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) CreateRecord(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	var out attendance.Record
	err := repo.db.GetContext(ctx, &out, `
		INSERT INTO attendance_records (id, person_id, date, status, check_in, check_out, notes,
		                                created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING *`,
		rec.ID, rec.PersonID, rec.Date, rec.Status, rec.CheckIn, rec.CheckOut, rec.Notes,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, errors.Wrap(err, "creating attendance record")
	}
	return out, nil
}

func (repo *attendanceRepository) QueryRecords(ctx context.Context, date string) ([]attendance.Record, error) {
	query := `SELECT * FROM attendance_records`
	var args []interface{}
	if date != "" {
		query += ` WHERE date = $1`
		args = append(args, date)
	}
	query += ` ORDER BY date DESC, created_at DESC`

	var recs []attendance.Record
	if err := repo.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying attendance records")
	}
	return recs, nil
}

func (repo *attendanceRepository) GetRecordByID(ctx context.Context, id string) (attendance.Record, error) {
	var rec attendance.Record
	err := repo.db.GetContext(ctx, &rec, `SELECT * FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attendance.Record{}, attendance.ErrNotFound
		}
		return attendance.Record{}, errors.Wrap(err, "getting attendance record")
	}
	return rec, nil
}

func (repo *attendanceRepository) UpdateRecord(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	var out attendance.Record
	err := repo.db.GetContext(ctx, &out, `
		UPDATE attendance_records
		SET status = $2, check_out = $3, notes = $4, updated_at = $5
		WHERE id = $1
		RETURNING *`,
		rec.ID, rec.Status, rec.CheckOut, rec.Notes, rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attendance.Record{}, attendance.ErrNotFound
		}
		return attendance.Record{}, errors.Wrap(err, "updating attendance record")
	}
	return out, nil
}
