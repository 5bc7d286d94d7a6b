package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/eduspark/eduspark/core/student"
)

type studentRepository struct {
	db sqlxDB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

type studentRow struct {
	student.Student
	Subjects pq.StringArray
}

func (r studentRow) toStudent() student.Student {
	std := r.Student
	std.Subjects = []string(r.Subjects)
	return std
}

func toStudents(rows []studentRow) []student.Student {
	students := make([]student.Student, len(rows))
	for i, row := range rows {
		students[i] = row.toStudent()
	}
	return students
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	var row studentRow
	err := repo.db.GetContext(ctx, &row, `
		INSERT INTO students (id, first_name, last_name, gender, date_of_birth, guardian_name,
		                      guardian_phone, email, class_name, "group", subjects, admitted_at,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING *`,
		std.ID, std.FirstName, std.LastName, std.Gender, std.DateOfBirth, std.GuardianName,
		std.GuardianPhone, std.Email, std.ClassName, std.Group, pq.Array(std.Subjects), std.AdmittedAt,
		std.CreatedAt, std.UpdatedAt,
	)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	return row.toStudent(), nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	var rows []studentRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM students ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return toStudents(rows), nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	var row studentRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM students WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return row.toStudent(), nil
}

func (repo *studentRepository) FilterStudentsByClass(ctx context.Context, className string) ([]student.Student, error) {
	var rows []studentRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM students WHERE class_name = $1 ORDER BY last_name, first_name`, className)
	if err != nil {
		return nil, errors.Wrap(err, "filtering students by class")
	}
	return toStudents(rows), nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	var row studentRow
	err := repo.db.GetContext(ctx, &row, `
		UPDATE students
		SET guardian_phone = $2, email = $3, class_name = $4, "group" = $5, subjects = $6, updated_at = $7
		WHERE id = $1
		RETURNING *`,
		std.ID, std.GuardianPhone, std.Email, std.ClassName, std.Group, pq.Array(std.Subjects), std.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	return row.toStudent(), nil
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id string) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return nil
}
