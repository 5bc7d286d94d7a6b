package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/eduspark/eduspark/core/academics"
)

type academicsRepository struct {
	db sqlxDB
}

var _ academics.Repository = (*academicsRepository)(nil)

func NewAcademicsRepository(db *sqlx.DB) academics.Repository {
	return &academicsRepository{db: db}
}

func (repo *academicsRepository) CreateClass(ctx context.Context, cls academics.Class) (academics.Class, error) {
	var out academics.Class
	err := repo.db.GetContext(ctx, &out, `
		INSERT INTO classes (id, name, section, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *`,
		cls.ID, cls.Name, cls.Section, cls.CreatedAt, cls.UpdatedAt,
	)
	if err != nil {
		return academics.Class{}, errors.Wrap(err, "creating class")
	}
	return out, nil
}

func (repo *academicsRepository) QueryAllClasses(ctx context.Context) ([]academics.Class, error) {
	var classes []academics.Class
	if err := repo.db.SelectContext(ctx, &classes, `SELECT * FROM classes ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	return classes, nil
}

func (repo *academicsRepository) GetClassByID(ctx context.Context, id string) (academics.Class, error) {
	var cls academics.Class
	err := repo.db.GetContext(ctx, &cls, `SELECT * FROM classes WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return academics.Class{}, academics.ErrClassNotFound
		}
		return academics.Class{}, errors.Wrap(err, "getting class")
	}
	return cls, nil
}

func (repo *academicsRepository) DeleteClass(ctx context.Context, id string) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return nil
}

func (repo *academicsRepository) CreateSubject(ctx context.Context, sub academics.Subject) (academics.Subject, error) {
	var out academics.Subject
	err := repo.db.GetContext(ctx, &out, `
		INSERT INTO subjects (id, name, class_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *`,
		sub.ID, sub.Name, sub.ClassName, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return academics.Subject{}, errors.Wrap(err, "creating subject")
	}
	return out, nil
}

func (repo *academicsRepository) QueryAllSubjects(ctx context.Context) ([]academics.Subject, error) {
	var subjects []academics.Subject
	if err := repo.db.SelectContext(ctx, &subjects, `SELECT * FROM subjects ORDER BY class_name, name`); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	return subjects, nil
}

func (repo *academicsRepository) FilterSubjectsByClass(ctx context.Context, className string) ([]academics.Subject, error) {
	var subjects []academics.Subject
	err := repo.db.SelectContext(ctx, &subjects,
		`SELECT * FROM subjects WHERE class_name = $1 ORDER BY name`, className)
	if err != nil {
		return nil, errors.Wrap(err, "filtering subjects by class")
	}
	return subjects, nil
}

func (repo *academicsRepository) DeleteSubject(ctx context.Context, id string) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	return nil
}
