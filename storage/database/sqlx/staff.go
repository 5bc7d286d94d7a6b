package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/eduspark/eduspark/core/staff"
)

type staffRepository struct {
	db sqlxDB
}

var _ staff.Repository = (*staffRepository)(nil)

func NewStaffRepository(db *sqlx.DB) staff.Repository {
	return &staffRepository{db: db}
}

func (repo *staffRepository) CreateEmployee(ctx context.Context, emp staff.Employee) (staff.Employee, error) {
	var out staff.Employee
	err := repo.db.GetContext(ctx, &out, `
		INSERT INTO employees (id, first_name, last_name, email, primary_phone_number, designation,
		                       monthly_salary, is_director, director_id, expected_investment_amount,
		                       share_percentage, joined_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING *`,
		emp.ID, emp.FirstName, emp.LastName, emp.Email, emp.PrimaryPhoneNumber, emp.Designation,
		emp.MonthlySalary, emp.IsDirector, emp.DirectorID, emp.ExpectedInvestmentAmount,
		emp.SharePercentage, emp.JoinedAt, emp.CreatedAt, emp.UpdatedAt,
	)
	if err != nil {
		return staff.Employee{}, errors.Wrap(err, "creating employee")
	}
	return out, nil
}

func (repo *staffRepository) QueryAllEmployees(ctx context.Context) ([]staff.Employee, error) {
	var emps []staff.Employee
	err := repo.db.SelectContext(ctx, &emps, `SELECT * FROM employees ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying employees")
	}
	return emps, nil
}

func (repo *staffRepository) GetEmployeeByID(ctx context.Context, id string) (staff.Employee, error) {
	var emp staff.Employee
	err := repo.db.GetContext(ctx, &emp, `SELECT * FROM employees WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return staff.Employee{}, staff.ErrNotFound
		}
		return staff.Employee{}, errors.Wrap(err, "getting employee")
	}
	return emp, nil
}

func (repo *staffRepository) QueryDirectors(ctx context.Context) ([]staff.Employee, error) {
	var emps []staff.Employee
	err := repo.db.SelectContext(ctx, &emps,
		`SELECT * FROM employees WHERE is_director ORDER BY last_name, first_name`)
	if err != nil {
		return nil, errors.Wrap(err, "querying directors")
	}
	return emps, nil
}

func (repo *staffRepository) QueryEmployeesWithoutDirector(ctx context.Context) ([]staff.Employee, error) {
	var emps []staff.Employee
	err := repo.db.SelectContext(ctx, &emps,
		`SELECT * FROM employees WHERE NOT is_director AND director_id IS NULL ORDER BY last_name, first_name`)
	if err != nil {
		return nil, errors.Wrap(err, "querying employees without director")
	}
	return emps, nil
}

func (repo *staffRepository) UpdateEmployee(ctx context.Context, emp staff.Employee) (staff.Employee, error) {
	var out staff.Employee
	err := repo.db.GetContext(ctx, &out, `
		UPDATE employees
		SET designation = $2, primary_phone_number = $3, monthly_salary = $4, director_id = $5, updated_at = $6
		WHERE id = $1
		RETURNING *`,
		emp.ID, emp.Designation, emp.PrimaryPhoneNumber, emp.MonthlySalary, emp.DirectorID, emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return staff.Employee{}, staff.ErrNotFound
		}
		return staff.Employee{}, errors.Wrap(err, "updating employee")
	}
	return out, nil
}

func (repo *staffRepository) DeleteEmployee(ctx context.Context, id string) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting employee")
	}
	return nil
}
