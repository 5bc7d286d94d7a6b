package inmemdb

import (
	"context"
	"sort"

	"github.com/eduspark/eduspark/core/staff"
)

type staffRepository struct {
	db *DB
}

var _ staff.Repository = (*staffRepository)(nil)

func NewStaffRepository(db *DB) staff.Repository {
	return &staffRepository{db: db}
}

func (repo *staffRepository) query() []staff.Employee {
	emps := make([]staff.Employee, 0, len(repo.db.employees))
	for _, emp := range repo.db.employees {
		emps = append(emps, *emp)
	}
	sort.Slice(emps, func(i, j int) bool {
		if !emps[i].CreatedAt.Equal(emps[j].CreatedAt) {
			return emps[i].CreatedAt.After(emps[j].CreatedAt)
		}
		return emps[i].ID < emps[j].ID
	})
	return emps
}

func (repo *staffRepository) CreateEmployee(_ context.Context, emp staff.Employee) (staff.Employee, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.employees[emp.ID] = &emp
	return emp, nil
}

func (repo *staffRepository) QueryAllEmployees(_ context.Context) ([]staff.Employee, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *staffRepository) GetEmployeeByID(_ context.Context, id string) (staff.Employee, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if emp, ok := repo.db.employees[id]; ok {
		return *emp, nil
	}
	return staff.Employee{}, staff.ErrNotFound
}

func (repo *staffRepository) QueryDirectors(_ context.Context) ([]staff.Employee, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var emps []staff.Employee
	for _, emp := range repo.query() {
		if emp.IsDirector {
			emps = append(emps, emp)
		}
	}
	return emps, nil
}

func (repo *staffRepository) QueryEmployeesWithoutDirector(_ context.Context) ([]staff.Employee, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var emps []staff.Employee
	for _, emp := range repo.query() {
		if !emp.IsDirector && !emp.DirectorID.Valid {
			emps = append(emps, emp)
		}
	}
	return emps, nil
}

func (repo *staffRepository) UpdateEmployee(_ context.Context, emp staff.Employee) (staff.Employee, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.employees[emp.ID]; !ok {
		return staff.Employee{}, staff.ErrNotFound
	}
	repo.db.employees[emp.ID] = &emp
	return emp, nil
}

func (repo *staffRepository) DeleteEmployee(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.employees, id)
	return nil
}
