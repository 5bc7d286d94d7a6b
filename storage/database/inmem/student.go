package inmemdb

import (
	"context"
	"sort"

	"github.com/eduspark/eduspark/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.students))
	for _, std := range repo.db.students {
		students = append(students, *std)
	}
	sort.Slice(students, func(i, j int) bool {
		if !students[i].CreatedAt.Equal(students[j].CreatedAt) {
			return students[i].CreatedAt.After(students[j].CreatedAt)
		}
		return students[i].ID < students[j].ID
	})
	return students
}

func (repo *studentRepository) CreateStudent(_ context.Context, std student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.students[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) QueryAllStudents(_ context.Context) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) GetStudentByID(_ context.Context, id string) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if std, ok := repo.db.students[id]; ok {
		return *std, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) FilterStudentsByClass(_ context.Context, className string) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var students []student.Student
	for _, std := range repo.query() {
		if std.ClassName == className {
			students = append(students, std)
		}
	}
	// class listings read like a register
	sort.Slice(students, func(i, j int) bool {
		if students[i].LastName != students[j].LastName {
			return students[i].LastName < students[j].LastName
		}
		return students[i].FirstName < students[j].FirstName
	})
	return students, nil
}

func (repo *studentRepository) UpdateStudent(_ context.Context, std student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.students[std.ID]; !ok {
		return student.Student{}, student.ErrNotFound
	}
	repo.db.students[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) DeleteStudent(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.students, id)
	return nil
}
