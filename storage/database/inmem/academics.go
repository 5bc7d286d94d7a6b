package inmemdb

import (
	"context"
	"sort"

	"github.com/eduspark/eduspark/core/academics"
)

type academicsRepository struct {
	db *DB
}

var _ academics.Repository = (*academicsRepository)(nil)

func NewAcademicsRepository(db *DB) academics.Repository {
	return &academicsRepository{db: db}
}

func (repo *academicsRepository) CreateClass(_ context.Context, cls academics.Class) (academics.Class, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.classes[cls.ID] = &cls
	return cls, nil
}

func (repo *academicsRepository) QueryAllClasses(_ context.Context) ([]academics.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	classes := make([]academics.Class, 0, len(repo.db.classes))
	for _, cls := range repo.db.classes {
		classes = append(classes, *cls)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })
	return classes, nil
}

func (repo *academicsRepository) GetClassByID(_ context.Context, id string) (academics.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if cls, ok := repo.db.classes[id]; ok {
		return *cls, nil
	}
	return academics.Class{}, academics.ErrClassNotFound
}

func (repo *academicsRepository) DeleteClass(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.classes, id)
	return nil
}

func (repo *academicsRepository) CreateSubject(_ context.Context, sub academics.Subject) (academics.Subject, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.subjects[sub.ID] = &sub
	return sub, nil
}

func (repo *academicsRepository) querySubjects() []academics.Subject {
	subjects := make([]academics.Subject, 0, len(repo.db.subjects))
	for _, sub := range repo.db.subjects {
		subjects = append(subjects, *sub)
	}
	sort.Slice(subjects, func(i, j int) bool {
		if subjects[i].ClassName != subjects[j].ClassName {
			return subjects[i].ClassName < subjects[j].ClassName
		}
		return subjects[i].Name < subjects[j].Name
	})
	return subjects
}

func (repo *academicsRepository) QueryAllSubjects(_ context.Context) ([]academics.Subject, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.querySubjects(), nil
}

func (repo *academicsRepository) FilterSubjectsByClass(_ context.Context, className string) ([]academics.Subject, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var subjects []academics.Subject
	for _, sub := range repo.querySubjects() {
		if sub.ClassName == className {
			subjects = append(subjects, sub)
		}
	}
	return subjects, nil
}

func (repo *academicsRepository) DeleteSubject(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.subjects, id)
	return nil
}
