package student

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		CreateStudent(ctx context.Context, std Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		FilterStudentsByClass(ctx context.Context, className string) ([]Student, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)
		DeleteStudent(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Admit(ctx context.Context, ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	std := Student{
		ID:            uuid.New().String(),
		FirstName:     ns.FirstName,
		LastName:      ns.LastName,
		Gender:        ns.Gender,
		DateOfBirth:   ns.DateOfBirth,
		GuardianName:  ns.GuardianName,
		GuardianPhone: ns.GuardianPhone,
		ClassName:     ns.ClassName,
		Subjects:      ns.Subjects,
		AdmittedAt:    now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if ns.Email != "" {
		std.Email = null.StringFrom(ns.Email)
	}
	if ns.Group != "" {
		std.Group = null.StringFrom(ns.Group)
	}
	return svc.repo.CreateStudent(ctx, std)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) FilterByClass(ctx context.Context, className string) ([]Student, error) {
	return svc.repo.FilterStudentsByClass(ctx, className)
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	std, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	if us.GuardianPhone != "" {
		std.GuardianPhone = us.GuardianPhone
	}
	if us.Email != "" {
		std.Email = null.StringFrom(us.Email)
	}
	if us.ClassName != "" {
		std.ClassName = us.ClassName
	}
	if us.Group != "" {
		std.Group = null.StringFrom(us.Group)
	}
	if us.Subjects != nil {
		std.Subjects = us.Subjects
	}
	std.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, std)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteStudent(ctx, id)
}
