package academics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var (
	ErrClassNotFound   = errors.New("class not found")
	ErrSubjectNotFound = errors.New("subject not found")
)

type (
	Repository interface {
		CreateClass(ctx context.Context, cls Class) (Class, error)
		QueryAllClasses(ctx context.Context) ([]Class, error)
		GetClassByID(ctx context.Context, id string) (Class, error)
		DeleteClass(ctx context.Context, id string) error

		CreateSubject(ctx context.Context, sub Subject) (Subject, error)
		QueryAllSubjects(ctx context.Context) ([]Subject, error)
		// FilterSubjectsByClass returns subjects taught in the given class.
		FilterSubjectsByClass(ctx context.Context, className string) ([]Subject, error)
		DeleteSubject(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CreateClass(ctx context.Context, nc NewClass) (Class, error) {
	now := time.Now().UTC()
	cls := Class{
		ID:        uuid.New().String(),
		Name:      nc.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if nc.Section != "" {
		cls.Section = null.StringFrom(nc.Section)
	}
	return svc.repo.CreateClass(ctx, cls)
}

func (svc *Service) QueryClasses(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryAllClasses(ctx)
}

func (svc *Service) GetClass(ctx context.Context, id string) (Class, error) {
	return svc.repo.GetClassByID(ctx, id)
}

func (svc *Service) DeleteClass(ctx context.Context, id string) error {
	return svc.repo.DeleteClass(ctx, id)
}

func (svc *Service) CreateSubject(ctx context.Context, ns NewSubject) (Subject, error) {
	now := time.Now().UTC()
	sub := Subject{
		ID:        uuid.New().String(),
		Name:      ns.Name,
		ClassName: ns.ClassName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateSubject(ctx, sub)
}

func (svc *Service) QuerySubjects(ctx context.Context, className string) ([]Subject, error) {
	if className != "" {
		return svc.repo.FilterSubjectsByClass(ctx, className)
	}
	return svc.repo.QueryAllSubjects(ctx)
}

func (svc *Service) DeleteSubject(ctx context.Context, id string) error {
	return svc.repo.DeleteSubject(ctx, id)
}
