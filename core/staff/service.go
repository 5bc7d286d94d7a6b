package staff

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var ErrNotFound = errors.New("employee not found")

type (
	Repository interface {
		CreateEmployee(ctx context.Context, emp Employee) (Employee, error)
		QueryAllEmployees(ctx context.Context) ([]Employee, error)
		GetEmployeeByID(ctx context.Context, id string) (Employee, error)
		// QueryDirectors returns employees flagged as directors.
		QueryDirectors(ctx context.Context) ([]Employee, error)
		// QueryEmployeesWithoutDirector returns non-director employees not
		// yet assigned to a director.
		QueryEmployeesWithoutDirector(ctx context.Context) ([]Employee, error)
		UpdateEmployee(ctx context.Context, emp Employee) (Employee, error)
		DeleteEmployee(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ne NewEmployee) (Employee, error) {
	now := time.Now().UTC()
	emp := Employee{
		ID:                       uuid.New().String(),
		FirstName:                ne.FirstName,
		LastName:                 ne.LastName,
		Email:                    ne.Email,
		Designation:              ne.Designation,
		MonthlySalary:            ne.MonthlySalary,
		IsDirector:               ne.IsDirector,
		ExpectedInvestmentAmount: ne.ExpectedInvestmentAmount,
		SharePercentage:          ne.SharePercentage,
		JoinedAt:                 now,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	if ne.PrimaryPhoneNumber != "" {
		emp.PrimaryPhoneNumber = null.StringFrom(ne.PrimaryPhoneNumber)
	}
	if ne.DirectorID != "" {
		emp.DirectorID = null.StringFrom(ne.DirectorID)
	}
	return svc.repo.CreateEmployee(ctx, emp)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Employee, error) {
	return svc.repo.QueryAllEmployees(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Employee, error) {
	return svc.repo.GetEmployeeByID(ctx, id)
}

func (svc *Service) Directors(ctx context.Context) ([]Employee, error) {
	return svc.repo.QueryDirectors(ctx)
}

func (svc *Service) WithoutDirector(ctx context.Context) ([]Employee, error) {
	return svc.repo.QueryEmployeesWithoutDirector(ctx)
}

func (svc *Service) Update(ctx context.Context, id string, ue UpdateEmployee) (Employee, error) {
	emp, err := svc.repo.GetEmployeeByID(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if ue.Designation != "" {
		emp.Designation = ue.Designation
	}
	if ue.PrimaryPhoneNumber != "" {
		emp.PrimaryPhoneNumber = null.StringFrom(ue.PrimaryPhoneNumber)
	}
	if ue.MonthlySalary != nil {
		emp.MonthlySalary = *ue.MonthlySalary
	}
	if ue.DirectorID != nil {
		if *ue.DirectorID == "" {
			emp.DirectorID = null.String{}
		} else {
			emp.DirectorID = null.StringFrom(*ue.DirectorID)
		}
	}
	emp.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateEmployee(ctx, emp)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteEmployee(ctx, id)
}
