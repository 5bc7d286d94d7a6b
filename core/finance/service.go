package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/eduspark/eduspark/core/staff"
)

var ErrDirectorNotFound = errors.New("director not found")

type (
	Repository interface {
		CreateEarning(ctx context.Context, e Earning) (Earning, error)
		QueryAllEarnings(ctx context.Context) ([]Earning, error)
		CreateExpense(ctx context.Context, e Expense) (Expense, error)
		QueryAllExpenses(ctx context.Context) ([]Expense, error)
		CreateInvestmentPayment(ctx context.Context, p InvestmentPayment) (InvestmentPayment, error)
		// QueryAllInvestmentPayments returns payments in insertion order.
		QueryAllInvestmentPayments(ctx context.Context) ([]InvestmentPayment, error)
	}

	Service struct {
		repo     Repository
		staffSvc *staff.Service
	}
)

func NewService(repo Repository, staffSvc *staff.Service) *Service {
	return &Service{repo: repo, staffSvc: staffSvc}
}

func (svc *Service) RecordEarning(ctx context.Context, ne NewEarning) (Earning, error) {
	e := Earning{
		ID:         uuid.New().String(),
		Title:      ne.Title,
		Amount:     ne.Amount,
		Source:     ne.Source,
		ReceivedOn: ne.ReceivedOn,
		CreatedAt:  time.Now().UTC(),
	}
	if ne.Notes != "" {
		e.Notes = null.StringFrom(ne.Notes)
	}
	return svc.repo.CreateEarning(ctx, e)
}

func (svc *Service) QueryEarnings(ctx context.Context) ([]Earning, error) {
	return svc.repo.QueryAllEarnings(ctx)
}

func (svc *Service) RecordExpense(ctx context.Context, ne NewExpense) (Expense, error) {
	e := Expense{
		ID:        uuid.New().String(),
		Title:     ne.Title,
		Amount:    ne.Amount,
		Category:  ne.Category,
		SpentOn:   ne.SpentOn,
		CreatedAt: time.Now().UTC(),
	}
	if ne.Notes != "" {
		e.Notes = null.StringFrom(ne.Notes)
	}
	return svc.repo.CreateExpense(ctx, e)
}

func (svc *Service) QueryExpenses(ctx context.Context) ([]Expense, error) {
	return svc.repo.QueryAllExpenses(ctx)
}

// RecordInvestmentPayment denormalizes the director reference onto the
// payment so rollups never need a join.
func (svc *Service) RecordInvestmentPayment(ctx context.Context, np NewInvestmentPayment) (InvestmentPayment, error) {
	director, err := svc.staffSvc.GetByID(ctx, np.DirectorID)
	if err != nil {
		if errors.Cause(err) == staff.ErrNotFound {
			return InvestmentPayment{}, ErrDirectorNotFound
		}
		return InvestmentPayment{}, errors.Wrap(err, "finding director")
	}
	if !director.IsDirector {
		return InvestmentPayment{}, ErrDirectorNotFound
	}

	p := InvestmentPayment{
		ID:                       uuid.New().String(),
		DirectorID:               director.ID,
		DirectorName:             director.FullName(),
		Amount:                   np.Amount,
		ExpectedInvestmentAmount: director.ExpectedInvestmentAmount,
		SharePercentage:          director.SharePercentage,
		PaidOn:                   np.PaidOn,
		CreatedAt:                time.Now().UTC(),
	}
	return svc.repo.CreateInvestmentPayment(ctx, p)
}

func (svc *Service) QueryInvestmentPayments(ctx context.Context) ([]InvestmentPayment, error) {
	return svc.repo.QueryAllInvestmentPayments(ctx)
}

// InvestmentReport rolls the full payment list up per director.
func (svc *Service) InvestmentReport(ctx context.Context) ([]InvestmentRollup, error) {
	payments, err := svc.repo.QueryAllInvestmentPayments(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying investment payments")
	}
	return Aggregate(payments), nil
}
