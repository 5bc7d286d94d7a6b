package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/eduspark/eduspark/core/finance"
)

type financeRepository struct {
	db sqlxDB
}

var _ finance.Repository = (*financeRepository)(nil)

func NewFinanceRepository(db *sqlx.DB) finance.Repository {
	return &financeRepository{db: db}
}

func (repo *financeRepository) CreateEarning(ctx context.Context, e finance.Earning) (finance.Earning, error) {
	var out finance.Earning
	err := repo.db.GetContext(ctx, &out, `
		INSERT INTO earnings (id, title, amount, source, notes, received_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *`,
		e.ID, e.Title, e.Amount, e.Source, e.Notes, e.ReceivedOn, e.CreatedAt,
	)
	if err != nil {
		return finance.Earning{}, errors.Wrap(err, "creating earning")
	}
	return out, nil
}

func (repo *financeRepository) QueryAllEarnings(ctx context.Context) ([]finance.Earning, error) {
	var earnings []finance.Earning
	err := repo.db.SelectContext(ctx, &earnings, `SELECT * FROM earnings ORDER BY received_on DESC, created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying earnings")
	}
	return earnings, nil
}

func (repo *financeRepository) CreateExpense(ctx context.Context, e finance.Expense) (finance.Expense, error) {
	var out finance.Expense
	err := repo.db.GetContext(ctx, &out, `
		INSERT INTO expenses (id, title, amount, category, notes, spent_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *`,
		e.ID, e.Title, e.Amount, e.Category, e.Notes, e.SpentOn, e.CreatedAt,
	)
	if err != nil {
		return finance.Expense{}, errors.Wrap(err, "creating expense")
	}
	return out, nil
}

func (repo *financeRepository) QueryAllExpenses(ctx context.Context) ([]finance.Expense, error) {
	var expenses []finance.Expense
	err := repo.db.SelectContext(ctx, &expenses, `SELECT * FROM expenses ORDER BY spent_on DESC, created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying expenses")
	}
	return expenses, nil
}

func (repo *financeRepository) CreateInvestmentPayment(ctx context.Context, p finance.InvestmentPayment) (finance.InvestmentPayment, error) {
	var out finance.InvestmentPayment
	err := repo.db.GetContext(ctx, &out, `
		INSERT INTO investment_payments (id, director_id, director_name, amount,
		                                 expected_investment_amount, share_percentage, paid_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *`,
		p.ID, p.DirectorID, p.DirectorName, p.Amount,
		p.ExpectedInvestmentAmount, p.SharePercentage, p.PaidOn, p.CreatedAt,
	)
	if err != nil {
		return finance.InvestmentPayment{}, errors.Wrap(err, "creating investment payment")
	}
	return out, nil
}

func (repo *financeRepository) QueryAllInvestmentPayments(ctx context.Context) ([]finance.InvestmentPayment, error) {
	var payments []finance.InvestmentPayment
	err := repo.db.SelectContext(ctx, &payments, `SELECT * FROM investment_payments ORDER BY created_at`)
	if err != nil {
		return nil, errors.Wrap(err, "querying investment payments")
	}
	return payments, nil
}
