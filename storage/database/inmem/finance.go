package inmemdb

import (
	"context"

	"github.com/eduspark/eduspark/core/finance"
)

type financeRepository struct {
	db *DB
}

var _ finance.Repository = (*financeRepository)(nil)

func NewFinanceRepository(db *DB) finance.Repository {
	return &financeRepository{db: db}
}

func (repo *financeRepository) CreateEarning(_ context.Context, e finance.Earning) (finance.Earning, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.earnings = append(repo.db.earnings, e)
	return e, nil
}

func (repo *financeRepository) QueryAllEarnings(_ context.Context) ([]finance.Earning, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]finance.Earning(nil), repo.db.earnings...), nil
}

func (repo *financeRepository) CreateExpense(_ context.Context, e finance.Expense) (finance.Expense, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.expenses = append(repo.db.expenses, e)
	return e, nil
}

func (repo *financeRepository) QueryAllExpenses(_ context.Context) ([]finance.Expense, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]finance.Expense(nil), repo.db.expenses...), nil
}

func (repo *financeRepository) CreateInvestmentPayment(_ context.Context, p finance.InvestmentPayment) (finance.InvestmentPayment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.payments = append(repo.db.payments, p)
	return p, nil
}

func (repo *financeRepository) QueryAllInvestmentPayments(_ context.Context) ([]finance.InvestmentPayment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]finance.InvestmentPayment(nil), repo.db.payments...), nil
}
