package finance

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/eduspark/eduspark/core"
)

type Earning struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Amount     float64     `json:"amount"`
	Source     string      `json:"source"` // fees, donation, other
	Notes      null.String `json:"notes"`
	ReceivedOn string      `json:"received_on"` // YYYY-MM-DD
	CreatedAt  time.Time   `json:"created_at"`  // UTC
}

type Expense struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Amount    float64     `json:"amount"`
	Category  string      `json:"category"` // salary, rent, supplies, other
	Notes     null.String `json:"notes"`
	SpentOn   string      `json:"spent_on"`   // YYYY-MM-DD
	CreatedAt time.Time   `json:"created_at"` // UTC
}

// InvestmentPayment is one payment made by a director against their
// expected total investment. DirectorName, ExpectedInvestmentAmount and
// SharePercentage are denormalized from the director reference and assumed
// constant per director.
type InvestmentPayment struct {
	ID                       string    `json:"id"`
	DirectorID               string    `json:"director_id"`
	DirectorName             string    `json:"director_name"`
	Amount                   float64   `json:"amount"`
	ExpectedInvestmentAmount float64   `json:"expected_investment_amount"`
	SharePercentage          float64   `json:"share_percentage"`
	PaidOn                   string    `json:"paid_on"`    // YYYY-MM-DD
	CreatedAt                time.Time `json:"created_at"` // UTC
}

type NewEarning struct {
	Title      string  `json:"title" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Source     string  `json:"source" validate:"required,oneof=fees donation other"`
	Notes      string  `json:"notes"`
	ReceivedOn string  `json:"received_on" validate:"required,datetime=2006-01-02"`
}

func (ne *NewEarning) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	ne.Notes = core.CleanString(ne.Notes)
	return validate.Struct(ne)
}

type NewExpense struct {
	Title    string  `json:"title" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Category string  `json:"category" validate:"required,oneof=salary rent supplies other"`
	Notes    string  `json:"notes"`
	SpentOn  string  `json:"spent_on" validate:"required,datetime=2006-01-02"`
}

func (ne *NewExpense) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	ne.Notes = core.CleanString(ne.Notes)
	return validate.Struct(ne)
}

type NewInvestmentPayment struct {
	DirectorID string  `json:"director_id" validate:"required,uuid4"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	PaidOn     string  `json:"paid_on" validate:"required,datetime=2006-01-02"`
}

func (np *NewInvestmentPayment) Validate(validate *validator.Validate) error {
	return validate.Struct(np)
}
