package staff

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/eduspark/eduspark/core"
)

// Employee is any salaried member of the institution, teaching or not.
// Directors are employees who invested into the institution; every other
// employee may report to one.
type Employee struct {
	ID                 string      `json:"id"`
	FirstName          string      `json:"first_name"`
	LastName           string      `json:"last_name"`
	Email              string      `json:"email"`
	PrimaryPhoneNumber null.String `json:"primary_phone_number"`
	Designation        string      `json:"designation"`
	MonthlySalary      float64     `json:"monthly_salary"`
	IsDirector         bool        `json:"is_director"`
	DirectorID         null.String `json:"director_id"`

	// director-only fields
	ExpectedInvestmentAmount float64 `json:"expected_investment_amount,omitempty"`
	SharePercentage          float64 `json:"share_percentage,omitempty"`

	JoinedAt  time.Time `json:"joined_at"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type NewEmployee struct {
	FirstName          string  `json:"first_name" validate:"required"`
	LastName           string  `json:"last_name" validate:"required"`
	Email              string  `json:"email" validate:"required,email"`
	PrimaryPhoneNumber string  `json:"primary_phone_number" validate:"omitempty,phone_"`
	Designation        string  `json:"designation" validate:"required"`
	MonthlySalary      float64 `json:"monthly_salary" validate:"gte=0"`
	IsDirector         bool    `json:"is_director"`
	DirectorID         string  `json:"director_id" validate:"omitempty,uuid4"`

	ExpectedInvestmentAmount float64 `json:"expected_investment_amount" validate:"gte=0"`
	SharePercentage          float64 `json:"share_percentage" validate:"gte=0,lte=100"`
}

func (ne *NewEmployee) Validate(validate *validator.Validate) error {
	ne.FirstName = core.CleanString(ne.FirstName)
	ne.LastName = core.CleanString(ne.LastName)
	ne.Email = core.CleanString(ne.Email, true /* lower */)
	ne.Designation = core.CleanString(ne.Designation)
	return validate.Struct(ne)
}

type UpdateEmployee struct {
	Designation        string   `json:"designation"`
	PrimaryPhoneNumber string   `json:"primary_phone_number" validate:"omitempty,phone_"`
	MonthlySalary      *float64 `json:"monthly_salary" validate:"omitempty,gte=0"`
	DirectorID         *string  `json:"director_id" validate:"omitempty,uuid4"`
}

func (ue *UpdateEmployee) Validate(validate *validator.Validate) error {
	ue.Designation = core.CleanString(ue.Designation)
	return validate.Struct(ue)
}
