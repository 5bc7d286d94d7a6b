package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/eduspark/eduspark/core"
)

// Statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusLeave   = "leave"
)

type Record struct {
	ID        string      `json:"id"`
	PersonID  string      `json:"person_id"` // student or employee
	Date      string      `json:"date"`      // YYYY-MM-DD
	Status    string      `json:"status"`
	CheckIn   null.Time   `json:"check_in"`
	CheckOut  null.Time   `json:"check_out"`
	Notes     null.String `json:"notes"`
	CreatedAt time.Time   `json:"created_at"` // UTC
	UpdatedAt time.Time   `json:"updated_at"` // UTC
}

type NewRecord struct {
	PersonID string `json:"person_id" validate:"required,uuid4"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Status   string `json:"status" validate:"required,oneof=present absent late leave"`
	Notes    string `json:"notes"`
}

func (nr *NewRecord) Validate(validate *validator.Validate) error {
	nr.Notes = core.CleanString(nr.Notes)
	return validate.Struct(nr)
}

// UpdateRecord is the PATCH payload; only provided fields change.
type UpdateRecord struct {
	Status   string     `json:"status" validate:"omitempty,oneof=present absent late leave"`
	CheckOut *time.Time `json:"check_out"`
	Notes    *string    `json:"notes"`
}

func (ur *UpdateRecord) Validate(validate *validator.Validate) error {
	return validate.Struct(ur)
}
