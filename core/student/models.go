package student

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/eduspark/eduspark/core"
)

type Student struct {
	ID                 string      `json:"id"`
	FirstName          string      `json:"first_name"`
	LastName           string      `json:"last_name"`
	Gender             string      `json:"gender"`
	DateOfBirth        string      `json:"date_of_birth"`
	GuardianName       string      `json:"guardian_name"`
	GuardianPhone      string      `json:"guardian_phone"`
	Email              null.String `json:"email"`
	ClassName          string      `json:"class_name"`
	Group              null.String `json:"group"`
	Subjects           []string    `json:"subjects"`
	AdmittedAt         time.Time   `json:"admitted_at"`
	CreatedAt          time.Time   `json:"created_at"` // UTC
	UpdatedAt          time.Time   `json:"updated_at"` // UTC
}

type NewStudent struct {
	FirstName     string   `json:"first_name" validate:"required"`
	LastName      string   `json:"last_name" validate:"required"`
	Gender        string   `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth   string   `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	GuardianName  string   `json:"guardian_name" validate:"required"`
	GuardianPhone string   `json:"guardian_phone" validate:"required,phone_"`
	Email         string   `json:"email" validate:"omitempty,email"`
	ClassName     string   `json:"class_name" validate:"required"`
	Group         string   `json:"group"`
	Subjects      []string `json:"subjects" validate:"omitempty,max=6"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.GuardianName = core.CleanString(ns.GuardianName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	if err := validate.Struct(ns); err != nil {
		return err
	}
	if GroupRequired(ns.ClassName) {
		var flds []core.FieldError
		if ns.Group == "" {
			flds = append(flds, core.FieldError{Field: "group", Error: "this field is required"})
		}
		if len(ns.Subjects) == 0 {
			flds = append(flds, core.FieldError{Field: "subjects", Error: "pick between 1 and 6 subjects"})
		}
		if flds != nil {
			return core.NewValidationError(nil, flds...)
		}
	}
	return nil
}

type UpdateStudent struct {
	GuardianPhone string   `json:"guardian_phone" validate:"omitempty,phone_"`
	Email         string   `json:"email" validate:"omitempty,email"`
	ClassName     string   `json:"class_name"`
	Group         string   `json:"group"`
	Subjects      []string `json:"subjects" validate:"omitempty,max=6"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Email = core.CleanString(us.Email, true /* lower */)
	return validate.Struct(us)
}
