package academics

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/eduspark/eduspark/core"
)

type Class struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Section   null.String `json:"section"`
	CreatedAt time.Time   `json:"created_at"` // UTC
	UpdatedAt time.Time   `json:"updated_at"` // UTC
}

type Subject struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ClassName string    `json:"class_name"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type NewClass struct {
	Name    string `json:"name" validate:"required"`
	Section string `json:"section"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Section = core.CleanString(nc.Section)
	return validate.Struct(nc)
}

type NewSubject struct {
	Name      string `json:"name" validate:"required"`
	ClassName string `json:"class_name" validate:"required"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.ClassName = core.CleanString(ns.ClassName)
	return validate.Struct(ns)
}
