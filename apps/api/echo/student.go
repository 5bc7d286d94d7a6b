package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/eduspark/eduspark/core"
	"github.com/eduspark/eduspark/core/stepper"
	"github.com/eduspark/eduspark/core/student"
)

type studentApi struct {
	svc        *student.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerStudentAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *student.Service,
	validate *validator.Validate,
	translator ut.Translator,
) {
	api := studentApi{svc: svc, validate: validate, translator: translator}

	sg := g.Group("/students", jwt, adminMiddleware())
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.POST("/admission", api.admit)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
}

// AdmissionRequest carries the wizard's values, one map per step in
// order.
type AdmissionRequest struct {
	Steps []stepper.Values `json:"steps"`
}

// AdmissionErrorResponse reports which step blocked and why.
type AdmissionErrorResponse struct {
	Step   int               `json:"step"`
	Name   string            `json:"name"`
	Errors map[string]string `json:"errors"`
}

// admit runs the multi-step admission wizard server-side: each step's
// values are validated in order and the aggregated map is submitted once
// the final step passes.
func (api *studentApi) admit(ctx echo.Context) error {
	var data AdmissionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AdmissionRequest")
	}

	steps := student.AdmissionSteps()
	if len(data.Steps) != len(steps) {
		return core.NewValidationError(errors.Errorf("expected %d steps", len(steps)))
	}

	var std student.Student
	submit := func(vals stepper.Values) error {
		ns := student.FromValues(vals)
		if err := ns.Validate(api.validate); err != nil {
			return err
		}
		var err error
		std, err = api.svc.Admit(ctx.Request().Context(), ns)
		return errors.Wrap(err, "admitting student")
	}

	eng, err := stepper.New(api.validate, api.translator, submit, steps...)
	if err != nil {
		return err
	}

	for _, vals := range data.Steps {
		eng.SetAll(vals)
		if _, err := eng.Next(); err != nil {
			return err
		}
		if !eng.Valid() {
			return ctx.JSON(http.StatusBadRequest, AdmissionErrorResponse{
				Step:   eng.Current(),
				Name:   steps[eng.Current()-1].Name,
				Errors: eng.Errors(),
			})
		}
	}

	return ctx.JSON(http.StatusCreated, std)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	std, err := api.svc.Admit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "admitting student")
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *studentApi) query(ctx echo.Context) error {
	var (
		students []student.Student
		err      error
	)
	if class := ctx.QueryParam("class"); class != "" {
		students, err = api.svc.FilterByClass(ctx.Request().Context(), class)
	} else {
		students, err = api.svc.QueryAll(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	std, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) update(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	std, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}
