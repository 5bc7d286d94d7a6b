package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/eduspark/eduspark/core/staff"
)

type staffApi struct {
	svc      *staff.Service
	validate *validator.Validate
}

func registerStaffAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *staff.Service, validate *validator.Validate) {
	api := staffApi{svc: svc, validate: validate}

	eg := g.Group("/employees", jwt, adminMiddleware())
	eg.GET("", api.query)
	eg.POST("", api.create)
	eg.GET("/get-directors", api.queryDirectors)
	eg.GET("/employees-without-director", api.queryWithoutDirector)
	eg.GET("/:id", api.retrieve)
	eg.PUT("/:id", api.update)
	eg.DELETE("/:id", api.destroy)
}

func (api *staffApi) query(ctx echo.Context) error {
	emps, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying employees")
	}
	if emps == nil {
		emps = []staff.Employee{}
	}
	return ctx.JSON(http.StatusOK, emps)
}

func (api *staffApi) queryDirectors(ctx echo.Context) error {
	emps, err := api.svc.Directors(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying directors")
	}
	if emps == nil {
		emps = []staff.Employee{}
	}
	return ctx.JSON(http.StatusOK, emps)
}

func (api *staffApi) queryWithoutDirector(ctx echo.Context) error {
	emps, err := api.svc.WithoutDirector(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying employees without director")
	}
	if emps == nil {
		emps = []staff.Employee{}
	}
	return ctx.JSON(http.StatusOK, emps)
}

func (api *staffApi) create(ctx echo.Context) error {
	var data staff.NewEmployee
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEmployee")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	emp, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating employee")
	}
	return ctx.JSON(http.StatusCreated, emp)
}

func (api *staffApi) retrieve(ctx echo.Context) error {
	emp, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == staff.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting employee")
	}
	return ctx.JSON(http.StatusOK, emp)
}

func (api *staffApi) update(ctx echo.Context) error {
	var data staff.UpdateEmployee
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEmployee")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	emp, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == staff.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating employee")
	}
	return ctx.JSON(http.StatusOK, emp)
}

func (api *staffApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting employee")
	}
	return ctx.NoContent(http.StatusNoContent)
}
