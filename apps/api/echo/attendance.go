package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/eduspark/eduspark/core/attendance"
)

type attendanceApi struct {
	svc      *attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *attendance.Service, validate *validator.Validate) {
	api := attendanceApi{svc: svc, validate: validate}

	ag := g.Group("/attendance", jwt, adminMiddleware())
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.PATCH("/:id", api.patch)
}

func (api *attendanceApi) query(ctx echo.Context) error {
	recs, err := api.svc.Query(ctx.Request().Context(), ctx.QueryParam("date"))
	if err != nil {
		return errors.Wrap(err, "querying attendance records")
	}
	if recs == nil {
		recs = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *attendanceApi) create(ctx echo.Context) error {
	var data attendance.NewRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecord")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rec, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating attendance record")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *attendanceApi) patch(ctx echo.Context) error {
	var data attendance.UpdateRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRecord")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rec, err := api.svc.Patch(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == attendance.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "patching attendance record")
	}
	return ctx.JSON(http.StatusOK, rec)
}
