package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/eduspark/eduspark/core/academics"
)

type academicsApi struct {
	svc      *academics.Service
	validate *validator.Validate
}

func registerAcademicsAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *academics.Service, validate *validator.Validate) {
	api := academicsApi{svc: svc, validate: validate}

	cg := g.Group("/classes", jwt, adminMiddleware())
	cg.GET("", api.queryClasses)
	cg.POST("", api.createClass)
	cg.GET("/:id", api.retrieveClass)
	cg.DELETE("/:id", api.destroyClass)

	sg := g.Group("/subjects", jwt, adminMiddleware())
	sg.GET("", api.querySubjects)
	sg.POST("", api.createSubject)
	sg.DELETE("/:id", api.destroySubject)
}

func (api *academicsApi) createClass(ctx echo.Context) error {
	var data academics.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cls, err := api.svc.CreateClass(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *academicsApi) queryClasses(ctx echo.Context) error {
	classes, err := api.svc.QueryClasses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []academics.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *academicsApi) retrieveClass(ctx echo.Context) error {
	cls, err := api.svc.GetClass(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == academics.ErrClassNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting class")
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *academicsApi) destroyClass(ctx echo.Context) error {
	if err := api.svc.DeleteClass(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *academicsApi) createSubject(ctx echo.Context) error {
	var data academics.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.CreateSubject(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

// querySubjects lists all subjects, or only those of ?class=<name>.
func (api *academicsApi) querySubjects(ctx echo.Context) error {
	subjects, err := api.svc.QuerySubjects(ctx.Request().Context(), ctx.QueryParam("class"))
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	if subjects == nil {
		subjects = []academics.Subject{}
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *academicsApi) destroySubject(ctx echo.Context) error {
	if err := api.svc.DeleteSubject(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	return ctx.NoContent(http.StatusNoContent)
}
