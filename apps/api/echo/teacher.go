package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/eduspark/eduspark/core"
	"github.com/eduspark/eduspark/core/user"
)

// teacherApi exposes teachers as a resource view over the user service:
// a teacher is a user carrying the teacher role.
type teacherApi struct {
	svc      user.Service
	validate *validator.Validate
}

func registerTeacherAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc user.Service, validate *validator.Validate) {
	api := teacherApi{svc: svc, validate: validate}

	tg := g.Group("/teachers", jwt, adminMiddleware())
	tg.GET("", api.query)
	tg.POST("", api.create)
	tg.GET("/:id", api.retrieve)
	tg.PUT("/:id", api.update)
	tg.DELETE("/:id", api.destroy)
}

func (api *teacherApi) query(ctx echo.Context) error {
	ordering := new(Ordering)
	ordering.Bind(ctx)

	teachers, err := api.svc.Filter(ctx.Request().Context(),
		user.QueryFilter{Roles: user.TeacherRoles, Search: core.CleanString(ctx.QueryParam("search"))},
		ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	if teachers == nil {
		teachers = []user.User{}
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *teacherApi) create(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	data.Roles = []string{user.RoleTeacher}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

// getTeacher resolves :id to a user that actually carries the teacher
// role; anything else is a 404 on this resource.
func (api *teacherApi) getTeacher(ctx echo.Context) (user.User, error) {
	usr, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return user.User{}, errHttpNotFound
		}
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	if !usr.IsTeacher() {
		return user.User{}, errHttpNotFound
	}
	return usr, nil
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	usr, err := api.getTeacher(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *teacherApi) update(ctx echo.Context) error {
	usr, err := api.getTeacher(ctx)
	if err != nil {
		return err
	}

	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}
	data.Roles = nil // role changes go through /users
	if err := data.Validate(usr, api.validate, api.svc); err != nil {
		return err
	}

	usr, err = api.svc.Update(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *teacherApi) destroy(ctx echo.Context) error {
	usr, err := api.getTeacher(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), usr.ID); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}
