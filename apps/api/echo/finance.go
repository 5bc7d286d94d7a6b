package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/eduspark/eduspark/core"
	"github.com/eduspark/eduspark/core/finance"
)

type financeApi struct {
	svc      *finance.Service
	validate *validator.Validate
}

func registerFinanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *finance.Service, validate *validator.Validate) {
	api := financeApi{svc: svc, validate: validate}

	eg := g.Group("/earnings", jwt, adminMiddleware())
	eg.GET("", api.queryEarnings)
	eg.POST("", api.createEarning)

	xg := g.Group("/expenses", jwt, adminMiddleware())
	xg.GET("", api.queryExpenses)
	xg.POST("", api.createExpense)

	ig := g.Group("/investments", jwt, adminMiddleware())
	ig.GET("", api.queryInvestments)
	ig.POST("", api.createInvestment)
	ig.GET("/reports", api.investmentReports)
}

func (api *financeApi) createEarning(ctx echo.Context) error {
	var data finance.NewEarning
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEarning")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	e, err := api.svc.RecordEarning(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "recording earning")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *financeApi) queryEarnings(ctx echo.Context) error {
	earnings, err := api.svc.QueryEarnings(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying earnings")
	}
	if earnings == nil {
		earnings = []finance.Earning{}
	}
	return ctx.JSON(http.StatusOK, earnings)
}

func (api *financeApi) createExpense(ctx echo.Context) error {
	var data finance.NewExpense
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExpense")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	e, err := api.svc.RecordExpense(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "recording expense")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *financeApi) queryExpenses(ctx echo.Context) error {
	expenses, err := api.svc.QueryExpenses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying expenses")
	}
	if expenses == nil {
		expenses = []finance.Expense{}
	}
	return ctx.JSON(http.StatusOK, expenses)
}

func (api *financeApi) createInvestment(ctx echo.Context) error {
	var data finance.NewInvestmentPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewInvestmentPayment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.RecordInvestmentPayment(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == finance.ErrDirectorNotFound {
			return core.NewValidationError(nil, core.FieldError{Field: "director_id", Error: finance.ErrDirectorNotFound.Error()})
		}
		return errors.Wrap(err, "recording investment payment")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *financeApi) queryInvestments(ctx echo.Context) error {
	payments, err := api.svc.QueryInvestmentPayments(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying investment payments")
	}
	if payments == nil {
		payments = []finance.InvestmentPayment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

// investmentReports rolls all payments up per director.
func (api *financeApi) investmentReports(ctx echo.Context) error {
	rollups, err := api.svc.InvestmentReport(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building investment report")
	}
	if rollups == nil {
		rollups = []finance.InvestmentRollup{}
	}
	return ctx.JSON(http.StatusOK, rollups)
}
