package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/eduspark/eduspark/core/finance"
	"github.com/eduspark/eduspark/core/staff"
	"github.com/eduspark/eduspark/core/user"
	testutil "github.com/eduspark/eduspark/tests"
)

func Test_financeApi_investments(t *testing.T) {
	db.Reset()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "Boss", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	createDirector := func(t *testing.T, firstName, lastName string, expected, share float64) staff.Employee {
		t.Helper()
		body := marchallObj(t, staff.NewEmployee{
			FirstName:                firstName,
			LastName:                 lastName,
			Email:                    firstName + "@eduspark.cd",
			Designation:              "Director",
			IsDirector:               true,
			ExpectedInvestmentAmount: expected,
			SharePercentage:          share,
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/employees", adminToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var emp staff.Employee
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &emp))
		return emp
	}

	pay := func(t *testing.T, directorID string, amount float64, paidOn string) *httptest.ResponseRecorder {
		t.Helper()
		body := marchallObj(t, finance.NewInvestmentPayment{DirectorID: directorID, Amount: amount, PaidOn: paidOn})
		req, rec := newAuthRequest(http.MethodPost, "/v1/investments", adminToken, body)
		app.ServeHTTP(rec, req)
		return rec
	}

	moyo := createDirector(t, "Thandiwe", "Moyo", 100000, 60)
	banda := createDirector(t, "Chileshe", "Banda", 50000, 40)

	t.Run("unknown director is rejected", func(t *testing.T) {
		rec := pay(t, uuid.New().String(), 1000, "2026-01-15")
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"director_id": finance.ErrDirectorNotFound.Error()}),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("payment denormalizes the director reference", func(t *testing.T) {
		rec := pay(t, moyo.ID, 25000, "2026-01-15")
		assert.Equal(t, http.StatusCreated, rec.Code)

		var p finance.InvestmentPayment
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "Thandiwe Moyo", p.DirectorName)
		assert.Equal(t, float64(100000), p.ExpectedInvestmentAmount)
		assert.Equal(t, float64(60), p.SharePercentage)
	})

	t.Run("reports roll payments up per director", func(t *testing.T) {
		rec := pay(t, banda.ID, 10000, "2026-02-01")
		assert.Equal(t, http.StatusCreated, rec.Code)
		rec = pay(t, moyo.ID, 15000, "2026-02-20")
		assert.Equal(t, http.StatusCreated, rec.Code)

		req, rec := newAuthRequest(http.MethodGet, "/v1/investments/reports", adminToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var rollups []finance.InvestmentRollup
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rollups))

		want := []finance.InvestmentRollup{
			{
				DirectorID:               moyo.ID,
				Name:                     "Thandiwe Moyo",
				TotalInvestmentAmount:    40000,
				ExpectedInvestmentAmount: 100000,
				DueInvestment:            60000,
				SharePercentage:          60,
			},
			{
				DirectorID:               banda.ID,
				Name:                     "Chileshe Banda",
				TotalInvestmentAmount:    10000,
				ExpectedInvestmentAmount: 50000,
				DueInvestment:            40000,
				SharePercentage:          40,
			},
		}
		assert.Equal(t, want, rollups)
	})
}

func Test_financeApi_earningsAndExpenses(t *testing.T) {
	db.Reset()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "Boss", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	t.Run("earning requires a known source", func(t *testing.T) {
		body := marchallObj(t, finance.NewEarning{Title: "Term 1 fees", Amount: 5000, Source: "lottery", ReceivedOn: "2026-01-05"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/earnings", adminToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("record and list earnings", func(t *testing.T) {
		body := marchallObj(t, finance.NewEarning{Title: "Term 1 fees", Amount: 5000, Source: "fees", ReceivedOn: "2026-01-05"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/earnings", adminToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		req, rec = newAuthRequest(http.MethodGet, "/v1/earnings", adminToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var earnings []finance.Earning
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &earnings))
		if assert.Len(t, earnings, 1) {
			assert.Equal(t, "Term 1 fees", earnings[0].Title)
			assert.Equal(t, float64(5000), earnings[0].Amount)
		}
	})

	t.Run("record and list expenses", func(t *testing.T) {
		body := marchallObj(t, finance.NewExpense{Title: "January rent", Amount: 2000, Category: "rent", SpentOn: "2026-01-31"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/expenses", adminToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		req, rec = newAuthRequest(http.MethodGet, "/v1/expenses", adminToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var expenses []finance.Expense
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &expenses))
		if assert.Len(t, expenses, 1) {
			assert.Equal(t, "rent", expenses[0].Category)
		}
	})
}
