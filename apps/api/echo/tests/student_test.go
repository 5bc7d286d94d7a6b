package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/eduspark/eduspark/apps/api/echo"
	"github.com/eduspark/eduspark/core/stepper"
	"github.com/eduspark/eduspark/core/student"
	"github.com/eduspark/eduspark/core/user"
	testutil "github.com/eduspark/eduspark/tests"
)

func Test_studentApi_admission(t *testing.T) {
	db.Reset()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "Boss", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	admit := func(t *testing.T, steps ...stepper.Values) *httptest.ResponseRecorder {
		t.Helper()
		body := marchallObj(t, echoapi.AdmissionRequest{Steps: steps})
		req, rec := newAuthRequest(http.MethodPost, "/v1/students/admission", adminToken, body)
		app.ServeHTTP(rec, req)
		return rec
	}

	personal := stepper.Values{
		"first_name":    "Asha",
		"last_name":     "Mwangi",
		"gender":        "female",
		"date_of_birth": "2011-04-12",
	}
	guardian := stepper.Values{
		"guardian_name":  "Grace Mwangi",
		"guardian_phone": "+254712345678",
	}

	t.Run("missing steps", func(t *testing.T) {
		rec := admit(t, personal)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("first step blocks on its own fields", func(t *testing.T) {
		rec := admit(t, stepper.Values{"first_name": "Asha"}, guardian, stepper.Values{"class_name": "6"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var data echoapi.AdmissionErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
		assert.Equal(t, 1, data.Step)
		assert.Equal(t, "personal", data.Name)
		assert.Contains(t, data.Errors, "last_name")
		assert.Contains(t, data.Errors, "gender")
		assert.NotContains(t, data.Errors, "guardian_name") // later steps untouched
	})

	t.Run("grouped class requires group and subjects", func(t *testing.T) {
		rec := admit(t, personal, guardian, stepper.Values{"class_name": "9"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var data echoapi.AdmissionErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
		assert.Equal(t, 3, data.Step)
		assert.Equal(t, "academic", data.Name)
		assert.Contains(t, data.Errors, "group")
		assert.Contains(t, data.Errors, "subjects")
	})

	t.Run("ungrouped class admits without group", func(t *testing.T) {
		rec := admit(t, personal, guardian, stepper.Values{"class_name": "6"})
		assert.Equal(t, http.StatusCreated, rec.Code)

		var std student.Student
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &std))
		assert.NotEmpty(t, std.ID)
		assert.Equal(t, "Asha", std.FirstName)
		assert.Equal(t, "6", std.ClassName)
		assert.False(t, std.AdmittedAt.IsZero())
	})

	t.Run("grouped class admits with group and subjects", func(t *testing.T) {
		rec := admit(t, personal, guardian, stepper.Values{
			"class_name": "9",
			"group":      "science",
			"subjects":   []string{"physics", "chemistry"},
		})
		assert.Equal(t, http.StatusCreated, rec.Code)

		var std student.Student
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &std))
		assert.Equal(t, "science", std.Group.String)
		assert.Equal(t, []string{"physics", "chemistry"}, std.Subjects)
	})
}

func Test_studentApi_queryByClass(t *testing.T) {
	db.Reset()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "Boss", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	create := func(t *testing.T, firstName, lastName, class string) student.Student {
		t.Helper()
		body := marchallObj(t, student.NewStudent{
			FirstName:     firstName,
			LastName:      lastName,
			Gender:        "male",
			DateOfBirth:   "2012-01-15",
			GuardianName:  "Guardian",
			GuardianPhone: "+254700000001",
			ClassName:     class,
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/students", adminToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var std student.Student
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &std))
		return std
	}

	s1 := create(t, "Brian", "Otieno", "6")
	s2 := create(t, "Alice", "Otieno", "6")
	create(t, "Carol", "Wanjiru", "7")

	tests := []httpTest{
		{name: "all", path: "/v1/students", wantCode: http.StatusOK, extra: 3},
		{name: "class=6", path: "/v1/students?class=6", wantCode: http.StatusOK, extra: 2},
		{name: "class (unknown)", path: "/v1/students?class=12", wantCode: http.StatusOK, extra: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, adminToken)
			app.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)

			var students []student.Student
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
			assert.Len(t, students, tt.extra.(int))
		})
	}

	// class listing is ordered by last then first name
	req, rec := newAuthRequest(http.MethodGet, "/v1/students?class=6", adminToken)
	app.ServeHTTP(rec, req)
	var students []student.Student
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
	if assert.Len(t, students, 2) {
		assert.Equal(t, s2.ID, students[0].ID)
		assert.Equal(t, s1.ID, students[1].ID)
	}
}
