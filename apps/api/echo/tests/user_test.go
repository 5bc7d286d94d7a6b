package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/eduspark/eduspark/apps/api/echo"
	"github.com/eduspark/eduspark/core/user"
	testutil "github.com/eduspark/eduspark/tests"
)

func Test_userApi_userQuery(t *testing.T) {
	db.Reset()

	path := func(search string, createdFrom, createdTo time.Time, isActive *bool, roles ...string) string {
		v := make(url.Values)
		if search != "" {
			v.Add("search", search)
		}
		if isActive != nil {
			v.Add("is_active", strconv.FormatBool(*isActive))
		}
		if !createdFrom.IsZero() {
			v.Add("created_from", createdFrom.Format(time.RFC3339Nano))
		}
		if !createdTo.IsZero() {
			v.Add("created_to", createdTo.Format(time.RFC3339Nano))
		}
		for _, r := range roles {
			v.Add("role", r)
		}
		return "/v1/users?" + v.Encode()
	}
	bPtr := func(b bool) *bool { return &b }

	now := time.Now()
	t1 := now.Add(1 * time.Hour)
	t2 := now.Add(2 * time.Hour)
	t3 := now.Add(3 * time.Hour)
	t4 := now.Add(4 * time.Hour)
	t5 := now.Add(5 * time.Hour)

	usr1 := testutil.CreateUser(t, usrRepo, "Awe", "User", "awe", "awe@test.cd", "", nil, true, t1)
	usr2 := testutil.CreateUser(t, usrRepo, "King", "User", "user02", "king@test.cd", "", nil, true)
	student := testutil.CreateUser(t, usrRepo, "Hero", "Kid", "hero", "user3@test.cd", "", []string{user.RoleStudent}, true)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "Boss", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true, t2)
	superAdmin := testutil.CreateUser(t, usrRepo, "Super", "Boss", "superadmin", "super@test.cd", "", []string{user.RoleAdminSuper}, true)
	teacher := testutil.CreateUser(t, usrRepo, "Teach", "Mentor", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true, t3)
	naughty := testutil.CreateUser(t, usrRepo, "N", "Dog", "ndog", "ndog@test.cd", "", []string{user.RoleStudent}, false) // 😂

	adminToken := getToken(t, admin)
	empty := marchallList(t, []interface{}{}...)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/users", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", path: "/v1/users", token: getToken(t, student), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Get all", path: "/v1/users", token: adminToken,
			wantData: marchallList(t, teacher, admin, usr1, naughty, superAdmin, student, usr2),
		},
		// filtering
		{name: "search (unknown)", path: path("lol", time.Time{}, time.Time{}, nil), token: adminToken, wantData: empty},
		{
			name: "search=USE", path: path("USE", time.Time{}, time.Time{}, nil),
			token: adminToken, wantData: marchallList(t, usr1, student, usr2),
		},
		{name: "role (unknown)", path: path("", time.Time{}, time.Time{}, nil, "lol"), token: adminToken, wantData: empty},
		{
			name: "role=admin:", path: path("", time.Time{}, time.Time{}, nil, user.RoleAdmin),
			token: adminToken, wantData: marchallList(t, admin),
		},
		{
			name: "role=teacher:,student:", path: path("", time.Time{}, time.Time{}, nil, user.RoleTeacher, user.RoleStudent),
			token: adminToken, wantData: marchallList(t, teacher, naughty, student),
		},
		{
			name: "is_active=true", path: path("", time.Time{}, time.Time{}, bPtr(true)),
			token: adminToken, wantData: marchallList(t, teacher, admin, usr1, superAdmin, student, usr2),
		},
		{name: "is_active=false", path: path("", time.Time{}, time.Time{}, bPtr(false)), token: adminToken, wantData: marchallList(t, naughty)},
		{
			name: "created_from", path: path("", t1.UTC(), time.Time{}, nil),
			token: adminToken, wantData: marchallList(t, teacher, admin, usr1),
		},
		{
			name: "created_to", path: path("", time.Time{}, t2.UTC(), nil),
			token: adminToken, wantData: marchallList(t, admin, usr1, naughty, superAdmin, student, usr2),
		},
		{name: "created_from - created_to (empty)", path: path("", t4.UTC(), t5.UTC(), nil), token: adminToken, wantData: empty},
		{
			name: "created_from - created_to (found)", path: path("", t1.UTC(), t2.UTC(), nil),
			token: adminToken, wantData: marchallList(t, admin, usr1),
		},
		{name: "all combo (empty)", path: path("USE", t1.UTC(), t5.UTC(), bPtr(true), user.RoleAdminSuper), token: adminToken, wantData: empty},
		{
			name: "all combo (found)", path: path("tea", t1.UTC(), t5.UTC(), bPtr(true), user.RoleTeacher),
			token: adminToken, wantData: marchallList(t, teacher),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_login(t *testing.T) {
	db.Reset()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "Boss", "admin", "admin@test.cd", "LePassword", []string{user.RoleAdmin}, true)
	student := testutil.CreateUser(t, usrRepo, "Hero", "Kid", "hero", "hero@test.cd", "LePassword", []string{user.RoleStudent}, true)
	testutil.CreateUser(t, usrRepo, "N", "Dog", "ndog", "ndog@test.cd", "LePassword", []string{user.RoleStudent}, false)

	login := func(t *testing.T, uname, pwd string) *loginResult {
		t.Helper()
		body := marchallObj(t, echoapi.LoginRequest{Username: uname, Password: pwd})
		req, rec := newRequest(http.MethodPost, "/v1/users/login", body)
		app.ServeHTTP(rec, req)
		return &loginResult{t: t, rec: rec}
	}

	t.Run("empty request", func(t *testing.T) {
		res := login(t, "", "")
		res.wantCode(http.StatusBadRequest)
		res.wantBody(marchallObj(t, map[string]string{
			"username": "this field is required",
			"password": "this field is required",
		}))
	})

	t.Run("unknown user", func(t *testing.T) {
		res := login(t, "ghost", "LePassword")
		res.wantCode(http.StatusBadRequest)
		res.wantBody(marchallObj(t, httpErr{Error: "authentication failed"}))
	})

	t.Run("wrong password", func(t *testing.T) {
		res := login(t, "admin", "NotLePassword")
		res.wantCode(http.StatusBadRequest)
		res.wantBody(marchallObj(t, httpErr{Error: "authentication failed"}))
	})

	t.Run("deactivated account", func(t *testing.T) {
		res := login(t, "ndog", "LePassword")
		res.wantCode(http.StatusForbidden)
		res.wantBody(marchallObj(t, httpErr{Error: "account deactivated"}))
	})

	t.Run("admin lands on the dashboard", func(t *testing.T) {
		res := login(t, "admin", "LePassword")
		res.wantCode(http.StatusOK)

		data := res.decode()
		assert.NotEmpty(t, data.Token)
		assert.Equal(t, "/", data.Redirect)

		// both cookies are set for the route guard
		if cookie := responseCookie(res.rec, conf.Session.CookieName); assert.NotNil(t, cookie) {
			assert.Equal(t, data.Token, cookie.Value)
			assert.True(t, cookie.HttpOnly)
		}
		if cookie := responseCookie(res.rec, conf.Session.UserTypeCookieName); assert.NotNil(t, cookie) {
			assert.Equal(t, user.TypeAdmin, cookie.Value)
		}

		// and the credential record mirrors them
		creds, err := sessionRecords.Read(context.Background(), admin.ID)
		assert.NoError(t, err)
		assert.Equal(t, data.Token, creds.AccessToken)
		assert.Equal(t, user.TypeAdmin, creds.UserType)

		// email login works too
		res = login(t, "admin@test.cd", "LePassword")
		res.wantCode(http.StatusOK)
	})

	t.Run("non-admin is sent back to login", func(t *testing.T) {
		res := login(t, "hero", "LePassword")
		res.wantCode(http.StatusOK)

		data := res.decode()
		assert.NotEmpty(t, data.Token)
		assert.Equal(t, "/login", data.Redirect)

		creds, err := sessionRecords.Read(context.Background(), student.ID)
		assert.NoError(t, err)
		assert.Equal(t, user.TypeStudent, creds.UserType)
	})
}

func Test_userApi_logout(t *testing.T) {
	db.Reset()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "Boss", "admin", "admin@test.cd", "LePassword", []string{user.RoleAdmin}, true)

	body := marchallObj(t, echoapi.LoginRequest{Username: "admin", Password: "LePassword"})
	req, rec := newRequest(http.MethodPost, "/v1/users/login", body)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var data echoapi.LoginResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))

	req, rec = newAuthRequest(http.MethodPost, "/v1/users/logout", data.Token)
	app.ServeHTTP(rec, req)

	tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, echoapi.LogoutResponse{Redirect: "/login"})}
	checkCodeAndData(t, tt, rec)

	// both cookies are expired and the record is gone
	for _, name := range []string{conf.Session.CookieName, conf.Session.UserTypeCookieName} {
		if cookie := responseCookie(rec, name); assert.NotNil(t, cookie) {
			assert.Empty(t, cookie.Value)
			assert.Equal(t, -1, cookie.MaxAge)
		}
	}
	creds, err := sessionRecords.Read(context.Background(), admin.ID)
	assert.NoError(t, err)
	assert.True(t, creds.Empty())
}

func Test_userApi_userRefreshToken(t *testing.T) {
	db.Reset()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "Boss", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)
	naughty := testutil.CreateUser(t, usrRepo, "N", "Dog", "ndog", "ndog@test.cd", "", []string{user.RoleStudent}, false)

	staleOrigIat := time.Now().Add(-(conf.Server.JWTRefreshExpirationDelta + time.Minute)).Unix()
	staleToken, err := echoapi.GenerateToken(echoapi.GetUserClaims(conf, admin, staleOrigIat))
	assert.NoError(t, err)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "deactivated account", token: getToken(t, naughty), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
		{
			name: "refresh window expired", token: staleToken, wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "refresh has expired"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("refresh ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", getToken(t, admin))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var data echoapi.LoginResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
		assert.NotEmpty(t, data.Token)
		assert.Empty(t, data.Redirect)
	})
}

type loginResult struct {
	t   *testing.T
	rec *httptest.ResponseRecorder
}

func (r *loginResult) wantCode(code int) {
	r.t.Helper()
	assert.Equal(r.t, code, r.rec.Code)
}

func (r *loginResult) wantBody(want []byte) {
	r.t.Helper()
	ok, err := jsonBytesEqual(r.t, r.rec.Body.Bytes(), want)
	assert.NoError(r.t, err)
	assert.True(r.t, ok, "body = %s; want %s", r.rec.Body.String(), string(want))
}

func (r *loginResult) decode() echoapi.LoginResponse {
	r.t.Helper()
	var data echoapi.LoginResponse
	assert.NoError(r.t, json.Unmarshal(r.rec.Body.Bytes(), &data))
	return data
}
