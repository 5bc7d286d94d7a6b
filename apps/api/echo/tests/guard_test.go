package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduspark/eduspark/core/session"
	"github.com/eduspark/eduspark/core/user"
	testutil "github.com/eduspark/eduspark/tests"
)

func Test_pageGuard(t *testing.T) {
	db.Reset()

	tokenCookie := func(val string) *http.Cookie {
		return &http.Cookie{Name: conf.Session.CookieName, Value: val}
	}
	typeCookie := func(val string) *http.Cookie {
		return &http.Cookie{Name: conf.Session.UserTypeCookieName, Value: val}
	}

	tests := []struct {
		name         string
		path         string
		cookies      []*http.Cookie
		wantCode     int
		wantLocation string
	}{
		{name: "login page without token serves", path: "/login", wantCode: http.StatusOK},
		{name: "register page without token serves", path: "/register", wantCode: http.StatusOK},
		{name: "forgot-password page without token serves", path: "/forgot-password", wantCode: http.StatusOK},
		{
			name: "login page with token bounces home", path: "/login",
			cookies:  []*http.Cookie{tokenCookie("tok"), typeCookie(user.TypeAdmin)},
			wantCode: http.StatusFound, wantLocation: "/",
		},
		{
			name: "register page with token bounces home", path: "/register",
			cookies:  []*http.Cookie{tokenCookie("tok")},
			wantCode: http.StatusFound, wantLocation: "/",
		},
		{
			name: "home without token bounces to login", path: "/",
			wantCode: http.StatusFound, wantLocation: "/login?next=%2F",
		},
		{
			name: "home with non-admin type bounces to unauthorized", path: "/",
			cookies:  []*http.Cookie{tokenCookie("tok"), typeCookie(user.TypeStudent)},
			wantCode: http.StatusFound, wantLocation: "/unauthorized",
		},
		{
			name: "home with token but no type bounces to unauthorized", path: "/",
			cookies:  []*http.Cookie{tokenCookie("tok")},
			wantCode: http.StatusFound, wantLocation: "/unauthorized",
		},
		{
			name: "unauthorized page never loops", path: "/unauthorized",
			cookies:  []*http.Cookie{tokenCookie("tok"), typeCookie(user.TypeStudent)},
			wantCode: http.StatusOK,
		},
		{
			name: "unauthorized page without token still bounces to login", path: "/unauthorized",
			wantCode: http.StatusFound, wantLocation: "/login?next=%2Funauthorized",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for _, cookie := range tt.cookies {
				req.AddCookie(cookie)
			}
			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get(echoLocationHeader))
		})
	}
}

const echoLocationHeader = "Location"

// API routes sit outside the guard; an unauthenticated API call must get
// an API error, never a page redirect.
func Test_pageGuard_excludesAPI(t *testing.T) {
	db.Reset()

	req, rec := newRequest(http.MethodGet, "/v1/users")
	app.ServeHTTP(rec, req)

	tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
	checkCodeAndData(t, tt, rec)
	assert.Empty(t, rec.Header().Get(echoLocationHeader))
}

// Home page with consistent cookie + record serves the dashboard shell for
// that user.
func Test_pages_home(t *testing.T) {
	db.Reset()

	admin := testutil.CreateUser(t, usrRepo, "Jane", "Dean", "jdean", "jdean@eduspark.cd", "", []string{user.RoleAdmin}, true)
	token := getToken(t, admin)

	err := sessionRecords.Write(
		context.Background(),
		admin.ID,
		session.Credentials{AccessToken: token, UserType: user.TypeAdmin},
		conf.Session.TTL,
	)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: conf.Session.CookieName, Value: token})
	req.AddCookie(&http.Cookie{Name: conf.Session.UserTypeCookieName, Value: user.TypeAdmin})
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "EduSpark Admin - Jane Dean", rec.Body.String())
}

// A logout ends the profile cache with the session: logging back in must
// serve the profile as it is now, not as it was before the logout.
func Test_pages_home_profileNotCachedAcrossSessions(t *testing.T) {
	db.Reset()

	admin := testutil.CreateUser(t, usrRepo, "Ada", "Phiri", "aphiri", "aphiri@eduspark.cd", "", []string{user.RoleAdmin}, true)

	home := func(token string) *httptest.ResponseRecorder {
		assert.NoError(t, sessionRecords.Write(
			context.Background(),
			admin.ID,
			session.Credentials{AccessToken: token, UserType: user.TypeAdmin},
			conf.Session.TTL,
		))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: conf.Session.CookieName, Value: token})
		req.AddCookie(&http.Cookie{Name: conf.Session.UserTypeCookieName, Value: user.TypeAdmin})
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)
		return rec
	}

	token := getToken(t, admin)
	rec := home(token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "EduSpark Admin - Ada Phiri", rec.Body.String())

	// log out through the API, the way the dashboard does
	req, logoutRec := newAuthRequest(http.MethodPost, "/v1/users/logout", token)
	app.ServeHTTP(logoutRec, req)
	assert.Equal(t, http.StatusOK, logoutRec.Code)

	// the user is renamed between the two sessions
	admin.FirstName = "Adaeze"
	var err error
	admin, err = usrRepo.UpdateUser(context.Background(), admin)
	assert.NoError(t, err)

	rec = home(getToken(t, admin))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "EduSpark Admin - Adaeze Phiri", rec.Body.String())
}

// A cookie with no matching record is treated as a stale session: the
// sinks are reconciled by logging the visitor out.
func Test_pages_home_staleCookie(t *testing.T) {
	db.Reset()

	admin := testutil.CreateUser(t, usrRepo, "John", "Moyo", "jmoyo", "jmoyo@eduspark.cd", "", []string{user.RoleAdmin}, true)
	token := getToken(t, admin)
	assert.NoError(t, sessionRecords.Clear(context.Background(), admin.ID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: conf.Session.CookieName, Value: token})
	req.AddCookie(&http.Cookie{Name: conf.Session.UserTypeCookieName, Value: user.TypeAdmin})
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echoLocationHeader))

	// logout cleared the cookies on the way out
	cookie := responseCookie(rec, conf.Session.CookieName)
	if assert.NotNil(t, cookie) {
		assert.Empty(t, cookie.Value)
		assert.Equal(t, -1, cookie.MaxAge)
	}
}
