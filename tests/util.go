package testutil

import (
	"context"
	"net/mail"
	"testing"
	"time"

	"github.com/eduspark/eduspark/core"
	"github.com/eduspark/eduspark/core/user"
)

// NewConfig returns a deterministic config for tests; no env vars, no
// .env files.
func NewConfig() *core.Config {
	conf := &core.Config{
		TestMode:         true,
		Env:              "TEST",
		Build:            "test",
		AppName:          "EduSpark",
		SecretKey:        []byte("s3cr3t-t35t-k3y"),
		FrontendBaseURL:  "http://localhost:3000",
		DefaultFromEmail: mail.Address{Name: "EduSpark", Address: "noreply@localhost"},

		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
	}
	conf.Server.JWTExpirationDelta = 15 * time.Minute
	conf.Server.JWTRefreshExpirationDelta = 4 * time.Hour
	conf.Session.CookieName = "auth_token"
	conf.Session.UserTypeCookieName = "user_type"
	conf.Session.TTL = 7 * 24 * time.Hour
	core.Conf = conf
	return conf
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	firstName, lastName, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		FirstName: firstName,
		LastName:  lastName,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  &isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
