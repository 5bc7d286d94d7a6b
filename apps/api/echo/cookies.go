package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eduspark/eduspark/core"
	"github.com/eduspark/eduspark/core/session"
)

// echoCookieSink binds the session store's cookie half to one
// request/response pair: writes go to the outgoing response, presence is
// read from the incoming request.
type echoCookieSink struct {
	ctx  echo.Context
	conf *core.Config
}

var _ session.CookieSink = (*echoCookieSink)(nil)

func newCookieSink(ctx echo.Context, conf *core.Config) session.CookieSink {
	return &echoCookieSink{ctx: ctx, conf: conf}
}

func (s *echoCookieSink) Write(creds session.Credentials, ttl time.Duration) {
	expires := time.Now().Add(ttl)
	s.ctx.SetCookie(&http.Cookie{
		Name:     s.conf.Session.CookieName,
		Value:    creds.AccessToken,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
	})
	s.ctx.SetCookie(&http.Cookie{
		Name:    s.conf.Session.UserTypeCookieName,
		Value:   creds.UserType,
		Path:    "/",
		Expires: expires,
	})
}

func (s *echoCookieSink) Clear() {
	for _, name := range []string{s.conf.Session.CookieName, s.conf.Session.UserTypeCookieName} {
		s.ctx.SetCookie(&http.Cookie{
			Name:    name,
			Value:   "",
			Path:    "/",
			Expires: time.Unix(0, 0),
			MaxAge:  -1,
		})
	}
}

func (s *echoCookieSink) Present() bool {
	cookie, err := s.ctx.Cookie(s.conf.Session.CookieName)
	return err == nil && cookie.Value != ""
}

// sessionFactory builds a session manager bound to the given request
// context and session key.
type sessionFactory func(ctx echo.Context, key string) *session.Manager

func newSessionFactory(conf *core.Config, records session.RecordSink, notifier session.Notifier, logger core.Logger) sessionFactory {
	return func(ctx echo.Context, key string) *session.Manager {
		store := session.NewStore(key, records, newCookieSink(ctx, conf))
		return session.NewManager(store, notifier, logger, conf.Session.TTL)
	}
}
