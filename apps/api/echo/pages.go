package echoapi

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/eduspark/eduspark/core"
	"github.com/eduspark/eduspark/core/session"
	"github.com/eduspark/eduspark/core/user"
)

// pages serves the dashboard page routes sitting behind the route guard.
// Each authenticated session gets one profile loader so the profile is
// fetched at most once per session, not per page view; the loader is
// dropped when the session ends.
type pages struct {
	conf     *core.Config
	logger   core.Logger
	sessions sessionFactory
	notifier session.Notifier
	userSvc  user.Service

	mu      sync.Mutex
	loaders map[string]*pageLoader
}

// pageLoader couples a profile loader with its credential-change
// subscription so eviction can drop both.
type pageLoader struct {
	*session.ProfileLoader
	unsub func()
}

func registerPages(app *echo.Echo, conf *core.Config, logger core.Logger, sessions sessionFactory, notifier session.Notifier, userSvc user.Service) {
	p := &pages{
		conf:     conf,
		logger:   logger,
		sessions: sessions,
		notifier: notifier,
		userSvc:  userSvc,
		loaders:  make(map[string]*pageLoader),
	}

	guard := pageGuard(conf)
	app.GET("/", p.home, guard)
	app.GET("/login", p.login, guard)
	app.GET("/register", p.login, guard)
	app.GET("/forgot-password", p.login, guard)
	app.GET("/unauthorized", p.unauthorized, guard)
}

// loader returns the profile loader for a session key, creating it on
// first use. A new loader subscribes to credential changes for its key so
// a logout, wherever it happens, evicts it; the next login for the same
// user then fetches a fresh profile instead of serving the cached one.
func (p *pages) loader(key string) *session.ProfileLoader {
	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.loaders[key]; ok {
		return l.ProfileLoader
	}

	l := &pageLoader{ProfileLoader: session.NewProfileLoader(p.fetchProfile, session.TargetLogin)}
	unsub, err := p.notifier.Subscribe(key, func(token string) {
		if token == "" {
			p.evict(key, l)
		}
	})
	if err != nil {
		p.logger.Warn("subscribing to credential changes", err)
	} else {
		l.unsub = unsub
	}
	p.loaders[key] = l
	return l.ProfileLoader
}

// evict resets and drops the loader for a session that ended.
func (p *pages) evict(key string, l *pageLoader) {
	l.Reset()

	p.mu.Lock()
	if p.loaders[key] == l {
		delete(p.loaders, key)
	}
	p.mu.Unlock()

	if l.unsub != nil {
		l.unsub()
	}
}

// fetchProfile resolves the profile behind an access token.
func (p *pages) fetchProfile(ctx context.Context, token string) (user.Profile, error) {
	claims, err := ParseToken(token)
	if err != nil {
		return user.Profile{}, err
	}
	usr, err := p.userSvc.GetByID(ctx, claims.Subject)
	if err != nil {
		return user.Profile{}, errors.Wrap(err, "finding user by ID")
	}
	return usr.ProfileWithToken(token), nil
}

func (p *pages) home(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	token := cookieValue(ctx, p.conf.Session.CookieName)

	claims, err := ParseToken(token)
	if err != nil {
		return ctx.Redirect(http.StatusFound, "/login")
	}

	mgr := p.sessions(ctx, claims.Subject)
	if err := mgr.Init(reqCtx); err != nil {
		return errors.Wrap(err, "initializing session")
	}
	defer mgr.Close()
	if err := mgr.CheckTokenConsistency(reqCtx); err != nil {
		return errors.Wrap(err, "reconciling session")
	}
	if mgr.State().Token == "" { // sinks disagreed; session was reset
		return ctx.Redirect(http.StatusFound, "/login")
	}

	loader := p.loader(claims.Subject)
	if err := loader.Sync(reqCtx, mgr.State().Token, ctx.Request().URL.Path); err != nil {
		if errors.Cause(err) == session.ErrCorruptSession {
			p.logger.Warn("corrupt session; forcing re-login", err)
			if _, lerr := mgr.Logout(reqCtx); lerr != nil {
				return lerr
			}
			return ctx.Redirect(http.StatusFound, "/login")
		}
		return err
	}

	prof, ok := loader.Profile()
	if !ok {
		return ctx.String(http.StatusOK, "EduSpark Admin")
	}
	return ctx.String(http.StatusOK, fmt.Sprintf("EduSpark Admin - %s %s", prof.FirstName, prof.LastName))
}

func (p *pages) login(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "EduSpark Login")
}

func (p *pages) unauthorized(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "You do not have access to the admin dashboard.")
}
