package echoapi

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eduspark/eduspark/core"
	"github.com/eduspark/eduspark/core/user"
)

// Dashboard page paths. The guard evaluates every page route against
// these; API and static prefixes bypass it entirely.
var (
	authPages = map[string]bool{
		"/login":           true,
		"/register":        true,
		"/forgot-password": true,
	}

	guardExcludedPrefixes = []string{
		"/v1",
		"/static",
		"/assets",
		"/favicon.ico",
		"/debug",
	}

	elevatedUserTypes = map[string]bool{
		user.TypeAdmin:      true,
		user.TypeSuperAdmin: true,
	}
)

// pageGuard gates dashboard page routes on the auth cookies alone; it
// runs before any handler and never consults the session record.
//
// First matching rule wins:
//  1. auth page with a token        -> 302 /
//  2. other page without a token    -> 302 /login?next=<path>
//  3. token but not an admin type   -> 302 /unauthorized
//  4. let the request through
func pageGuard(conf *core.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			path := ctx.Request().URL.Path
			for _, prefix := range guardExcludedPrefixes {
				if strings.HasPrefix(path, prefix) {
					return next(ctx)
				}
			}

			token := cookieValue(ctx, conf.Session.CookieName)
			userType := cookieValue(ctx, conf.Session.UserTypeCookieName)

			switch {
			case authPages[path] && token != "":
				return ctx.Redirect(http.StatusFound, "/")
			case !authPages[path] && token == "":
				return ctx.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(path))
			case !authPages[path] && path != "/unauthorized" && !elevatedUserTypes[userType]:
				return ctx.Redirect(http.StatusFound, "/unauthorized")
			default:
				return next(ctx)
			}
		}
	}
}

func cookieValue(ctx echo.Context, name string) string {
	cookie, err := ctx.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
