package http

import (
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const (
	actorContextKey = "storefront.actor"
	tokenCookieName = "jwt"
	bearerPrefix    = "Bearer "
)

// Authenticate resolves the request's credentials into an Actor and stores it
// for the handlers. The token is read from the Authorization header and, when
// that is absent, from the jwt cookie.
func Authenticate(resolver ports.ActorResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := tokenFrom(c.Request())
			if err != nil {
				return err
			}

			a, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(actorContextKey, a)
			return next(c)
		}
	}
}

func tokenFrom(req *http.Request) (string, error) {
	if header := req.Header.Get(echo.HeaderAuthorization); header != "" {
		if !strings.HasPrefix(header, bearerPrefix) {
			return "", fmt.Errorf("%w: unsupported authorization scheme", ports.ErrUnauthenticated)
		}
		if token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)); token != "" {
			return token, nil
		}
		return "", fmt.Errorf("%w: empty bearer token", ports.ErrUnauthenticated)
	}

	if cookie, err := req.Cookie(tokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", fmt.Errorf("%w: no token", ports.ErrUnauthenticated)
}

// actorFrom returns the actor Authenticate stored.
func actorFrom(c echo.Context) (actor.Actor, error) {
	a, ok := c.Get(actorContextKey).(actor.Actor)
	if !ok {
		return actor.Actor{}, ports.ErrUnauthenticated
	}
	return a, nil
}
