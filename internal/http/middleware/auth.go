package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docshare/internal/model"
)

const (
	// PrincipalLocalKey holds the model.Principal resolved for the request.
	PrincipalLocalKey = "principal"
	// TokenCookie is the cookie set on login.
	TokenCookie = "token"
)

// PrincipalResolver turns a session token into the identity it stands for.
type PrincipalResolver interface {
	ResolveCurrent(ctx context.Context, token string) (model.Principal, error)
}

// Authenticate resolves the caller from an `Authorization: Bearer` header or
// the token cookie. Missing or invalid tokens leave the request anonymous;
// only a lookup failure aborts it.
func Authenticate(resolver PrincipalResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			token = c.Cookies(TokenCookie)
		}

		p := model.Anonymous
		if token != "" {
			var err error
			p, err = resolver.ResolveCurrent(c.UserContext(), token)
			if err != nil {
				return err
			}
		}

		c.Locals(PrincipalLocalKey, p)
		return c.Next()
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PrincipalFrom(c).IsAnonymous() {
			return fiber.ErrUnauthorized
		}
		return c.Next()
	}
}

// PrincipalFrom returns the principal stored by Authenticate.
func PrincipalFrom(c *fiber.Ctx) model.Principal {
	if p, ok := c.Locals(PrincipalLocalKey).(model.Principal); ok {
		return p
	}
	return model.Anonymous
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
