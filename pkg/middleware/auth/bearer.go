package middleware

import (
	"context"
	"strings"

	"github.com/Skotchmaster/resto_pos/pkg/apperr"
	"github.com/Skotchmaster/resto_pos/pkg/logging"
	"github.com/Skotchmaster/resto_pos/pkg/tokens"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxJTI    = "jti"
)

// TokenChecker tells whether a token id is still valid server side.
type TokenChecker interface {
	TokenActive(ctx context.Context, jti string) (bool, error)
}

type BearerAuth struct {
	JWTSecret []byte
	Tokens    TokenChecker
}

func NewBearerAuth(secret []byte, checker TokenChecker) *BearerAuth {
	return &BearerAuth{JWTSecret: secret, Tokens: checker}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

// Require authenticates the request and then asks allow whether the caller's role may proceed.
func (m *BearerAuth) Require(allow func(role string) error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
			return allow(claims.Role)
		})
	}
}

func (m *BearerAuth) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "auth.bearer")

		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return apperr.Unauthenticated("Unauthenticated")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			l.Warn("auth_error", "status", 401, "reason", "invalid access token", "error", err)
			return apperr.Unauthenticated("Unauthenticated")
		}

		if m.Tokens != nil {
			active, err := m.Tokens.TokenActive(ctx, claims.ID)
			if err != nil {
				return err
			}
			if !active {
				l.Warn("auth_error", "status", 401, "reason", "token revoked or unknown")
				return apperr.Unauthenticated("Unauthenticated")
			}
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				l.Warn("auth_error", "status", 403, "reason", "role not allowed", "role", claims.Role)
				return err
			}
		}

		setUserContext(c, claims)
		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set(ctxUserID, claims.Subject)
	c.Set(ctxRole, claims.Role)
	c.Set(ctxJTI, claims.ID)
}

func UserID(c echo.Context) (uuid.UUID, error) {
	s, ok := c.Get(ctxUserID).(string)
	if !ok || s == "" {
		return uuid.Nil, apperr.Unauthenticated("Unauthenticated")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperr.Unauthenticated("Unauthenticated")
	}
	return id, nil
}

func Role(c echo.Context) string {
	s, _ := c.Get(ctxRole).(string)
	return s
}
