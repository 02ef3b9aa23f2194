package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"teamtasks.com/teamtasks/internal/constants"
	apperrors "teamtasks.com/teamtasks/internal/errors"
	"teamtasks.com/teamtasks/internal/services"
)

// IdentityKey is the echo context key the authenticated caller is
// stored under.
const IdentityKey = "identity"

// Authenticate resolves the bearer token into a caller identity and
// attaches it to the request context. Requests without a token are
// rejected before any handler runs.
func Authenticate(auth *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return apperrors.ErrTokenNotFound
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == header || tokenString == "" {
				return apperrors.ErrTokenNotFound
			}

			identity, err := auth.VerifyToken(tokenString)
			if err != nil {
				return err
			}

			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// RequireAdmin gates a route group to admin callers. It must run after
// Authenticate.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get(IdentityKey).(services.Identity)
			if !ok {
				return apperrors.ErrTokenNotFound
			}

			switch identity.Role {
			case constants.RoleAdmin:
				return next(c)
			case constants.RoleMember:
				return apperrors.ErrAdminOnly
			default:
				return apperrors.ErrAdminOnly
			}
		}
	}
}

// CallerIdentity fetches the identity placed by Authenticate.
func CallerIdentity(c echo.Context) (services.Identity, error) {
	identity, ok := c.Get(IdentityKey).(services.Identity)
	if !ok {
		return services.Identity{}, apperrors.ErrTokenNotFound
	}
	return identity, nil
}
