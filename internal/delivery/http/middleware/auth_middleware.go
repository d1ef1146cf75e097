// Package middleware contains the HTTP middleware of the service.
package middleware

import (
	"net/http"
	"strings"

	"github.com/Leonardodevcloud/tutts-backend-sub000/config"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// keyActor is the echo context key carrying the resolved actor.
const keyActor = "actor"

// AuthMiddleware validates JWT bearer tokens issued by the identity service
// and resolves the actor context the use cases trust.
type AuthMiddleware struct {
	cfg *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// Authenticate validates the bearer token and stores the actor on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
			}

			return []byte(m.cfg.SecretKey.Access), nil
		})
		if err != nil || !token.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Failed to parse token claims"})
		}

		actor, err := actorFromClaims(claims)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		}

		c.Set(keyActor, actor)

		return next(c)
	}
}

// RequireAdmin rejects non-admin actors. It must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, ok := GetActor(c)
		if !ok {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: actor information missing"})
		}
		if !actor.IsAdmin() {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: require 'admin' role"})
		}

		return next(c)
	}
}

// GetActor retrieves the actor stored by Authenticate.
func GetActor(c echo.Context) (entity.Actor, bool) {
	actor, ok := c.Get(keyActor).(entity.Actor)

	return actor, ok
}

func actorFromClaims(claims jwt.MapClaims) (entity.Actor, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return entity.Actor{}, errors.New("professional ID missing from token")
	}
	professionalID, err := uuid.Parse(sub)
	if err != nil {
		return entity.Actor{}, errors.New("invalid professional ID format in token")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return entity.Actor{}, errors.New("role missing from token")
	}
	switch entity.Role(role) {
	case entity.RoleAdmin, entity.RoleProfessional:
	default:
		return entity.Actor{}, errors.Errorf("unknown role in token: %s", role)
	}

	displayName, _ := claims["name"].(string)

	return entity.Actor{
		ProfessionalID: professionalID,
		DisplayName:    displayName,
		Role:           entity.Role(role),
	}, nil
}
