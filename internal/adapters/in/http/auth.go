package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// Claims are the identity provider's token claims the service reads.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// UserRegistrar turns a verified identity into a stored user.
type UserRegistrar interface {
	Handle(ctx context.Context, cmd commands.RegisterUserCommand) (*identity.User, error)
}

// Authenticator verifies HS256 bearer tokens and puts the caller's Principal,
// with the role stored locally, into the echo context.
type Authenticator struct {
	secret []byte
	users  UserRegistrar
}

func NewAuthenticator(secret []byte, users UserRegistrar) *Authenticator {
	return &Authenticator{secret: secret, users: users}
}

func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return unauthorized(c, "Authorization header is required")
			}
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(raw) == "" {
				return unauthorized(c, "Invalid token format")
			}

			claims, err := a.parse(strings.TrimSpace(raw))
			if err != nil {
				return unauthorized(c, "Invalid or expired token")
			}

			email, err := kernel.NewEmail(claims.Email)
			if err != nil {
				return unauthorized(c, "Token carries no usable email")
			}

			cmd, err := commands.NewRegisterUserCommand(email, claims.Name)
			if err != nil {
				return unauthorized(c, "Token carries no usable email")
			}
			user, err := a.users.Handle(c.Request().Context(), cmd)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, Error{
					Code:    http.StatusInternalServerError,
					Message: "Failed to resolve user",
				})
			}

			name := claims.Name
			if strings.TrimSpace(name) == "" {
				name = user.DisplayName()
			}
			p, err := identity.NewPrincipal(user.Email(), name, user.Role())
			if err != nil {
				return unauthorized(c, "User has no valid role")
			}

			c.Set(principalKey, p)
			return next(c)
		}
	}
}

func (a *Authenticator) parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: message})
}

// principalOf returns the principal set by the Authenticator. Routes behind
// the middleware always have one.
func principalOf(c echo.Context) identity.Principal {
	p, _ := c.Get(principalKey).(identity.Principal)
	return p
}
