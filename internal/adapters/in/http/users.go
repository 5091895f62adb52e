package http

import (
	"net/http"
	"net/url"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListUsers handles GET /api/v1/users. Admins only.
func (s *Server) ListUsers(c echo.Context) error {
	query, err := queries.NewListUsersQuery(principalOf(c))
	if err != nil {
		return badRequest(c, "Invalid query", err)
	}

	list, err := s.h.ListUsers.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	out := make([]User, 0, len(list))
	for _, v := range list {
		out = append(out, toUser(v))
	}
	return c.JSON(http.StatusOK, out)
}

// ChangeUserRole handles PUT /api/v1/users/:email/role. Admins only.
func (s *Server) ChangeUserRole(c echo.Context) error {
	rawEmail, err := url.PathUnescape(c.Param("email"))
	if err != nil {
		return badRequest(c, "Invalid email", err)
	}
	target, err := kernel.NewEmail(rawEmail)
	if err != nil {
		return badRequest(c, "Invalid email", err)
	}

	var req ChangeRoleRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return badRequest(c, "Invalid role", err)
	}

	cmd, err := commands.NewChangeUserRoleCommand(principalOf(c), target, role)
	if err != nil {
		return badRequest(c, "Invalid role change", err)
	}

	user, err := s.h.ChangeUserRole.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toUser(queries.UserView{
		Email:       user.Email().String(),
		DisplayName: user.DisplayName(),
		Role:        user.Role(),
		CreatedAt:   user.CreatedAt(),
	}))
}
