package queries

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/services"

	"gorm.io/gorm"
)

type UserView struct {
	Email       string
	DisplayName string
	Role        identity.Role
	CreatedAt   time.Time
}

// ListUsersQueryHandler backs the admin role panel.
type ListUsersQueryHandler struct {
	db    *gorm.DB
	authz services.AuthorizationPolicy
}

func NewListUsersQueryHandler(db *gorm.DB, authz services.AuthorizationPolicy) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db, authz: authz}
}

func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) ([]UserView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.authz.CanManageRoles(query.Principal()); err != nil {
		return nil, err
	}

	users := make([]UserView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			email,
			display_name,
			role,
			created_at
		FROM users
		ORDER BY email
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var view UserView
		var role int16
		var createdAt time.Time

		if err = rows.Scan(&view.Email, &view.DisplayName, &role, &createdAt); err != nil {
			return nil, err
		}
		view.Role = identity.Role(role)
		view.CreatedAt = createdAt.UTC()
		users = append(users, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
