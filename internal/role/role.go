package role

import (
	"errors"
	"time"

	rbacDatamodel "github.com/frahmantamala/rbac-service/internal/core/datamodel/rbac"
)

type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

var ErrNotFound = errors.New("role not found")

func FromDataModel(dm *rbacDatamodel.Role) *Role {
	role := &Role{
		ID:          dm.ID,
		Name:        dm.Name,
		Description: dm.Description,
		Permissions: []Permission{},
		CreatedAt:   dm.CreatedAt,
		UpdatedAt:   dm.UpdatedAt,
	}
	for _, perm := range dm.Permissions {
		role.Permissions = append(role.Permissions, Permission{
			ID:          perm.ID,
			Name:        perm.Name,
			Description: perm.Description,
		})
	}
	return role
}

func ToDataModel(r *Role) *rbacDatamodel.Role {
	return &rbacDatamodel.Role{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
