package permission

import (
	"errors"
	"time"

	rbacDatamodel "github.com/frahmantamala/rbac-service/internal/core/datamodel/rbac"
)

type Permission struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

var ErrNotFound = errors.New("permission not found")

func FromDataModel(dm *rbacDatamodel.Permission) *Permission {
	return &Permission{
		ID:          dm.ID,
		Name:        dm.Name,
		Description: dm.Description,
		CreatedAt:   dm.CreatedAt,
	}
}

func ToDataModel(p *Permission) *rbacDatamodel.Permission {
	return &rbacDatamodel.Permission{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}
