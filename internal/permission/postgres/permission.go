package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	rbacDatamodel "github.com/frahmantamala/rbac-service/internal/core/datamodel/rbac"
	"github.com/frahmantamala/rbac-service/internal/permission"
)

type Repository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetAll(offset, limit int) ([]*permission.Permission, error) {
	var dms []rbacDatamodel.Permission
	err := r.db.Offset(offset).Limit(limit).Order("id").Find(&dms).Error
	if err != nil {
		return nil, err
	}

	permissions := make([]*permission.Permission, 0, len(dms))
	for i := range dms {
		permissions = append(permissions, permission.FromDataModel(&dms[i]))
	}
	return permissions, nil
}

func (r *Repository) GetByID(permissionID int64) (*permission.Permission, error) {
	var dm rbacDatamodel.Permission
	err := r.db.First(&dm, permissionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, permission.ErrNotFound
		}
		return nil, err
	}
	return permission.FromDataModel(&dm), nil
}

func (r *Repository) GetByName(name string) (*permission.Permission, error) {
	var dm rbacDatamodel.Permission
	err := r.db.Where("name = ?", name).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, permission.ErrNotFound
		}
		return nil, err
	}
	return permission.FromDataModel(&dm), nil
}

func (r *Repository) Create(p *permission.Permission) error {
	dm := permission.ToDataModel(p)
	dm.CreatedAt = time.Now()
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	p.ID = dm.ID
	p.CreatedAt = dm.CreatedAt
	return nil
}

func (r *Repository) Update(p *permission.Permission) error {
	return r.db.Model(&rbacDatamodel.Permission{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
	}).Error
}

// Delete removes the permission and its role_permissions join rows.
func (r *Repository) Delete(permissionID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("permission_id = ?", permissionID).Delete(&rbacDatamodel.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&rbacDatamodel.Permission{}, permissionID).Error
	})
}
