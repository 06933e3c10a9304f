package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	rbacDatamodel "github.com/frahmantamala/rbac-service/internal/core/datamodel/rbac"
	"github.com/frahmantamala/rbac-service/internal/role"
)

type Repository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetAll(offset, limit int) ([]*role.Role, error) {
	var dms []rbacDatamodel.Role
	err := r.db.Preload("Permissions").Offset(offset).Limit(limit).Order("id").Find(&dms).Error
	if err != nil {
		return nil, err
	}

	roles := make([]*role.Role, 0, len(dms))
	for i := range dms {
		roles = append(roles, role.FromDataModel(&dms[i]))
	}
	return roles, nil
}

func (r *Repository) GetByID(roleID int64) (*role.Role, error) {
	var dm rbacDatamodel.Role
	err := r.db.Preload("Permissions").First(&dm, roleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, role.ErrNotFound
		}
		return nil, err
	}
	return role.FromDataModel(&dm), nil
}

func (r *Repository) GetByName(name string) (*role.Role, error) {
	var dm rbacDatamodel.Role
	err := r.db.Preload("Permissions").Where("name = ?", name).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, role.ErrNotFound
		}
		return nil, err
	}
	return role.FromDataModel(&dm), nil
}

func (r *Repository) Create(domainRole *role.Role) error {
	dm := role.ToDataModel(domainRole)
	dm.CreatedAt = time.Now()
	dm.UpdatedAt = dm.CreatedAt
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	domainRole.ID = dm.ID
	domainRole.CreatedAt = dm.CreatedAt
	domainRole.UpdatedAt = dm.UpdatedAt
	return nil
}

func (r *Repository) Update(domainRole *role.Role) error {
	return r.db.Model(&rbacDatamodel.Role{}).Where("id = ?", domainRole.ID).Updates(map[string]interface{}{
		"name":        domainRole.Name,
		"description": domainRole.Description,
		"updated_at":  time.Now(),
	}).Error
}

// Delete removes the role and its join rows; user_roles entries pointing at the
// role go with it so the permission loss is immediate.
func (r *Repository) Delete(roleID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&rbacDatamodel.RolePermission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", roleID).Delete(&rbacDatamodel.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Delete(&rbacDatamodel.Role{}, roleID).Error
	})
}

func (r *Repository) ReplacePermissions(roleID int64, permissionIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&rbacDatamodel.RolePermission{}).Error; err != nil {
			return err
		}
		for _, permissionID := range permissionIDs {
			join := rbacDatamodel.RolePermission{RoleID: roleID, PermissionID: permissionID, CreatedAt: time.Now()}
			if err := tx.Create(&join).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) PermissionsExist(permissionIDs []int64) (bool, error) {
	if len(permissionIDs) == 0 {
		return true, nil
	}
	var count int64
	err := r.db.Model(&rbacDatamodel.Permission{}).Where("id IN ?", permissionIDs).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == int64(len(permissionIDs)), nil
}
