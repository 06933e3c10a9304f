package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	rbacDatamodel "github.com/frahmantamala/rbac-service/internal/core/datamodel/rbac"
	"github.com/frahmantamala/rbac-service/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID loads the user with roles and each role's permissions eagerly, so
// the caller never triggers association fetches mid-computation.
func (r *Repository) GetByID(userID int64) (*user.User, error) {
	var dm rbacDatamodel.User
	err := r.db.Preload("Roles.Permissions").First(&dm, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *Repository) GetByEmail(email string) (*user.User, error) {
	var dm rbacDatamodel.User
	err := r.db.Preload("Roles.Permissions").Where("email = ?", email).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *Repository) GetByUsername(username string) (*user.User, error) {
	var dm rbacDatamodel.User
	err := r.db.Preload("Roles.Permissions").Where("username = ?", username).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *Repository) GetAll(offset, limit int) ([]*user.User, error) {
	var dms []rbacDatamodel.User
	err := r.db.Preload("Roles.Permissions").Offset(offset).Limit(limit).Order("id").Find(&dms).Error
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(dms))
	for i := range dms {
		users = append(users, user.FromDataModel(&dms[i]))
	}
	return users, nil
}

func (r *Repository) Create(u *user.User) error {
	dm := user.ToDataModel(u)
	dm.CreatedAt = time.Now()
	dm.UpdatedAt = dm.CreatedAt
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	u.ID = dm.ID
	u.CreatedAt = dm.CreatedAt
	u.UpdatedAt = dm.UpdatedAt
	return nil
}

func (r *Repository) Update(u *user.User) error {
	return r.db.Model(&rbacDatamodel.User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"email":        u.Email,
		"username":     u.Username,
		"is_active":    u.IsActive,
		"is_superuser": u.IsSuperuser,
		"updated_at":   time.Now(),
	}).Error
}

// ReplaceRoles rewrites the user_roles join rows inside one transaction.
func (r *Repository) ReplaceRoles(userID int64, roleIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&rbacDatamodel.UserRole{}).Error; err != nil {
			return err
		}
		for _, roleID := range roleIDs {
			join := rbacDatamodel.UserRole{UserID: userID, RoleID: roleID, CreatedAt: time.Now()}
			if err := tx.Create(&join).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) RolesExist(roleIDs []int64) (bool, error) {
	if len(roleIDs) == 0 {
		return true, nil
	}
	var count int64
	err := r.db.Model(&rbacDatamodel.Role{}).Where("id IN ?", roleIDs).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == int64(len(roleIDs)), nil
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&rbacDatamodel.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *Repository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&rbacDatamodel.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}
