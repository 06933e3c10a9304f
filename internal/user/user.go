package user

import (
	"errors"
	"time"

	rbacDatamodel "github.com/frahmantamala/rbac-service/internal/core/datamodel/rbac"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsSuperuser  bool      `json:"is_superuser"`
	Roles        []Role    `json:"roles,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
}

type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (u *User) GetID() int64     { return u.ID }
func (u *User) GetEmail() string { return u.Email }
func (u *User) Superuser() bool  { return u.IsSuperuser }

// EffectivePermissions is the union of permission names across all assigned
// roles. A user with zero roles gets an empty set; the superuser flag is not
// folded in here, callers decide whether it bypasses checks.
func (u *User) EffectivePermissions() map[string]struct{} {
	permissions := make(map[string]struct{})
	for _, role := range u.Roles {
		for _, perm := range role.Permissions {
			permissions[perm.Name] = struct{}{}
		}
	}
	return permissions
}

// PermissionNames returns the effective permission set as a slice, order unspecified.
func (u *User) PermissionNames() []string {
	set := u.EffectivePermissions()
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	return names
}

func (u *User) HasPermission(permission string) bool {
	_, ok := u.EffectivePermissions()[permission]
	return ok
}

// HasRole matches the role name exactly, case-sensitive.
func (u *User) HasRole(roleName string) bool {
	for _, role := range u.Roles {
		if role.Name == roleName {
			return true
		}
	}
	return false
}

func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

func (u *User) IsActiveUser() bool {
	return u.IsActive
}

var ErrNotFound = errors.New("user not found")

func FromDataModel(dm *rbacDatamodel.User) *User {
	u := &User{
		ID:           dm.ID,
		Email:        dm.Email,
		Username:     dm.Username,
		PasswordHash: dm.PasswordHash,
		IsActive:     dm.IsActive,
		IsSuperuser:  dm.IsSuperuser,
		CreatedAt:    dm.CreatedAt,
		UpdatedAt:    dm.UpdatedAt,
	}
	for _, role := range dm.Roles {
		u.Roles = append(u.Roles, roleFromDataModel(role))
	}
	return u
}

func roleFromDataModel(dm rbacDatamodel.Role) Role {
	role := Role{
		ID:          dm.ID,
		Name:        dm.Name,
		Description: dm.Description,
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

func ToDataModel(u *User) *rbacDatamodel.User {
	return &rbacDatamodel.User{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		IsSuperuser:  u.IsSuperuser,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
