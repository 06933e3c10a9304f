package role

import (
	"log/slog"

	"github.com/frahmantamala/rbac-service/internal"
)

type RepositoryAPI interface {
	GetAll(offset, limit int) ([]*Role, error)
	GetByID(roleID int64) (*Role, error)
	GetByName(name string) (*Role, error)
	Create(r *Role) error
	Update(r *Role) error
	Delete(roleID int64) error
	ReplacePermissions(roleID int64, permissionIDs []int64) error
	PermissionsExist(permissionIDs []int64) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAll(offset, limit int) ([]*Role, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetAll(offset, limit)
}

func (s *Service) GetByID(roleID int64) (*Role, error) {
	r, err := s.repo.GetByID(roleID)
	if err != nil {
		return nil, internal.ErrRoleNotFound
	}
	return r, nil
}

func (s *Service) Create(dto CreateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(dto.Name); err == nil && existing != nil {
		return nil, internal.NewConflictError("Role name already exists", internal.ErrCodeRoleNameTaken)
	}

	r := &Role{
		Name:        dto.Name,
		Description: dto.Description,
		Permissions: []Permission{},
	}
	if err := s.repo.Create(r); err != nil {
		s.logger.Error("failed to create role", "name", dto.Name, "error", err)
		return nil, internal.NewInternalError("failed to create role", err)
	}
	return r, nil
}

func (s *Service) Update(roleID int64, dto UpdateRoleDTO) (*Role, error) {
	r, err := s.repo.GetByID(roleID)
	if err != nil {
		return nil, internal.ErrRoleNotFound
	}

	if dto.Name != nil {
		r.Name = *dto.Name
	}
	if dto.Description != nil {
		r.Description = *dto.Description
	}

	if err := s.repo.Update(r); err != nil {
		s.logger.Error("failed to update role", "role_id", roleID, "error", err)
		return nil, internal.NewInternalError("failed to update role", err)
	}
	return r, nil
}

func (s *Service) Delete(roleID int64) error {
	if _, err := s.repo.GetByID(roleID); err != nil {
		return internal.ErrRoleNotFound
	}
	if err := s.repo.Delete(roleID); err != nil {
		s.logger.Error("failed to delete role", "role_id", roleID, "error", err)
		return internal.NewInternalError("failed to delete role", err)
	}
	return nil
}

// AssignPermissions replaces the role's permission set. Users holding the role
// see the change on their next permission check.
func (s *Service) AssignPermissions(roleID int64, dto AssignPermissionsDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(roleID); err != nil {
		return nil, internal.ErrRoleNotFound
	}

	ok, err := s.repo.PermissionsExist(dto.PermissionIDs)
	if err != nil {
		return nil, internal.NewInternalError("failed to verify permissions", err)
	}
	if !ok {
		return nil, internal.ErrPermissionNotFound
	}

	if err := s.repo.ReplacePermissions(roleID, dto.PermissionIDs); err != nil {
		s.logger.Error("failed to assign permissions", "role_id", roleID, "error", err)
		return nil, internal.NewInternalError("failed to assign permissions", err)
	}

	return s.repo.GetByID(roleID)
}
