package permission

import (
	"log/slog"

	"github.com/frahmantamala/rbac-service/internal"
)

type RepositoryAPI interface {
	GetAll(offset, limit int) ([]*Permission, error)
	GetByID(permissionID int64) (*Permission, error)
	GetByName(name string) (*Permission, error)
	Create(p *Permission) error
	Update(p *Permission) error
	Delete(permissionID int64) error
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

func (s *Service) GetAll(offset, limit int) ([]*Permission, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetAll(offset, limit)
}

func (s *Service) GetByID(permissionID int64) (*Permission, error) {
	p, err := s.repo.GetByID(permissionID)
	if err != nil {
		return nil, internal.ErrPermissionNotFound
	}
	return p, nil
}

func (s *Service) Create(dto CreatePermissionDTO) (*Permission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(dto.Name); err == nil && existing != nil {
		return nil, internal.NewConflictError("Permission name already exists", internal.ErrCodePermNameTaken)
	}

	p := &Permission{
		Name:        dto.Name,
		Description: dto.Description,
	}
	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create permission", "name", dto.Name, "error", err)
		return nil, internal.NewInternalError("failed to create permission", err)
	}
	return p, nil
}

func (s *Service) Update(permissionID int64, dto UpdatePermissionDTO) (*Permission, error) {
	p, err := s.repo.GetByID(permissionID)
	if err != nil {
		return nil, internal.ErrPermissionNotFound
	}

	if dto.Name != nil {
		p.Name = *dto.Name
	}
	if dto.Description != nil {
		p.Description = *dto.Description
	}

	if err := s.repo.Update(p); err != nil {
		s.logger.Error("failed to update permission", "permission_id", permissionID, "error", err)
		return nil, internal.NewInternalError("failed to update permission", err)
	}
	return p, nil
}

func (s *Service) Delete(permissionID int64) error {
	if _, err := s.repo.GetByID(permissionID); err != nil {
		return internal.ErrPermissionNotFound
	}
	if err := s.repo.Delete(permissionID); err != nil {
		s.logger.Error("failed to delete permission", "permission_id", permissionID, "error", err)
		return internal.NewInternalError("failed to delete permission", err)
	}
	return nil
}
