package user

import (
	"log/slog"

	"github.com/frahmantamala/rbac-service/internal"
)

type RepositoryAPI interface {
	GetByID(userID int64) (*User, error)
	GetByEmail(email string) (*User, error)
	GetAll(offset, limit int) ([]*User, error)
	Update(u *User) error
	ReplaceRoles(userID int64, roleIDs []int64) error
	RolesExist(roleIDs []int64) (bool, error)
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

// GetByID loads a user with roles and permissions materialized, so permission
// resolution afterwards is a pure in-memory computation.
func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Warn("user lookup failed", "user_id", userID, "error", err)
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) GetAll(offset, limit int) ([]*User, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetAll(offset, limit)
}

func (s *Service) Update(userID int64, dto UpdateUserDTO) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	if dto.Email != nil {
		u.Email = *dto.Email
	}
	if dto.Username != nil {
		u.Username = *dto.Username
	}
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}
	if dto.IsSuperuser != nil {
		u.IsSuperuser = *dto.IsSuperuser
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to update user", err)
	}
	return u, nil
}

// AssignRoles replaces the user's role set with the given role ids. Takes
// effect on the next permission check since resolution always reads current
// associations.
func (s *Service) AssignRoles(userID int64, dto AssignRolesDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(userID); err != nil {
		return nil, internal.ErrUserNotFound
	}

	ok, err := s.repo.RolesExist(dto.RoleIDs)
	if err != nil {
		return nil, internal.NewInternalError("failed to verify roles", err)
	}
	if !ok {
		return nil, internal.ErrRoleNotFound
	}

	if err := s.repo.ReplaceRoles(userID, dto.RoleIDs); err != nil {
		s.logger.Error("failed to assign roles", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to assign roles", err)
	}

	return s.repo.GetByID(userID)
}
