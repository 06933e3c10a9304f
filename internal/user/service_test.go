package user

import (
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/rbac-service/internal"
)

type mockUserRepository struct {
	usersByID map[int64]*User
	roles     map[int64]Role
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		usersByID: map[int64]*User{
			1: {ID: 1, Email: "user@example.com", Username: "user", IsActive: true},
		},
		roles: map[int64]Role{
			1: {ID: 1, Name: "moderator", Permissions: []Permission{{ID: 1, Name: "moderate_content"}}},
			2: {ID: 2, Name: "admin"},
		},
	}
}

func (m *mockUserRepository) GetByID(userID int64) (*User, error) {
	if u, ok := m.usersByID[userID]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (m *mockUserRepository) GetByEmail(email string) (*User, error) {
	for _, u := range m.usersByID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockUserRepository) GetAll(offset, limit int) ([]*User, error) {
	users := make([]*User, 0, len(m.usersByID))
	for _, u := range m.usersByID {
		users = append(users, u)
	}
	return users, nil
}

func (m *mockUserRepository) Update(u *User) error {
	m.usersByID[u.ID] = u
	return nil
}

func (m *mockUserRepository) ReplaceRoles(userID int64, roleIDs []int64) error {
	u := m.usersByID[userID]
	u.Roles = nil
	for _, id := range roleIDs {
		u.Roles = append(u.Roles, m.roles[id])
	}
	return nil
}

func (m *mockUserRepository) RolesExist(roleIDs []int64) (bool, error) {
	for _, id := range roleIDs {
		if _, ok := m.roles[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

var _ = Describe("UserService", func() {
	var (
		service *Service
		repo    *mockUserRepository
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		service = NewService(repo, slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	})

	Describe("GetByID", func() {
		It("should return the user", func() {
			u, err := service.GetByID(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Email).To(Equal("user@example.com"))
		})

		It("should map missing users to the shared not-found error", func() {
			_, err := service.GetByID(42)
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})
	})

	Describe("Update", func() {
		It("should apply only the provided fields", func() {
			inactive := false
			u, err := service.Update(1, UpdateUserDTO{IsActive: &inactive})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.IsActive).To(BeFalse())
			Expect(u.Email).To(Equal("user@example.com"))
		})
	})

	Describe("AssignRoles", func() {
		It("should replace the role set when all roles exist", func() {
			u, err := service.AssignRoles(1, AssignRolesDTO{RoleIDs: []int64{1, 2}})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.HasRole("moderator")).To(BeTrue())
			Expect(u.HasRole("admin")).To(BeTrue())
			Expect(u.HasPermission("moderate_content")).To(BeTrue())
		})

		It("should reject unknown role ids", func() {
			_, err := service.AssignRoles(1, AssignRolesDTO{RoleIDs: []int64{999}})
			Expect(err).To(MatchError(internal.ErrRoleNotFound))
		})

		It("should reject a missing user", func() {
			_, err := service.AssignRoles(42, AssignRolesDTO{RoleIDs: []int64{1}})
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})

		It("should require the role_ids field", func() {
			_, err := service.AssignRoles(1, AssignRolesDTO{})
			var vErr ValidationError
			Expect(errors.As(err, &vErr)).To(BeTrue())
		})

		It("should accept an empty set to revoke all roles", func() {
			_, err := service.AssignRoles(1, AssignRolesDTO{RoleIDs: []int64{1}})
			Expect(err).NotTo(HaveOccurred())

			u, err := service.AssignRoles(1, AssignRolesDTO{RoleIDs: []int64{}})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Roles).To(BeEmpty())
		})
	})
})
