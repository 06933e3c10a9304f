package permission

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/rbac-service/internal"
)

func TestPermission(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permission Module Suite")
}

type mockPermissionRepository struct {
	byID   map[int64]*Permission
	byName map[string]*Permission
	nextID int64
}

func newMockPermissionRepository() *mockPermissionRepository {
	return &mockPermissionRepository{
		byID:   make(map[int64]*Permission),
		byName: make(map[string]*Permission),
		nextID: 1,
	}
}

func (m *mockPermissionRepository) GetAll(offset, limit int) ([]*Permission, error) {
	out := make([]*Permission, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPermissionRepository) GetByID(permissionID int64) (*Permission, error) {
	if p, ok := m.byID[permissionID]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}

func (m *mockPermissionRepository) GetByName(name string) (*Permission, error) {
	if p, ok := m.byName[name]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}

func (m *mockPermissionRepository) Create(p *Permission) error {
	p.ID = m.nextID
	m.nextID++
	m.byID[p.ID] = p
	m.byName[p.Name] = p
	return nil
}

func (m *mockPermissionRepository) Update(p *Permission) error {
	m.byID[p.ID] = p
	return nil
}

func (m *mockPermissionRepository) Delete(permissionID int64) error {
	if p, ok := m.byID[permissionID]; ok {
		delete(m.byName, p.Name)
		delete(m.byID, permissionID)
	}
	return nil
}

var _ = Describe("PermissionService", func() {
	var (
		service *Service
		repo    *mockPermissionRepository
	)

	BeforeEach(func() {
		repo = newMockPermissionRepository()
		service = NewService(repo, slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	})

	Describe("Create", func() {
		It("should create a permission", func() {
			p, err := service.Create(CreatePermissionDTO{Name: "moderate_content", Description: "moderate user content"})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.ID).To(BeNumerically(">", 0))
		})

		It("should reject a duplicate name with a conflict error", func() {
			_, err := service.Create(CreatePermissionDTO{Name: "moderate_content"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(CreatePermissionDTO{Name: "moderate_content"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodePermNameTaken))
		})

		It("should require a name", func() {
			_, err := service.Create(CreatePermissionDTO{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetByID", func() {
		It("should map missing permissions to the shared not-found error", func() {
			_, err := service.GetByID(42)
			Expect(err).To(MatchError(internal.ErrPermissionNotFound))
		})
	})

	Describe("Update", func() {
		It("should apply only the provided fields", func() {
			created, err := service.Create(CreatePermissionDTO{Name: "moderate_content", Description: "old"})
			Expect(err).NotTo(HaveOccurred())

			newDesc := "new description"
			updated, err := service.Update(created.ID, UpdatePermissionDTO{Description: &newDesc})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("moderate_content"))
			Expect(updated.Description).To(Equal("new description"))
		})
	})

	Describe("Delete", func() {
		It("should delete an existing permission", func() {
			created, err := service.Create(CreatePermissionDTO{Name: "moderate_content"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(created.ID)).To(Succeed())

			_, err = service.GetByID(created.ID)
			Expect(err).To(MatchError(internal.ErrPermissionNotFound))
		})

		It("should map missing permissions to the shared not-found error", func() {
			Expect(service.Delete(42)).To(MatchError(internal.ErrPermissionNotFound))
		})
	})
})
