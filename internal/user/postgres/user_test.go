package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	rbacDatamodel "github.com/frahmantamala/rbac-service/internal/core/datamodel/rbac"
	"github.com/frahmantamala/rbac-service/internal/user"
	userPostgres "github.com/frahmantamala/rbac-service/internal/user/postgres"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

// SQLite-compatible models for testing; the production defaults use now()
// which SQLite does not understand.
type SQLiteUser struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Username     string    `gorm:"column:username;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	IsSuperuser  bool      `gorm:"column:is_superuser;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (SQLiteUser) TableName() string { return "users" }

type SQLiteRole struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (SQLiteRole) TableName() string { return "roles" }

type SQLitePermission struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (SQLitePermission) TableName() string { return "permissions" }

type SQLiteUserRole struct {
	UserID    int64     `gorm:"column:user_id;primaryKey"`
	RoleID    int64     `gorm:"column:role_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (SQLiteUserRole) TableName() string { return "user_roles" }

type SQLiteRolePermission struct {
	RoleID       int64     `gorm:"column:role_id;primaryKey"`
	PermissionID int64     `gorm:"column:permission_id;primaryKey"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (SQLiteRolePermission) TableName() string { return "role_permissions" }

func openTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	Expect(err).NotTo(HaveOccurred())

	err = db.AutoMigrate(
		&SQLiteUser{},
		&SQLiteRole{},
		&SQLitePermission{},
		&SQLiteUserRole{},
		&SQLiteRolePermission{},
	)
	Expect(err).NotTo(HaveOccurred())

	return db
}

var _ = Describe("User PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *userPostgres.Repository
	)

	seedRoleWithPermission := func(roleName, permName string) (roleID int64) {
		role := SQLiteRole{Name: roleName, CreatedAt: time.Now()}
		Expect(db.Create(&role).Error).NotTo(HaveOccurred())

		perm := SQLitePermission{Name: permName, CreatedAt: time.Now()}
		Expect(db.Create(&perm).Error).NotTo(HaveOccurred())

		join := SQLiteRolePermission{RoleID: role.ID, PermissionID: perm.ID, CreatedAt: time.Now()}
		Expect(db.Create(&join).Error).NotTo(HaveOccurred())

		return role.ID
	}

	BeforeEach(func() {
		db = openTestDB()
		repo = userPostgres.NewUserRepository(db)
	})

	Describe("Create and lookup", func() {
		It("should create a user and find it by id, email and username", func() {
			u := &user.User{Email: "a@example.com", Username: "a", PasswordHash: "hash", IsActive: true}
			Expect(repo.Create(u)).To(Succeed())
			Expect(u.ID).To(BeNumerically(">", 0))

			byID, err := repo.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(byID.Email).To(Equal("a@example.com"))

			byEmail, err := repo.GetByEmail("a@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(byEmail.ID).To(Equal(u.ID))

			byUsername, err := repo.GetByUsername("a")
			Expect(err).NotTo(HaveOccurred())
			Expect(byUsername.ID).To(Equal(u.ID))
		})

		It("should return the domain not-found error for a missing user", func() {
			_, err := repo.GetByID(42)
			Expect(err).To(MatchError(user.ErrNotFound))

			_, err = repo.GetByEmail("nobody@example.com")
			Expect(err).To(MatchError(user.ErrNotFound))
		})

		It("should reject duplicate emails", func() {
			Expect(repo.Create(&user.User{Email: "a@example.com", Username: "a", PasswordHash: "h"})).To(Succeed())
			Expect(repo.Create(&user.User{Email: "a@example.com", Username: "b", PasswordHash: "h"})).NotTo(Succeed())
		})
	})

	Describe("Role and permission loading", func() {
		It("should materialize roles and permissions on lookup", func() {
			roleID := seedRoleWithPermission("moderator", "moderate_content")

			u := &user.User{Email: "mod@example.com", Username: "mod", PasswordHash: "h", IsActive: true}
			Expect(repo.Create(u)).To(Succeed())
			Expect(repo.ReplaceRoles(u.ID, []int64{roleID})).To(Succeed())

			loaded, err := repo.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.HasRole("moderator")).To(BeTrue())
			Expect(loaded.HasPermission("moderate_content")).To(BeTrue())
		})
	})

	Describe("ReplaceRoles", func() {
		It("should replace the full assignment set", func() {
			modID := seedRoleWithPermission("moderator", "moderate_content")
			adminID := seedRoleWithPermission("admin", "manage_users")

			u := &user.User{Email: "x@example.com", Username: "x", PasswordHash: "h", IsActive: true}
			Expect(repo.Create(u)).To(Succeed())

			Expect(repo.ReplaceRoles(u.ID, []int64{modID})).To(Succeed())
			Expect(repo.ReplaceRoles(u.ID, []int64{adminID})).To(Succeed())

			loaded, err := repo.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.HasRole("admin")).To(BeTrue())
			Expect(loaded.HasRole("moderator")).To(BeFalse())
		})

		It("should clear all roles with an empty set", func() {
			modID := seedRoleWithPermission("moderator", "moderate_content")

			u := &user.User{Email: "x@example.com", Username: "x", PasswordHash: "h", IsActive: true}
			Expect(repo.Create(u)).To(Succeed())
			Expect(repo.ReplaceRoles(u.ID, []int64{modID})).To(Succeed())
			Expect(repo.ReplaceRoles(u.ID, nil)).To(Succeed())

			loaded, err := repo.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Roles).To(BeEmpty())
			Expect(loaded.EffectivePermissions()).To(BeEmpty())
		})
	})

	Describe("RolesExist", func() {
		It("should confirm only role sets that fully exist", func() {
			modID := seedRoleWithPermission("moderator", "moderate_content")

			ok, err := repo.RolesExist([]int64{modID})
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, err = repo.RolesExist([]int64{modID, 999})
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())

			ok, err = repo.RolesExist(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})
	})

	Describe("Existence checks", func() {
		It("should report taken emails and usernames", func() {
			Expect(repo.Create(&user.User{Email: "a@example.com", Username: "a", PasswordHash: "h"})).To(Succeed())

			taken, err := repo.EmailExists("a@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeTrue())

			taken, err = repo.UsernameExists("b")
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeFalse())
		})
	})

	Describe("Update", func() {
		It("should persist field changes", func() {
			u := &user.User{Email: "a@example.com", Username: "a", PasswordHash: "h", IsActive: true}
			Expect(repo.Create(u)).To(Succeed())

			u.IsActive = false
			Expect(repo.Update(u)).To(Succeed())

			loaded, err := repo.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.IsActiveUser()).To(BeFalse())
		})
	})

	// keep the datamodel associations compiling against the test schema
	It("should preload through the declared association tables", func() {
		var dm rbacDatamodel.User
		roleID := seedRoleWithPermission("auditor", "view_reports")

		u := &user.User{Email: "aud@example.com", Username: "aud", PasswordHash: "h", IsActive: true}
		Expect(repo.Create(u)).To(Succeed())
		Expect(repo.ReplaceRoles(u.ID, []int64{roleID})).To(Succeed())

		Expect(db.Preload("Roles.Permissions").First(&dm, u.ID).Error).NotTo(HaveOccurred())
		Expect(dm.Roles).To(HaveLen(1))
		Expect(dm.Roles[0].Permissions).To(HaveLen(1))
	})
})
