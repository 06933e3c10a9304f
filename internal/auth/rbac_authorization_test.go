package auth

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/rbac-service/internal/transport"
	"github.com/frahmantamala/rbac-service/internal/user"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func requestWithSubject(subject transport.Subject) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if subject != nil {
		req = req.WithContext(transport.ContextWithUser(req.Context(), subject))
	}
	return req
}

var _ = ginkgo.Describe("RBACAuthorization", func() {
	var (
		rbac      *RBACAuthorization
		moderator *user.User
		admin     *user.User
	)

	ginkgo.BeforeEach(func() {
		rbac = NewRBACAuthorization(testLogger())
		moderator = &user.User{
			ID: 10, Email: "mod@example.com", IsActive: true,
			Roles: []user.Role{
				{ID: 1, Name: "moderator", Permissions: []user.Permission{
					{ID: 1, Name: "moderate_content"},
					{ID: 2, Name: "view_reports"},
				}},
			},
		}
		admin = &user.User{ID: 11, Email: "root@example.com", IsActive: true, IsSuperuser: true}
	})

	ginkgo.Describe("RequirePermission", func() {
		ginkgo.It("should return 401 when no subject is in context", func() {
			next, called := okHandler()
			w := httptest.NewRecorder()

			rbac.RequirePermission("moderate_content")(next).ServeHTTP(w, requestWithSubject(nil))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(*called).To(gomega.BeFalse())
		})

		ginkgo.It("should return 403 naming the missing permission", func() {
			next, called := okHandler()
			w := httptest.NewRecorder()

			rbac.RequirePermission("manage_users")(next).ServeHTTP(w, requestWithSubject(moderator))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("manage_users"))
			gomega.Expect(*called).To(gomega.BeFalse())
		})

		ginkgo.It("should pass a subject holding the permission through a role", func() {
			next, called := okHandler()
			w := httptest.NewRecorder()

			rbac.RequirePermission("moderate_content")(next).ServeHTTP(w, requestWithSubject(moderator))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(*called).To(gomega.BeTrue())
		})

		ginkgo.It("should let a superuser bypass the permission check", func() {
			next, called := okHandler()
			w := httptest.NewRecorder()

			rbac.RequirePermission("manage_users")(next).ServeHTTP(w, requestWithSubject(admin))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(*called).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("RequireRole", func() {
		ginkgo.It("should match the role name exactly and case-sensitively", func() {
			next, _ := okHandler()

			w := httptest.NewRecorder()
			rbac.RequireRole("moderator")(next).ServeHTTP(w, requestWithSubject(moderator))
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))

			w = httptest.NewRecorder()
			rbac.RequireRole("Moderator")(next).ServeHTTP(w, requestWithSubject(moderator))
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should return 401 before 403 when the subject is missing", func() {
			next, _ := okHandler()
			w := httptest.NewRecorder()

			rbac.RequireRole("moderator")(next).ServeHTTP(w, requestWithSubject(nil))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Describe("RequireAnyPermission", func() {
		ginkgo.It("should pass when at least one permission matches", func() {
			next, _ := okHandler()
			w := httptest.NewRecorder()

			rbac.RequireAnyPermission("manage_users", "view_reports")(next).ServeHTTP(w, requestWithSubject(moderator))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should fail when none match", func() {
			next, _ := okHandler()
			w := httptest.NewRecorder()

			rbac.RequireAnyPermission("manage_users", "manage_roles")(next).ServeHTTP(w, requestWithSubject(moderator))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
		})
	})

	ginkgo.Describe("RequireSuperuser", func() {
		ginkgo.It("should reject non-superusers regardless of permissions", func() {
			next, _ := okHandler()
			w := httptest.NewRecorder()

			rbac.RequireSuperuser()(next).ServeHTTP(w, requestWithSubject(moderator))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should pass superusers", func() {
			next, _ := okHandler()
			w := httptest.NewRecorder()

			rbac.RequireSuperuser()(next).ServeHTTP(w, requestWithSubject(admin))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		})
	})
})

var _ = ginkgo.Describe("AuthMiddleware", func() {
	var (
		handler  *Handler
		service  *Service
		mockRepo *mockUserRepository
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator("test-signing-key-at-least-32-chars!", 15*time.Minute, 24*time.Hour)
		service = NewService(mockRepo, tokenGen, bcrypt.MinCost, testLogger())
		handler = NewHandler(&transport.BaseHandler{Logger: testLogger()}, service)
	})

	protect := func(req *http.Request) *httptest.ResponseRecorder {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := transport.UserFromContext(r.Context())
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(subject.GetID()).To(gomega.BeNumerically(">", 0))
			w.WriteHeader(http.StatusOK)
		})
		w := httptest.NewRecorder()
		handler.AuthMiddleware(next).ServeHTTP(w, req)
		return w
	}

	ginkgo.It("should put the subject into context for a valid access token", func() {
		token, err := tokenGen.GenerateAccessToken("1", "user@example.com")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		gomega.Expect(protect(req).Code).To(gomega.Equal(http.StatusOK))
	})

	ginkgo.It("should reject a missing Authorization header", func() {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		gomega.Expect(protect(req).Code).To(gomega.Equal(http.StatusUnauthorized))
	})

	ginkgo.It("should reject a refresh token on a protected route", func() {
		token, err := tokenGen.GenerateRefreshToken("1", "user@example.com")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		gomega.Expect(protect(req).Code).To(gomega.Equal(http.StatusUnauthorized))
	})

	ginkgo.It("should reject a token whose subject no longer exists", func() {
		token, err := tokenGen.GenerateAccessToken("999", "gone@example.com")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		gomega.Expect(protect(req).Code).To(gomega.Equal(http.StatusUnauthorized))
	})

	ginkgo.It("should reject a token for a deactivated account", func() {
		token, err := tokenGen.GenerateAccessToken("3", "inactive@example.com")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		gomega.Expect(protect(req).Code).To(gomega.Equal(http.StatusUnauthorized))
	})
})
