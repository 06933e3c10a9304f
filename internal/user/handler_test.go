package user

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/rbac-service/internal/transport"
)

var _ = Describe("User Handler", func() {
	var (
		handler *Handler
		repo    *mockUserRepository
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := NewService(repo, slogger)
		handler = NewHandler(&transport.BaseHandler{Logger: slogger}, service)
	})

	Describe("GetCurrentUser", func() {
		It("should return the subject with roles and permissions as flat name lists", func() {
			subject := repo.usersByID[1]
			subject.Roles = []Role{
				{ID: 1, Name: "moderator", Permissions: []Permission{{ID: 1, Name: "moderate_content"}}},
			}

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			req = req.WithContext(transport.ContextWithUser(req.Context(), subject))
			w := httptest.NewRecorder()

			handler.GetCurrentUser(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp CurrentUserResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.ID).To(Equal(int64(1)))
			Expect(resp.Roles).To(ConsistOf("moderator"))
			Expect(resp.Permissions).To(ConsistOf("moderate_content"))
		})

		It("should return empty lists instead of null for a user with no roles", func() {
			subject := repo.usersByID[1]

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			req = req.WithContext(transport.ContextWithUser(req.Context(), subject))
			w := httptest.NewRecorder()

			handler.GetCurrentUser(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"roles":[]`))
			Expect(w.Body.String()).To(ContainSubstring(`"permissions":[]`))
		})

		It("should return 401 without an authenticated subject", func() {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			w := httptest.NewRecorder()

			handler.GetCurrentUser(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
