package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wxgate.app/wxgate/common/token"
	"wxgate.app/wxgate/internal/http/handler"
	"wxgate.app/wxgate/internal/http/middleware"
	"wxgate.app/wxgate/internal/model"
	"wxgate.app/wxgate/internal/service"
)

var _ = Describe("UserHandler", func() {
	var (
		router *gin.Engine
		svc    *mockUserService
		tokens *token.Manager

		currentUser *model.User
	)

	bearerFor := func(u *model.User) string {
		t, err := tokens.Issue(u.ID, u.Username, u.Email)
		Expect(err).NotTo(HaveOccurred())
		return "Bearer " + t.AccessToken
	}

	do := func(method, path, authz string, payload any) *httptest.ResponseRecorder {
		var body *bytes.Buffer
		if payload != nil {
			raw, err := json.Marshal(payload)
			Expect(err).NotTo(HaveOccurred())
			body = bytes.NewBuffer(raw)
		} else {
			body = bytes.NewBuffer(nil)
		}

		req := httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockUserService{}
		tokens = token.NewManager("test-secret", time.Hour)

		currentUser = &model.User{ID: 7, Username: "alice", Email: "alice@example.com", Role: model.RoleUser}
		svc.getFn = func(_ context.Context, id int64) (*model.User, error) {
			if id == currentUser.ID {
				return currentUser, nil
			}
			return nil, service.ErrUserNotFound
		}

		h := handler.NewUserHandler(svc)
		rg := router.Group("/users", middleware.RequireAuth(tokens, svc))
		rg.GET("/me", h.Me)
		rg.PUT("/me/password", h.ChangePassword)

		admin := rg.Group("", middleware.RequireRole(model.RoleAdmin))
		admin.GET("", h.List)
		admin.GET("/:id", h.GetByID)
		admin.POST("/:id/ban", h.Ban)
	})

	Describe("authentication", func() {
		It("rejects requests without a bearer token", func() {
			w := do(http.MethodGet, "/users/me", "", nil)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects an invalid token", func() {
			w := do(http.MethodGet, "/users/me", "Bearer junk", nil)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects a banned account", func() {
			currentUser.IsBanned = true

			w := do(http.MethodGet, "/users/me", bearerFor(currentUser), nil)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("Me", func() {
		It("returns the authenticated user", func() {
			w := do(http.MethodGet, "/users/me", bearerFor(currentUser), nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["username"]).To(Equal("alice"))
			Expect(resp["id"]).To(Equal("7"))
		})
	})

	Describe("ChangePassword", func() {
		It("changes the password of the authenticated user", func() {
			svc.changePasswordFn = func(_ context.Context, userID int64, oldPassword, newPassword string) (*model.User, error) {
				Expect(userID).To(Equal(int64(7)))
				Expect(oldPassword).To(Equal("old-pass"))
				Expect(newPassword).To(Equal("new-pass"))
				return currentUser, nil
			}

			w := do(http.MethodPut, "/users/me/password", bearerFor(currentUser),
				gin.H{"old_password": "old-pass", "new_password": "new-pass"})
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("returns 401 for a wrong old password", func() {
			svc.changePasswordFn = func(_ context.Context, _ int64, _, _ string) (*model.User, error) {
				return nil, service.ErrWrongPassword
			}

			w := do(http.MethodPut, "/users/me/password", bearerFor(currentUser),
				gin.H{"old_password": "not-it", "new_password": "new-pass"})
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("admin routes", func() {
		var admin *model.User

		BeforeEach(func() {
			admin = &model.User{ID: 1, Username: "admin", Email: "admin@admin.com", Role: model.RoleAdmin}
			getUser := svc.getFn
			svc.getFn = func(ctx context.Context, id int64) (*model.User, error) {
				if id == admin.ID {
					return admin, nil
				}
				return getUser(ctx, id)
			}
		})

		It("forbids listing for regular users", func() {
			w := do(http.MethodGet, "/users", bearerFor(currentUser), nil)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("returns a user by id for admins", func() {
			w := do(http.MethodGet, "/users/7", bearerFor(admin), nil)
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("returns 404 for an unknown user id", func() {
			w := do(http.MethodGet, "/users/999", bearerFor(admin), nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 400 for a non-numeric id", func() {
			w := do(http.MethodGet, "/users/abc", bearerFor(admin), nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("forbids get-by-id for regular users", func() {
			w := do(http.MethodGet, "/users/7", bearerFor(currentUser), nil)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("lists users with pagination for admins", func() {
			svc.searchFn = func(_ context.Context, keyword string, page, perPage int32) (int64, []model.User, error) {
				Expect(keyword).To(Equal("ali"))
				Expect(page).To(Equal(int32(2)))
				Expect(perPage).To(Equal(int32(5)))
				return 11, []model.User{*currentUser}, nil
			}

			w := do(http.MethodGet, "/users?keyword=ali&page=2&per_page=5", bearerFor(admin), nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["total"]).To(Equal(float64(11)))
		})

		It("bans a user as admin", func() {
			svc.banFn = func(_ context.Context, id int64) (*model.User, error) {
				Expect(id).To(Equal(int64(7)))
				currentUser.IsBanned = true
				return currentUser, nil
			}

			w := do(http.MethodPost, "/users/7/ban", bearerFor(admin), nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["is_banned"]).To(BeTrue())
		})

		It("forbids banning for regular users", func() {
			w := do(http.MethodPost, "/users/7/ban", bearerFor(currentUser), nil)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})
})
