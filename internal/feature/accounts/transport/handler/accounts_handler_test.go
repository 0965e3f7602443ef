package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo_backend/internal/feature/accounts/domain/entity"
	"todo_backend/internal/feature/accounts/usecase"
	"todo_backend/internal/platform/authcookie"
)

// mockAccountsUsecase is a mock implementation of the AccountsUsecase interface.
type mockAccountsUsecase struct {
	RegisterFunc      func(ctx context.Context, username, email, password, password2 string) error
	LoginFunc         func(ctx context.Context, username, password string) (*entity.Profile, error)
	GetProfileFunc    func(ctx context.Context, username string) (*entity.Profile, error)
	UpdateProfileFunc func(ctx context.Context, username string, upd usecase.ProfileUpdate) (*entity.Profile, error)
	DeleteProfileFunc func(ctx context.Context, username string) error
}

func (m *mockAccountsUsecase) Register(ctx context.Context, username, email, password, password2 string) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, email, password, password2)
	}
	return nil
}

func (m *mockAccountsUsecase) Login(ctx context.Context, username, password string) (*entity.Profile, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return nil, usecase.ErrInvalidCredentials
}

func (m *mockAccountsUsecase) GetProfile(ctx context.Context, username string) (*entity.Profile, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, username)
	}
	return nil, usecase.ErrProfileNotFound
}

func (m *mockAccountsUsecase) UpdateProfile(ctx context.Context, username string, upd usecase.ProfileUpdate) (*entity.Profile, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, username, upd)
	}
	return nil, usecase.ErrProfileNotFound
}

func (m *mockAccountsUsecase) DeleteProfile(ctx context.Context, username string) error {
	if m.DeleteProfileFunc != nil {
		return m.DeleteProfileFunc(ctx, username)
	}
	return nil
}

func newRouter(uc AccountsUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAccountsHandler(uc, authcookie.NewCodec([]byte("test-secret")))

	r := gin.New()
	r.POST("/accounts", h.Register)
	r.POST("/accounts/login", h.Login)
	r.GET("/accounts/logout", h.Logout)
	r.GET("/accounts/:username", h.GetProfile)
	r.PUT("/accounts/:username", h.UpdateProfile)
	r.DELETE("/accounts/:username", h.DeleteProfile)
	return r
}

func doForm(r *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	var body string
	if form != nil {
		body = form.Encode()
	}
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAccountsHandler_Register(t *testing.T) {
	fullForm := url.Values{
		"username":  {"alice"},
		"email":     {"alice@example.com"},
		"password":  {"secret"},
		"password2": {"secret"},
	}

	tests := []struct {
		name           string
		form           url.Values
		registerErr    error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success: profile created",
			form:           fullForm,
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"msg":"Profile created"}`,
		},
		{
			name:           "username taken falls through",
			form:           fullForm,
			registerErr:    usecase.ErrUsernameTaken,
			expectedStatus: http.StatusOK,
			expectedBody:   `{}`,
		},
		{
			name:           "password mismatch",
			form:           fullForm,
			registerErr:    usecase.ErrPasswordMismatch,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Passwords don't match"}`,
		},
		{
			name: "missing field falls through",
			form: url.Values{
				"username": {"alice"},
				"email":    {"alice@example.com"},
				"password": {"secret"},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			uc := &mockAccountsUsecase{
				RegisterFunc: func(ctx context.Context, username, email, password, password2 string) error {
					called = true
					return tt.registerErr
				},
			}

			w := doForm(newRouter(uc), http.MethodPost, "/accounts", tt.form)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			if len(tt.form) < 4 {
				assert.False(t, called, "usecase must not run with fields missing")
			}
		})
	}
}

func TestAccountsHandler_Login(t *testing.T) {
	t.Run("success sets the signed auth cookie", func(t *testing.T) {
		uc := &mockAccountsUsecase{
			LoginFunc: func(ctx context.Context, username, password string) (*entity.Profile, error) {
				return &entity.Profile{Username: username, Token: "fresh-token"}, nil
			},
		}

		w := doForm(newRouter(uc), http.MethodPost, "/accounts/login",
			url.Values{"username": {"alice"}, "password": {"secret"}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"msg":"Authenticated"}`, w.Body.String())

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1, "login must set the auth cookie")
		assert.Equal(t, authcookie.CookieName, cookies[0].Name)
		assert.NotEmpty(t, cookies[0].Value)
	})

	t.Run("wrong credentials never set the cookie", func(t *testing.T) {
		uc := &mockAccountsUsecase{}

		w := doForm(newRouter(uc), http.MethodPost, "/accounts/login",
			url.Values{"username": {"alice"}, "password": {"wrong"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Incorrect username/password combination."}`, w.Body.String())
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("missing field", func(t *testing.T) {
		w := doForm(newRouter(&mockAccountsUsecase{}), http.MethodPost, "/accounts/login",
			url.Values{"username": {"alice"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Some fields are missing"}`, w.Body.String())
	})
}

func TestAccountsHandler_Logout(t *testing.T) {
	w := doForm(newRouter(&mockAccountsUsecase{}), http.MethodGet, "/accounts/logout", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"msg":"Logged out."}`, w.Body.String())
	assert.Empty(t, w.Result().Cookies(), "logout does not clear or reset the cookie")
}

func TestAccountsHandler_GetProfile(t *testing.T) {
	t.Run("success serializes the profile and refreshes the cookie", func(t *testing.T) {
		joined := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		uc := &mockAccountsUsecase{
			GetProfileFunc: func(ctx context.Context, username string) (*entity.Profile, error) {
				return &entity.Profile{
					ID: 1, Username: username, Email: "alice@example.com",
					Token: "tok", DateJoined: joined,
				}, nil
			},
		}

		w := doForm(newRouter(uc), http.MethodGet, "/accounts/alice", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "02/01/2026 03:04:05", body["date_joined"])
		tasks, ok := body["tasks"].([]any)
		require.True(t, ok)
		assert.Empty(t, tasks)

		require.Len(t, w.Result().Cookies(), 1, "successful read must refresh the cookie")
	})

	t.Run("missing profile is forbidden", func(t *testing.T) {
		w := doForm(newRouter(&mockAccountsUsecase{}), http.MethodGet, "/accounts/ghost", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"error":"You do not have permission to access this profile."}`, w.Body.String())
	})
}

func TestAccountsHandler_UpdateProfile(t *testing.T) {
	t.Run("supplied fields reach the usecase", func(t *testing.T) {
		var gotUpd usecase.ProfileUpdate
		uc := &mockAccountsUsecase{
			UpdateProfileFunc: func(ctx context.Context, username string, upd usecase.ProfileUpdate) (*entity.Profile, error) {
				gotUpd = upd
				return &entity.Profile{Username: "alice", Email: "new@example.com", Token: "tok", DateJoined: time.Now()}, nil
			},
		}

		w := doForm(newRouter(uc), http.MethodPut, "/accounts/alice",
			url.Values{"email": {"new@example.com"}})

		assert.Equal(t, http.StatusAccepted, w.Code)
		require.NotNil(t, gotUpd.Email)
		assert.Equal(t, "new@example.com", *gotUpd.Email)
		assert.Nil(t, gotUpd.Username, "absent field must stay nil")
		assert.Nil(t, gotUpd.Password)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Profile updated.", body["msg"])
		assert.Equal(t, "alice", body["username"])
		assert.Contains(t, body, "profile")
	})

	t.Run("missing profile is forbidden", func(t *testing.T) {
		w := doForm(newRouter(&mockAccountsUsecase{}), http.MethodPut, "/accounts/ghost", url.Values{})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAccountsHandler_DeleteProfile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		deleted := ""
		uc := &mockAccountsUsecase{
			DeleteProfileFunc: func(ctx context.Context, username string) error {
				deleted = username
				return nil
			},
		}

		w := doForm(newRouter(uc), http.MethodDelete, "/accounts/alice", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "alice", deleted)
	})

	t.Run("missing profile surfaces as an internal error", func(t *testing.T) {
		uc := &mockAccountsUsecase{
			DeleteProfileFunc: func(ctx context.Context, username string) error {
				return usecase.ErrProfileNotFound
			},
		}

		w := doForm(newRouter(uc), http.MethodDelete, "/accounts/ghost", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("persistence failure surfaces as an internal error", func(t *testing.T) {
		uc := &mockAccountsUsecase{
			DeleteProfileFunc: func(ctx context.Context, username string) error {
				return errors.New("connection lost")
			},
		}

		w := doForm(newRouter(uc), http.MethodDelete, "/accounts/alice", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
