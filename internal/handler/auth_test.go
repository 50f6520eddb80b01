package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/hawkerhub/api/internal/auth"
	"github.com/hawkerhub/api/internal/database"
	"github.com/hawkerhub/api/internal/enum"
	"github.com/hawkerhub/api/internal/handler"
)

const testJWTSecret = "test-secret"

type mockAuthStore struct {
	getUserByEmailFn func(ctx context.Context, email string) (database.User, error)
}

func (m *mockAuthStore) GetUserByEmail(ctx context.Context, email string) (database.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(ctx, email)
	}
	return database.User{}, pgx.ErrNoRows
}

func newAuthRouter(store handler.AuthStore) *chi.Mux {
	h := handler.NewAuthHandler(store, testJWTSecret)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestLogin_Success(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	userID := uuid.New()
	store := &mockAuthStore{
		getUserByEmailFn: func(ctx context.Context, email string) (database.User, error) {
			if email != "admin@hawkerhub.test" {
				return database.User{}, pgx.ErrNoRows
			}
			return database.User{
				ID:             userID,
				FullName:       "Centre Admin",
				Email:          email,
				HashedPassword: string(hashed),
				Role:           enum.UserRoleAdmin,
			}, nil
		},
	}
	r := newAuthRouter(store)

	body := bytes.NewBufferString(`{"email":"admin@hawkerhub.test","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID   uuid.UUID `json:"id"`
			Role string    `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.User.ID != userID {
		t.Errorf("user id: got %s, want %s", resp.User.ID, userID)
	}
	if resp.User.Role != enum.UserRoleAdmin {
		t.Errorf("role: got %s, want ADMIN", resp.User.Role)
	}

	// The issued token must round-trip through our own validator.
	claims, err := auth.ValidateToken(testJWTSecret, resp.Token)
	if err != nil {
		t.Fatalf("validate issued token: %v", err)
	}
	if claims.UserID != userID || claims.Role != enum.UserRoleAdmin {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	store := &mockAuthStore{
		getUserByEmailFn: func(ctx context.Context, email string) (database.User, error) {
			return database.User{
				ID:             uuid.New(),
				Email:          email,
				HashedPassword: string(hashed),
				Role:           enum.UserRoleStaff,
			}, nil
		},
	}
	r := newAuthRouter(store)

	body := bytes.NewBufferString(`{"email":"staff@hawkerhub.test","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	r := newAuthRouter(&mockAuthStore{})

	body := bytes.NewBufferString(`{"email":"nobody@hawkerhub.test","password":"whatever"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}

func TestLogin_BadRequest(t *testing.T) {
	r := newAuthRouter(&mockAuthStore{})

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{not json`},
		{"missing email", `{"password":"x"}`},
		{"missing password", `{"email":"a@b.c"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rec.Code)
			}
		})
	}
}
