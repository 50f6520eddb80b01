package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/hawkerhub/api/internal/auth"
	"github.com/hawkerhub/api/internal/enum"
	"github.com/hawkerhub/api/internal/middleware"
)

const testSecret = "middleware-test-secret"

func okHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func authedRequest(t *testing.T, role string) *http.Request {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, uuid.New(), role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthenticate_ValidToken(t *testing.T) {
	var called bool
	var gotClaims *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotClaims = middleware.ClaimsFromContext(r.Context())
	})
	h := middleware.Authenticate(testSecret)(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(t, enum.UserRoleStaff))

	if !called {
		t.Fatal("next handler not called")
	}
	if gotClaims == nil || gotClaims.Role != enum.UserRoleStaff {
		t.Errorf("claims not in context: %+v", gotClaims)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	var called bool
	h := middleware.Authenticate(testSecret)(okHandler(t, &called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	if called {
		t.Error("next handler should not be called")
	}
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	var called bool
	h := middleware.Authenticate(testSecret)(okHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	if called {
		t.Error("next handler should not be called")
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	var called bool
	h := middleware.Authenticate(testSecret)(okHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	if called {
		t.Error("next handler should not be called")
	}
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	token, err := auth.GenerateToken("other-secret", uuid.New(), enum.UserRoleAdmin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var called bool
	h := middleware.Authenticate(testSecret)(okHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	if called {
		t.Error("next handler should not be called")
	}
}

func TestRequireStaff(t *testing.T) {
	cases := []struct {
		role     string
		wantCode int
	}{
		{enum.UserRoleStaff, http.StatusOK},
		{enum.UserRoleAdmin, http.StatusOK},
		{"CUSTOMER", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			var called bool
			h := middleware.Authenticate(testSecret)(middleware.RequireStaff(okHandler(t, &called)))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, authedRequest(t, tc.role))

			if rec.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d", rec.Code, tc.wantCode)
			}
			if called != (tc.wantCode == http.StatusOK) {
				t.Errorf("next handler called = %v", called)
			}
		})
	}
}

func TestRequireStaff_NoClaims(t *testing.T) {
	var called bool
	h := middleware.RequireStaff(okHandler(t, &called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	if called {
		t.Error("next handler should not be called")
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{"admin allowed", enum.UserRoleAdmin, []string{enum.UserRoleAdmin}, http.StatusOK},
		{"staff rejected from admin", enum.UserRoleStaff, []string{enum.UserRoleAdmin}, http.StatusForbidden},
		{"multiple roles", enum.UserRoleStaff, []string{enum.UserRoleAdmin, enum.UserRoleStaff}, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var called bool
			h := middleware.Authenticate(testSecret)(middleware.RequireRole(tc.allowed...)(okHandler(t, &called)))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, authedRequest(t, tc.role))

			if rec.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d", rec.Code, tc.wantCode)
			}
		})
	}
}
