package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/security"
)

func TestAuthMiddleware(t *testing.T) {
	authService := security.NewAuthService("unit-test-secret-0123456789abcdef", time.Hour)
	token, err := authService.GenerateToken(7)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	var gotUserID int64
	var gotOK bool
	protected := AuthMiddleware(authService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID, gotOK = 0, false
			req := httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			protected.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusNoContent {
				if !gotOK || gotUserID != 7 {
					t.Errorf("context userID = %d (ok=%v), want 7", gotUserID, gotOK)
				}
			}
		})
	}
}

func TestNotFoundHandler(t *testing.T) {
	t.Run("api path gets JSON 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/no-such-route", nil)
		rr := httptest.NewRecorder()
		NotFoundHandler(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if !strings.Contains(rr.Body.String(), "Not found") {
			t.Errorf("body = %q, want a JSON error envelope", rr.Body.String())
		}
	})

	t.Run("non-api path gets plain 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/favicon.ico", nil)
		rr := httptest.NewRecorder()
		NotFoundHandler(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rr.Code)
		}
	})
}
