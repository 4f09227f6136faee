package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atlasbank/banking-service/internal/middleware"
)

const (
	testEmail    = "ops@atlasbank.local"
	testPassword = "s3cret"
)

var testSecret = []byte("test-secret")

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := HashPassword(testPassword)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return NewService(testSecret, testEmail, hash, time.Hour)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Login(testEmail, testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", testEmail, "nope"},
		{"unknown email", "other@atlasbank.local", testPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(tt.email, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

// A token minted by Login must pass the auth middleware it is meant for.
func TestLoginTokenPassesAuthMiddleware(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Login(testEmail, testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		subject, _ := middleware.GetSubject(c)
		c.JSON(http.StatusOK, gin.H{"subject": subject})
	})

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d; body: %s", w.Code, w.Body.String())
	}

	// No token, wrong scheme, garbage token: all rejected.
	for _, header := range []string{"", "Basic abc", "Bearer not-a-token"} {
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401 got %d", header, w.Code)
		}
	}
}
