package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/folio-space/core/internal/config"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func gatedRouter(auth *Authenticator, hits *int) *gin.Engine {
	r := gin.New()
	r.GET("/admin", AdminGate(auth), func(c *gin.Context) {
		*hits++
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAdminGateSecretMode(t *testing.T) {
	auth := NewAuthenticator(config.AuthConfig{TokenMode: config.TokenModeSecret, AdminSecret: "admin123"})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong", "Bearer nope", http.StatusUnauthorized},
		{"prefix only", "Bearer ", http.StatusUnauthorized},
		{"valid", "Bearer admin123", http.StatusNoContent},
		{"lowercase scheme", "bearer admin123", http.StatusNoContent},
		{"bare token", "admin123", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hits := 0
			r := gatedRouter(auth, &hits)
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
			if tc.want == http.StatusUnauthorized && hits != 0 {
				t.Fatal("handler ran for a rejected request")
			}
		})
	}
}

func TestAdminGateEmptySecretRejectsEverything(t *testing.T) {
	auth := NewAuthenticator(config.AuthConfig{TokenMode: config.TokenModeSecret})
	if auth.Verify("") || auth.Verify("anything") {
		t.Fatal("empty secret must not verify")
	}
}

func TestAuthenticatorJWTMode(t *testing.T) {
	auth := NewAuthenticator(config.AuthConfig{
		TokenMode: config.TokenModeJWT,
		JWTSecret: "signing-key",
		TokenTTL:  time.Hour,
	})
	token, expires, err := auth.Issue()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "signing-key" || expires.IsZero() {
		t.Fatalf("unexpected token %q expires %v", token, expires)
	}
	if !auth.Verify(token) {
		t.Fatal("issued token rejected")
	}
	if auth.Verify("signing-key") {
		t.Fatal("raw secret accepted in jwt mode")
	}

	other := NewAuthenticator(config.AuthConfig{TokenMode: config.TokenModeJWT, JWTSecret: "other", TokenTTL: time.Hour})
	if other.Verify(token) {
		t.Fatal("token signed with another key accepted")
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"  ":            "",
		"abc":           "",
		"Basic abc":     "",
		"Bearer abc":    "abc",
		"BEARER  abc  ": "abc",
		"Bearerabc":     "",
	}
	for in, want := range cases {
		if got := BearerToken(in); got != want {
			t.Errorf("BearerToken(%q) = %q, want %q", in, got, want)
		}
	}
}
