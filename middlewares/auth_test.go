package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SrwR16/RecipeHub/utils"
	"github.com/gin-gonic/gin"
)

const secret = "mw-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func router(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/", append(mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": utils.CurrentUserID(c), "username": utils.CurrentUsername(c)})
	})...)
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func mustToken(t *testing.T, id uint) string {
	t.Helper()
	tok, err := utils.GenerateToken(id, "u", secret, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	r := router(AuthMiddleware(secret))

	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: got %d", w.Code)
	}
	if w := get(r, "Token abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong scheme: got %d", w.Code)
	}
	if w := get(r, "Bearer nope"); w.Code != http.StatusUnauthorized || w.Body.String() != `{"error":"invalid token","ok":false}` {
		t.Fatalf("bad token: got %d %s", w.Code, w.Body.String())
	}
	w := get(r, "Bearer "+mustToken(t, 7))
	if w.Code != http.StatusOK || w.Body.String() != `{"user":7,"username":"u"}` {
		t.Fatalf("valid token: %d %s", w.Code, w.Body.String())
	}
}

func TestOptionalAuth(t *testing.T) {
	r := router(OptionalAuth(secret))
	for _, h := range []string{"", "Bearer nope"} {
		w := get(r, h)
		if w.Code != http.StatusOK || w.Body.String() != `{"user":0,"username":""}` {
			t.Fatalf("%q should pass anonymously: %d %s", h, w.Code, w.Body.String())
		}
	}
	if w := get(r, "Bearer "+mustToken(t, 3)); w.Body.String() != `{"user":3,"username":"u"}` {
		t.Fatalf("identity not set: %s", w.Body.String())
	}
}

func TestCORSAllowsConfiguredOrigins(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Fatalf("origin not allowed: %v", w.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected foreign origin to be refused, got %d", w.Code)
	}
}
