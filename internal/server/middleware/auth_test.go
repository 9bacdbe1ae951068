package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func runAuth(t *testing.T, app *App, authHeader string) (*httptest.ResponseRecorder, *AppUser) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	cc := &AppContext{e.NewContext(req, rec), app, nil}

	var user *AppUser
	handler := AuthMiddleware(func(c echo.Context) error {
		user = c.(*AppContext).User
		return c.String(http.StatusOK, "ok")
	})
	if err := handler(cc); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec, user
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestAuthMissingHeader(t *testing.T) {
	app := &App{JWTSecret: []byte(testSecret)}

	rec, _ := runAuth(t, app, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMasterKey(t *testing.T) {
	app := &App{JWTSecret: []byte(testSecret), MasterAPIKey: "master-key"}

	rec, user := runAuth(t, app, "Bearer master-key")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if user == nil || user.Role != "admin" {
		t.Errorf("expected admin user, got %+v", user)
	}
	if !HasPermission(user, "finetune.create") {
		t.Errorf("master key user should hold all permissions")
	}
}

func TestAuthValidJWT(t *testing.T) {
	app := &App{JWTSecret: []byte(testSecret)}

	token := signToken(t, jwt.MapClaims{
		"id":          "42",
		"role":        "user",
		"permissions": []any{"knowledge.update"},
		"exp":         time.Now().Add(time.Hour).Unix(),
	})

	rec, user := runAuth(t, app, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if user == nil {
		t.Fatal("expected user on context")
	}
	if user.UserID != 42 {
		t.Errorf("expected user id 42, got %d", user.UserID)
	}
	if !HasPermission(user, "knowledge.update") {
		t.Errorf("expected knowledge.update permission")
	}
	if HasPermission(user, "document.delete") {
		t.Errorf("unexpected document.delete permission")
	}
}

func TestAuthNumericIDClaim(t *testing.T) {
	app := &App{JWTSecret: []byte(testSecret)}

	token := signToken(t, jwt.MapClaims{
		"id":  float64(7),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, user := runAuth(t, app, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if user.UserID != 7 {
		t.Errorf("expected user id 7, got %d", user.UserID)
	}
	if user.Role != "user" {
		t.Errorf("expected default role user, got %q", user.Role)
	}
}

func TestAuthAdminGetsAllPermissions(t *testing.T) {
	app := &App{JWTSecret: []byte(testSecret)}

	token := signToken(t, jwt.MapClaims{
		"id":   "1",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	_, user := runAuth(t, app, "Bearer "+token)
	if user == nil {
		t.Fatal("expected user on context")
	}
	for _, p := range allPermissions {
		if !HasPermission(user, p) {
			t.Errorf("admin missing permission %q", p)
		}
	}
}

func TestAuthWrongSecret(t *testing.T) {
	app := &App{JWTSecret: []byte(testSecret)}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "1"})
	signed, err := token.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	rec, _ := runAuth(t, app, "Bearer "+signed)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthExpiredJWT(t *testing.T) {
	app := &App{JWTSecret: []byte(testSecret)}

	token := signToken(t, jwt.MapClaims{
		"id":  "1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	rec, _ := runAuth(t, app, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestIsAdmin(t *testing.T) {
	if IsAdmin(nil) {
		t.Error("nil user should not be admin")
	}
	if IsAdmin(&AppUser{Role: "user"}) {
		t.Error("user role should not be admin")
	}
	if !IsAdmin(&AppUser{Role: "admin"}) {
		t.Error("admin role should be admin")
	}
}
