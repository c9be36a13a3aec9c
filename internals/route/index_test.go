package routes

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"hrportal_backend/internals/constants"
	"hrportal_backend/internals/features/presence"
	middlewares "hrportal_backend/internals/middlewares"
	authMiddleware "hrportal_backend/internals/middlewares/auth"
	"hrportal_backend/internals/testsupport"
)

const secret = "route-secret"

func newServer(t *testing.T, jwtSecret string) *fiber.App {
	t.Helper()
	db := testsupport.OpenTestDB(t)
	cfg := testsupport.Config()
	cfg.ReaderKey = "reader-key"
	testsupport.CreateEmployee(t, db, "E001")

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler(zap.NewNop())})
	SetupRoutes(app, db, presence.NewEngine(db, cfg, zap.NewNop()), jwtSecret, zap.NewNop())
	return app
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "u-" + role,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + s
}

func status(t *testing.T, app *fiber.App, method, target string, headers map[string]string) int {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, target, err)
	}
	return resp.StatusCode
}

func TestRoutes_Wiring(t *testing.T) {
	app := newServer(t, secret)
	swipe := "/api/presence/swipes?badge_tag=TAG-E001&room_no=77&location_name=Main%20Gate"

	cases := []struct {
		name    string
		method  string
		target  string
		headers map[string]string
		want    int
	}{
		{"health", "GET", "/health", nil, fiber.StatusOK},
		{"swipe without reader key", "POST", swipe, nil, fiber.StatusUnauthorized},
		{"swipe with reader key", "POST", swipe, map[string]string{authMiddleware.HeaderReaderKey: "reader-key"}, fiber.StatusOK},
		{"daily without token", "GET", "/api/a/presence/daily", nil, fiber.StatusUnauthorized},
		{"daily as employee", "GET", "/api/a/presence/daily", map[string]string{fiber.HeaderAuthorization: bearer(t, constants.RoleEmployee)}, fiber.StatusForbidden},
		{"daily as manager", "GET", "/api/a/presence/daily", map[string]string{fiber.HeaderAuthorization: bearer(t, constants.RoleManager)}, fiber.StatusOK},
		{"headcount as manager", "GET", "/api/a/presence/headcount", map[string]string{fiber.HeaderAuthorization: bearer(t, constants.RoleManager)}, fiber.StatusOK},
		{"unmatched as manager", "GET", "/api/a/presence/unmatched", map[string]string{fiber.HeaderAuthorization: bearer(t, constants.RoleManager)}, fiber.StatusForbidden},
		{"tick as manager", "POST", "/api/a/presence/leadership/tick", map[string]string{fiber.HeaderAuthorization: bearer(t, constants.RoleManager)}, fiber.StatusForbidden},
		{"tick as admin", "POST", "/api/a/presence/leadership/tick", map[string]string{fiber.HeaderAuthorization: bearer(t, constants.RoleAdmin)}, fiber.StatusOK},
		{"sweep as admin", "POST", "/api/a/presence/sweep?day=2026-10-18", map[string]string{fiber.HeaderAuthorization: bearer(t, constants.RoleAdmin)}, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := status(t, app, tc.method, tc.target, tc.headers); got != tc.want {
				t.Fatalf("status = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRoutes_EmptySecretLocksAdmin(t *testing.T) {
	app := newServer(t, "")
	got := status(t, app, "GET", "/api/a/presence/daily", map[string]string{fiber.HeaderAuthorization: bearer(t, constants.RoleAdmin)})
	if got != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", got)
	}
}
