package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-123"

func signToken(t *testing.T, secret string, claims domain.AccessClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func whoAmIApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", VerifyToken(testSecret), func(c *fiber.Ctx) error {
		return c.SendString(GetUserID(c))
	})
	return app
}

func TestVerifyToken(t *testing.T) {
	valid := signToken(t, testSecret, domain.AccessClaims{
		UserID:           "user-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	subjectOnly := signToken(t, testSecret, domain.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-2"},
	})
	expired := signToken(t, testSecret, domain.AccessClaims{
		UserID:           "user-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
	})
	wrongKey := signToken(t, "other-secret", domain.AccessClaims{UserID: "user-1"})
	noUser := signToken(t, testSecret, domain.AccessClaims{})

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"valid bearer", "Bearer " + valid, fiber.StatusOK, "user-1"},
		{"raw token", valid, fiber.StatusOK, "user-1"},
		{"sub claim fallback", "Bearer " + subjectOnly, fiber.StatusOK, "user-2"},
		{"missing header", "", fiber.StatusUnauthorized, ""},
		{"expired", "Bearer " + expired, fiber.StatusUnauthorized, ""},
		{"wrong key", "Bearer " + wrongKey, fiber.StatusUnauthorized, ""},
		{"no user id", "Bearer " + noUser, fiber.StatusUnauthorized, ""},
	}

	app := whoAmIApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)

			if tt.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}
