package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"quiz-extensions/internal/middleware"
	"quiz-extensions/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ManualMockTokenVerifier is a func-field mock of service.TokenVerifier.
type ManualMockTokenVerifier struct {
	VerifyFunc func(ctx context.Context, tokenString string) (*service.LaunchClaims, error)
}

func (m *ManualMockTokenVerifier) Verify(ctx context.Context, tokenString string) (*service.LaunchClaims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, tokenString)
	}
	return nil, errors.New("VerifyFunc not set on mock")
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name             string
		authHeader       string
		verify           func(ctx context.Context, tokenString string) (*service.LaunchClaims, error)
		expectedStatus   int
		expectedCode     string
		expectedCourseID string
		expectedUserID   string
	}{
		{
			name:       "valid launch token",
			authHeader: "Bearer good_token",
			verify: func(ctx context.Context, tokenString string) (*service.LaunchClaims, error) {
				assert.Equal(t, "good_token", tokenString)
				return &service.LaunchClaims{CourseID: "42", UserID: "instructor-1"}, nil
			},
			expectedStatus:   fiber.StatusOK,
			expectedCourseID: "42",
			expectedUserID:   "instructor-1",
		},
		{
			name:           "missing header",
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "MISSING_AUTH_HEADER",
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic abc",
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "INVALID_AUTH_SCHEME",
		},
		{
			name:       "rejected token",
			authHeader: "Bearer expired",
			verify: func(ctx context.Context, tokenString string) (*service.LaunchClaims, error) {
				return nil, service.ErrInvalidLaunchToken
			},
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
		{
			name:       "token without course",
			authHeader: "Bearer no_course",
			verify: func(ctx context.Context, tokenString string) (*service.LaunchClaims, error) {
				return nil, service.ErrMissingCourse
			},
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verifier := &ManualMockTokenVerifier{VerifyFunc: tc.verify}
			app := fiber.New()

			nextCalled := false
			var courseID, userID string
			app.Get("/protected", middleware.Protected(verifier), func(c *fiber.Ctx) error {
				nextCalled = true
				courseID = middleware.CourseID(c)
				userID = middleware.UserID(c)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)

			if tc.expectedStatus == fiber.StatusOK {
				assert.True(t, nextCalled)
				assert.Equal(t, tc.expectedCourseID, courseID)
				assert.Equal(t, tc.expectedUserID, userID)
				return
			}

			assert.False(t, nextCalled, "next handler must not run")
			var body middleware.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.expectedCode, body.Code)
		})
	}
}

func TestProtected_EmptyBearer(t *testing.T) {
	verifier := &ManualMockTokenVerifier{}
	app := fiber.New()
	app.Get("/protected", middleware.Protected(verifier), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer ")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
