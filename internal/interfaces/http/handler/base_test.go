package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/interfaces/http/dto"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setJWTContext simulates an authenticated request without a real token
func setJWTContext(c *gin.Context, organizationID, userID uuid.UUID) {
	c.Set(middleware.JWTOrganizationIDKey, organizationID.String())
	c.Set(middleware.JWTUserIDKey, userID.String())
}

func newTestContext(t *testing.T, method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	return c, w
}

func TestGetUserID(t *testing.T) {
	c, _ := newTestContext(t, "GET", "/")
	userID := uuid.New()
	setJWTContext(c, uuid.New(), userID)

	got, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestGetUserID_Missing(t *testing.T) {
	c, _ := newTestContext(t, "GET", "/")

	_, err := getUserID(c)
	assert.Error(t, err)
}

func TestGetOrganizationID(t *testing.T) {
	c, _ := newTestContext(t, "GET", "/")
	organizationID := uuid.New()
	setJWTContext(c, organizationID, uuid.New())

	got, err := getOrganizationID(c)
	require.NoError(t, err)
	assert.Equal(t, organizationID, got)
}

func TestGetRequestID_PrefersContext(t *testing.T) {
	c, _ := newTestContext(t, "GET", "/")
	c.Request.Header.Set("X-Request-ID", "header-id")
	c.Set(middleware.RequestIDContextKey, "ctx-id")

	assert.Equal(t, "ctx-id", getRequestID(c))
}

func TestGetRequestID_FallsBackToHeader(t *testing.T) {
	c, _ := newTestContext(t, "GET", "/")
	c.Request.Header.Set("X-Request-ID", "header-id")

	assert.Equal(t, "header-id", getRequestID(c))
}

func TestHandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name         string
		err          error
		expectStatus int
		expectCode   string
	}{
		{
			name:         "not found",
			err:          shared.ErrNotFound,
			expectStatus: http.StatusNotFound,
			expectCode:   "NOT_FOUND",
		},
		{
			name:         "concurrency conflict",
			err:          shared.ErrConcurrencyConflict,
			expectStatus: http.StatusConflict,
			expectCode:   "CONCURRENCY_CONFLICT",
		},
		{
			name:         "validation error with field",
			err:          shared.NewFieldError(shared.ErrCodeValidation, "Value out of range", "amount"),
			expectStatus: http.StatusBadRequest,
			expectCode:   shared.ErrCodeValidation,
		},
		{
			name:         "wrapped domain error",
			err:          fmt.Errorf("saving record: %w", shared.ErrConcurrencyConflict),
			expectStatus: http.StatusConflict,
			expectCode:   "CONCURRENCY_CONFLICT",
		},
		{
			name:         "unknown error",
			err:          errors.New("boom"),
			expectStatus: http.StatusInternalServerError,
			expectCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t, "GET", "/")
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectStatus, w.Code)

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectCode, resp.Error.Code)
		})
	}
}

func TestHandleError_FieldCarriedThrough(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t, "GET", "/")

	h.HandleError(c, shared.NewFieldError(shared.ErrCodeType, "Expected a number", "quantity"))

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "quantity", resp.Error.Field)
}

func TestSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t, "GET", "/")

	h.SuccessWithMeta(c, []string{"a", "b"}, 42, 2, 20)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(42), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
