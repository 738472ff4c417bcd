package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "expohall/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWithError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		handleServiceError(c, err)
	})

	req, _ := http.NewRequest("GET", "/boom", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.Validation("bad input"), http.StatusBadRequest},
		{"not found", apperrors.NotFound("event", "42"), http.StatusNotFound},
		{"conflict", apperrors.Conflict("booth", "2026-09-01 - 2026-09-05", "Hall A"), http.StatusConflict},
		{"dependency", apperrors.Dependency("event still has schedules"), http.StatusConflict},
		{"immutable", apperrors.Immutable("dates are frozen"), http.StatusConflict},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveWithError(t, tt.err)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHandleServiceError_ConflictBody(t *testing.T) {
	w := serveWithError(t, apperrors.Conflict("booth", "2026-09-01 - 2026-09-05", "Hall A", "Hall B"))

	var body struct {
		Error     string   `json:"error"`
		Conflicts []string `json:"conflicts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"Hall A", "Hall B"}, body.Conflicts)
	assert.Contains(t, body.Error, "Hall A")
}

func TestHandleServiceError_InternalErrorIsOpaque(t *testing.T) {
	w := serveWithError(t, errors.New("pq: password authentication failed"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["error"])
}
