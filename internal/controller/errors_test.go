package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"school_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, err error) (*httptest.ResponseRecorder, util.Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handleServiceError(ctx, err)

	var body util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"missing user", util.ErrUserNotFound, http.StatusNotFound, "Data not found"},
		{"missing competency", util.ErrCompetencyNotFound, http.StatusNotFound, "Data not found"},
		{"completed test", util.ErrTestAlreadyCompleted, http.StatusConflict, "Tes sudah pernah diselesaikan"},
		{"competency with results", util.ErrHasResults, http.StatusConflict, "Kompetensi sudah memiliki hasil tes"},
		{"not started", util.ErrTestNotStarted, http.StatusBadRequest, "Tes belum dimulai"},
		{"incomplete sheet", util.ErrIncompleteSubmission, http.StatusBadRequest, "Semua pertanyaan harus dijawab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := serve(t, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, body.Status)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestHandleServiceErrorForbidden(t *testing.T) {
	w, body := serve(t, util.ErrPermissionDenied)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, body.Status)
}

func TestHandleServiceErrorMasksUnknown(t *testing.T) {
	w, body := serve(t, errors.New("driver: bad connection"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, body.Status)
	assert.NotContains(t, body.Message, "driver", "internal detail must not leak")
}
