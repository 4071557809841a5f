package controller

import (
	"errors"
	"net/http"

	"school_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps service sentinels to the fixed client-facing
// responses; anything unrecognized is logged and masked as a 500.
func handleServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrClassNotFound),
		errors.Is(err, util.ErrCompetencyNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrAnswerNotFound),
		errors.Is(err, util.ErrKeyNotFound),
		errors.Is(err, util.ErrResultNotFound),
		errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(ctx)

	case errors.Is(err, util.ErrTestAlreadyCompleted):
		util.Conflict(ctx, "Tes sudah pernah diselesaikan")

	case errors.Is(err, util.ErrHasResults):
		util.Conflict(ctx, "Kompetensi sudah memiliki hasil tes")

	case errors.Is(err, util.ErrTestNotStarted):
		util.Error(ctx, http.StatusBadRequest, "Tes belum dimulai")

	case errors.Is(err, util.ErrIncompleteSubmission):
		util.Error(ctx, http.StatusBadRequest, "Semua pertanyaan harus dijawab")

	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)

	default:
		util.LogInternalError(ctx, err)
	}
}
