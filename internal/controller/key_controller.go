package controller

import (
	"school_exam_backend/internal/service"
	"school_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type KeyController struct {
	QuestionService *service.QuestionService
}

func NewKeyController(questionService *service.QuestionService) *KeyController {
	return &KeyController{QuestionService: questionService}
}

type AnswerKeyRequest struct {
	AnswerOptionID uint `json:"answer_option_id" validate:"required"`
}

// Store godoc
// @Summary Mark an option as the correct answer
// @Description Creating a key for a question that already has one moves it.
// @Tags key
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Param pertanyaanId path int true "Question ID"
// @Param body body AnswerKeyRequest true "Key data"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/kompetensi/{slug}/pertanyaan/{pertanyaanId}/kunci-jawaban [post]
func (c *KeyController) Store(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	questionID, ok := pathID(ctx, "pertanyaanId")
	if !ok {
		return
	}

	var req AnswerKeyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if fields := util.ValidateStruct(&req); !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	slug := ctx.Param("slug")
	if _, err := c.QuestionService.AssignKey(ctx.Request.Context(), claims, slug, questionID, req.AnswerOptionID); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Redirect(ctx, "Berhasil menambahkan kunci jawaban", "/kompetensi/"+slug+"/pertanyaan")
}

// Destroy godoc
// @Summary Remove the answer key of a question
// @Tags key
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Param pertanyaanId path int true "Question ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/kompetensi/{slug}/pertanyaan/{pertanyaanId}/kunci-jawaban [delete]
func (c *KeyController) Destroy(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	questionID, ok := pathID(ctx, "pertanyaanId")
	if !ok {
		return
	}

	slug := ctx.Param("slug")
	if err := c.QuestionService.RemoveKey(ctx.Request.Context(), claims, slug, questionID); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Redirect(ctx, "Berhasil menghapus kunci jawaban", "/kompetensi/"+slug+"/pertanyaan")
}
