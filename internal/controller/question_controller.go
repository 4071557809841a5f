package controller

import (
	"strconv"

	"school_exam_backend/internal/service"
	"school_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

type QuestionRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1"`
	Order  int    `json:"order" validate:"gte=0"`
}

// Index godoc
// @Summary Questions of a competency
// @Tags question
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 404 {object} util.Response
// @Router /api/kompetensi/{slug}/pertanyaan [get]
func (c *QuestionController) Index(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	questions, err := c.QuestionService.ListQuestions(claims, ctx.Param("slug"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// Show godoc
// @Summary One question with its options and key
// @Tags question
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Param pertanyaanId path int true "Question ID"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/kompetensi/{slug}/pertanyaan/{pertanyaanId} [get]
func (c *QuestionController) Show(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	questionID, ok := pathID(ctx, "pertanyaanId")
	if !ok {
		return
	}

	question, err := c.QuestionService.GetQuestion(claims, ctx.Param("slug"), questionID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// Store godoc
// @Summary Add a question to a competency
// @Tags question
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Param body body QuestionRequest true "Question data"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/kompetensi/{slug}/pertanyaan [post]
func (c *QuestionController) Store(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if fields := util.ValidateStruct(&req); !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	slug := ctx.Param("slug")
	if _, err := c.QuestionService.CreateQuestion(ctx.Request.Context(), claims, slug, req.Prompt, req.Order); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Redirect(ctx, "Berhasil menambahkan pertanyaan", "/kompetensi/"+slug+"/pertanyaan")
}

// Update godoc
// @Summary Edit a question
// @Tags question
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Param pertanyaanId path int true "Question ID"
// @Param body body QuestionRequest true "Question data"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/kompetensi/{slug}/pertanyaan/{pertanyaanId} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	questionID, ok := pathID(ctx, "pertanyaanId")
	if !ok {
		return
	}

	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if fields := util.ValidateStruct(&req); !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	slug := ctx.Param("slug")
	if _, err := c.QuestionService.UpdateQuestion(ctx.Request.Context(), claims, slug, questionID, req.Prompt, req.Order); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Redirect(ctx, "Berhasil mengedit pertanyaan", "/kompetensi/"+slug+"/pertanyaan")
}

// Destroy godoc
// @Summary Delete a question
// @Description Removes the question together with its options and answer key.
// @Tags question
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Param pertanyaanId path int true "Question ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/kompetensi/{slug}/pertanyaan/{pertanyaanId} [delete]
func (c *QuestionController) Destroy(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	questionID, ok := pathID(ctx, "pertanyaanId")
	if !ok {
		return
	}

	slug := ctx.Param("slug")
	if err := c.QuestionService.DeleteQuestion(ctx.Request.Context(), claims, slug, questionID); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Redirect(ctx, "Berhasil menghapus pertanyaan", "/kompetensi/"+slug+"/pertanyaan")
}

// pathID parses a numeric path parameter, replying 404 on garbage so
// probing /pertanyaan/abc behaves like a missing record.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.NotFound(ctx)
		return 0, false
	}
	return uint(id), true
}
