package controller

import (
	"school_exam_backend/internal/service"
	"school_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnswerController struct {
	QuestionService *service.QuestionService
}

func NewAnswerController(questionService *service.QuestionService) *AnswerController {
	return &AnswerController{QuestionService: questionService}
}

type AnswerOptionRequest struct {
	Label string `json:"label" validate:"required,min=1,max=5"`
	Text  string `json:"text" validate:"required,min=1"`
}

// Index godoc
// @Summary Answer options of a question
// @Tags answer
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Param pertanyaanId path int true "Question ID"
// @Success 200 {object} util.Response{data=[]model.AnswerOption}
// @Failure 404 {object} util.Response
// @Router /api/kompetensi/{slug}/pertanyaan/{pertanyaanId}/butir-jawaban [get]
func (c *AnswerController) Index(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	questionID, ok := pathID(ctx, "pertanyaanId")
	if !ok {
		return
	}

	options, err := c.QuestionService.ListOptions(claims, ctx.Param("slug"), questionID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, options)
}

// Store godoc
// @Summary Add an answer option
// @Tags answer
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Param pertanyaanId path int true "Question ID"
// @Param body body AnswerOptionRequest true "Option data"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/kompetensi/{slug}/pertanyaan/{pertanyaanId}/butir-jawaban [post]
func (c *AnswerController) Store(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	questionID, ok := pathID(ctx, "pertanyaanId")
	if !ok {
		return
	}

	var req AnswerOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if fields := util.ValidateStruct(&req); !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	slug := ctx.Param("slug")
	if _, err := c.QuestionService.CreateOption(ctx.Request.Context(), claims, slug, questionID, req.Label, req.Text); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Redirect(ctx, "Berhasil menambahkan butir jawaban", "/kompetensi/"+slug+"/pertanyaan")
}

// Update godoc
// @Summary Edit an answer option
// @Tags answer
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Param pertanyaanId path int true "Question ID"
// @Param butirId path int true "Option ID"
// @Param body body AnswerOptionRequest true "Option data"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/kompetensi/{slug}/pertanyaan/{pertanyaanId}/butir-jawaban/{butirId} [put]
func (c *AnswerController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	questionID, ok := pathID(ctx, "pertanyaanId")
	if !ok {
		return
	}
	optionID, ok := pathID(ctx, "butirId")
	if !ok {
		return
	}

	var req AnswerOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if fields := util.ValidateStruct(&req); !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	slug := ctx.Param("slug")
	if _, err := c.QuestionService.UpdateOption(ctx.Request.Context(), claims, slug, questionID, optionID, req.Label, req.Text); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Redirect(ctx, "Berhasil mengedit butir jawaban", "/kompetensi/"+slug+"/pertanyaan")
}

// Destroy godoc
// @Summary Delete an answer option
// @Description Dropping the option also clears a key that pointed at it.
// @Tags answer
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Param pertanyaanId path int true "Question ID"
// @Param butirId path int true "Option ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/kompetensi/{slug}/pertanyaan/{pertanyaanId}/butir-jawaban/{butirId} [delete]
func (c *AnswerController) Destroy(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	questionID, ok := pathID(ctx, "pertanyaanId")
	if !ok {
		return
	}
	optionID, ok := pathID(ctx, "butirId")
	if !ok {
		return
	}

	slug := ctx.Param("slug")
	if err := c.QuestionService.DeleteOption(ctx.Request.Context(), claims, slug, questionID, optionID); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Redirect(ctx, "Berhasil menghapus butir jawaban", "/kompetensi/"+slug+"/pertanyaan")
}
