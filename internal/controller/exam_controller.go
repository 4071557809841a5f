package controller

import (
	"school_exam_backend/internal/service"
	"school_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ExamController carries the student-facing side of a test: viewing the
// sheet, starting the clock, handing it in and reviewing own results.
type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

type SubmissionRequest struct {
	// Answers maps question IDs to the chosen option ID.
	Answers map[uint]uint `json:"answers" validate:"required"`
}

// Show godoc
// @Summary Test sheet for a student
// @Description Questions and options without keys, plus attempt status and remaining time.
// @Tags exam
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Success 200 {object} util.Response{data=service.StudentTestView}
// @Failure 404 {object} util.Response
// @Router /api/tes/{slug} [get]
func (c *ExamController) Show(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	view, err := c.ExamService.GetTestView(ctx.Request.Context(), claims.UserID, ctx.Param("slug"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Start godoc
// @Summary Start a test attempt
// @Description Resumes an open attempt if one exists. Blocked after completion unless retakes are enabled.
// @Tags exam
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Success 200 {object} util.Response{data=model.TestAttempt}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/tes/{slug}/mulai [post]
func (c *ExamController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	attempt, err := c.ExamService.StartTest(claims.UserID, ctx.Param("slug"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// Submit godoc
// @Summary Hand in a test
// @Description Grades the submission and records an immutable result. A second hand-in is rejected.
// @Tags exam
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Param body body SubmissionRequest true "Chosen answers"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/tes/{slug} [post]
func (c *ExamController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExamService.SubmitTest(ctx.Request.Context(), claims.UserID, ctx.Param("slug"), req.Answers)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.RedirectWithData(ctx, "Tes berhasil diselesaikan", result, "/tes/hasil-tes")
}

// Results godoc
// @Summary Results of the current student
// @Tags exam
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Result}
// @Router /api/hasil-tes-saya [get]
func (c *ExamController) Results(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	results, err := c.ExamService.StudentResults(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// ResultDetail godoc
// @Summary One result of the current student
// @Description Includes the per-question answer snapshots taken at grading time.
// @Tags exam
// @Produce json
// @Security ApiKeyAuth
// @Param hasilId path int true "Result ID"
// @Success 200 {object} util.Response{data=model.Result}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/hasil-tes-saya/{hasilId} [get]
func (c *ExamController) ResultDetail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	resultID, ok := pathID(ctx, "hasilId")
	if !ok {
		return
	}

	result, err := c.ExamService.StudentResultDetail(claims.UserID, resultID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
