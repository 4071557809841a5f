package controller

import (
	"school_exam_backend/internal/model"
	"school_exam_backend/internal/service"
	"school_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CompetencyController struct {
	CompetencyService *service.CompetencyService
}

func NewCompetencyController(competencyService *service.CompetencyService) *CompetencyController {
	return &CompetencyController{CompetencyService: competencyService}
}

// swagger:model CompetencyRequest
type CompetencyRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=150"`
	Description string `json:"description"`
	// Duration is the time limit in minutes, 0 for untimed
	Duration int `json:"duration" validate:"gte=0"`
}

// Index godoc
// @Summary List competencies
// @Description Teachers see their own competencies, admins all of them.
// @Tags competency
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Competency}
// @Router /api/kompetensi [get]
func (c *CompetencyController) Index(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var (
		competencies []model.Competency
		err          error
	)
	if claims.Role == model.Teacher {
		competencies, err = c.CompetencyService.ListByTeacher(claims.UserID)
	} else {
		competencies, err = c.CompetencyService.List()
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, competencies)
}

// Show godoc
// @Summary One competency by slug
// @Tags competency
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Success 200 {object} util.Response{data=model.Competency}
// @Failure 404 {object} util.Response
// @Router /api/kompetensi/{slug} [get]
func (c *CompetencyController) Show(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	competency, err := c.CompetencyService.GetForStaff(claims, ctx.Param("slug"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, competency)
}

// Store godoc
// @Summary Create a competency
// @Description The slug is derived from the title and stays stable afterwards.
// @Tags competency
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CompetencyRequest true "Competency data"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/kompetensi [post]
func (c *CompetencyController) Store(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req CompetencyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if fields := util.ValidateStruct(&req); !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	competency, err := c.CompetencyService.Create(claims.UserID, req.Title, req.Description, req.Duration)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Redirect(ctx, "Berhasil menambahkan kompetensi", "/kompetensi/"+competency.Slug)
}

// Update godoc
// @Summary Edit a competency
// @Tags competency
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Param body body CompetencyRequest true "Competency data"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/kompetensi/{slug} [put]
func (c *CompetencyController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req CompetencyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if fields := util.ValidateStruct(&req); !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	slug := ctx.Param("slug")
	if _, err := c.CompetencyService.Update(ctx.Request.Context(), claims, slug, req.Title, req.Description, req.Duration); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Redirect(ctx, "Berhasil mengedit kompetensi", "/kompetensi/"+slug)
}

// Destroy godoc
// @Summary Delete a competency
// @Description Cascades questions, options and keys; refused while results exist.
// @Tags competency
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/kompetensi/{slug} [delete]
func (c *CompetencyController) Destroy(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.CompetencyService.Delete(ctx.Request.Context(), claims, ctx.Param("slug")); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Redirect(ctx, "Berhasil menghapus kompetensi", "/kompetensi")
}
