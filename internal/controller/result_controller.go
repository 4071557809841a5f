package controller

import (
	"fmt"
	"net/http"

	"school_exam_backend/internal/service"
	"school_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ResultController is the staff-side view over recorded results.
type ResultController struct {
	ExamService       *service.ExamService
	CompetencyService *service.CompetencyService
	ExportService     *service.ExportService
}

func NewResultController(
	examService *service.ExamService,
	competencyService *service.CompetencyService,
	exportService *service.ExportService,
) *ResultController {
	return &ResultController{
		ExamService:       examService,
		CompetencyService: competencyService,
		ExportService:     exportService,
	}
}

// Index godoc
// @Summary Results of a competency
// @Description Teachers only see results for their own competencies.
// @Tags result
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Success 200 {object} util.Response{data=[]model.Result}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/hasil-tes/{slug} [get]
func (c *ResultController) Index(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	results, err := c.ExamService.TeacherResults(claims, ctx.Param("slug"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// Show godoc
// @Summary One result with answer snapshots
// @Tags result
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Param hasilId path int true "Result ID"
// @Success 200 {object} util.Response{data=model.Result}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/hasil-tes/{slug}/hasil/{hasilId} [get]
func (c *ResultController) Show(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	resultID, ok := pathID(ctx, "hasilId")
	if !ok {
		return
	}

	result, err := c.ExamService.TeacherResultDetail(claims, ctx.Param("slug"), resultID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Export godoc
// @Summary Download results as an XLSX workbook
// @Tags result
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param slug path string true "Competency slug"
// @Success 200 {file} binary
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/hasil-tes/{slug}/ekspor [get]
func (c *ResultController) Export(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	slug := ctx.Param("slug")
	results, err := c.ExamService.TeacherResults(claims, slug)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	competency, err := c.CompetencyService.GetBySlug(slug)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	workbook, err := c.ExportService.ResultsWorkbook(competency, results)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("hasil-tes-%s.xlsx", slug)
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(ctx.Writer); err != nil {
		ctx.Status(http.StatusInternalServerError)
	}
}
