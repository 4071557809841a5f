package controller

import (
	"errors"
	"strconv"

	"school_exam_backend/internal/service"
	"school_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClassController struct {
	ClassService *service.ClassService
}

func NewClassController(classService *service.ClassService) *ClassController {
	return &ClassController{ClassService: classService}
}

// swagger:model ClassRequest
type ClassRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// Index godoc
// @Summary List classes
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Class}
// @Router /api/admin/kelas [get]
func (c *ClassController) Index(ctx *gin.Context) {
	classes, err := c.ClassService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, classes)
}

// Show godoc
// @Summary One class with its student roster
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param kelasId path int true "Class ID"
// @Success 200 {object} util.Response{data=model.Class}
// @Failure 404 {object} util.Response
// @Router /api/admin/kelas/{kelasId} [get]
func (c *ClassController) Show(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("kelasId"))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	class, err := c.ClassService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, class)
}

// Store godoc
// @Summary Create a class
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ClassRequest true "Class data"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/admin/kelas [post]
func (c *ClassController) Store(ctx *gin.Context) {
	var req ClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if fields := util.ValidateStruct(&req); !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	if _, err := c.ClassService.Create(req.Name); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Redirect(ctx, "Berhasil menambahkan kelas", "/admin/kelas")
}

// Update godoc
// @Summary Rename a class
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param kelasId path int true "Class ID"
// @Param body body ClassRequest true "Class data"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/kelas/{kelasId} [put]
func (c *ClassController) Update(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("kelasId"))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	var req ClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if fields := util.ValidateStruct(&req); !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	if _, err := c.ClassService.Update(uint(id), req.Name); err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Redirect(ctx, "Berhasil mengedit kelas", "/admin/kelas")
}

// Destroy godoc
// @Summary Delete a class
// @Description Students of the class are detached, not deleted.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param kelasId path int true "Class ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/kelas/{kelasId} [delete]
func (c *ClassController) Destroy(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("kelasId"))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	if err := c.ClassService.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Redirect(ctx, "Berhasil menghapus kelas", "/admin/kelas")
}
