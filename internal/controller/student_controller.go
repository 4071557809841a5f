package controller

import (
	"errors"
	"strconv"

	"school_exam_backend/internal/model"
	"school_exam_backend/internal/service"
	"school_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// StudentController is the admin surface for student (siswa) accounts,
// always scoped to a class.
type StudentController struct {
	UserService  *service.UserService
	ClassService *service.ClassService
}

func NewStudentController(userService *service.UserService, classService *service.ClassService) *StudentController {
	return &StudentController{
		UserService:  userService,
		ClassService: classService,
	}
}

// Roster godoc
// @Summary All student accounts
// @Description Staff-wide roster across classes, with class preloaded.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/siswa [get]
func (c *StudentController) Roster(ctx *gin.Context) {
	students, err := c.UserService.ListByRole(model.Student)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// Index godoc
// @Summary List the students of a class
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param kelasId path int true "Class ID"
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 404 {object} util.Response
// @Router /api/admin/kelas/{kelasId}/siswa [get]
func (c *StudentController) Index(ctx *gin.Context) {
	class, ok := c.class(ctx)
	if !ok {
		return
	}

	students, err := c.UserService.ListStudentsByClass(class.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// Store godoc
// @Summary Create a student account in a class
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param kelasId path int true "Class ID"
// @Param body body TeacherRequest true "Student data"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "field error map"
// @Router /api/admin/kelas/{kelasId}/siswa [post]
func (c *StudentController) Store(ctx *gin.Context) {
	class, ok := c.class(ctx)
	if !ok {
		return
	}

	var req TeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if fields := util.ValidateStruct(&req); !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	input := service.UserInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    optional(req.Email),
		Phone:    optional(req.Phone),
		ClassID:  &class.ID,
	}

	_, fields, err := c.UserService.CreateWithRole(input, model.Student)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	util.Redirect(ctx, "Berhasil menambahkan siswa", classURL(class.ID))
}

// Update godoc
// @Summary Update a student account
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param kelasId path int true "Class ID"
// @Param id path int true "Student ID"
// @Param body body TeacherUpdateRequest true "Student data"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/kelas/{kelasId}/siswa/{id} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	class, ok := c.class(ctx)
	if !ok {
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	var req TeacherUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if fields := util.ValidateStruct(&req); !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	input := service.UserInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    optional(req.Email),
		Phone:    optional(req.Phone),
		Password: req.Password,
		ClassID:  &class.ID,
	}

	fields, err := c.UserService.Update(uint(id), model.Student, input)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	util.Redirect(ctx, "Berhasil mengedit siswa", classURL(class.ID))
}

// Destroy godoc
// @Summary Delete a student account
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param kelasId path int true "Class ID"
// @Param id path int true "Student ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/kelas/{kelasId}/siswa/{id} [delete]
func (c *StudentController) Destroy(ctx *gin.Context) {
	class, ok := c.class(ctx)
	if !ok {
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	if err := c.UserService.Delete(ctx.Request.Context(), uint(id), model.Student); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Redirect(ctx, "Berhasil menghapus siswa", classURL(class.ID))
}

func (c *StudentController) class(ctx *gin.Context) (*model.Class, bool) {
	kelasID, err := strconv.Atoi(ctx.Param("kelasId"))
	if err != nil {
		util.NotFound(ctx)
		return nil, false
	}

	class, err := c.ClassService.Get(uint(kelasID))
	if err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return nil, false
	}
	return class, true
}

func classURL(classID uint) string {
	return "/admin/kelas/" + strconv.FormatUint(uint64(classID), 10) + "/siswa"
}
