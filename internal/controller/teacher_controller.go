package controller

import (
	"errors"
	"strconv"

	"school_exam_backend/internal/model"
	"school_exam_backend/internal/service"
	"school_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TeacherController is the admin surface for teacher (guru) accounts.
type TeacherController struct {
	UserService *service.UserService
}

func NewTeacherController(userService *service.UserService) *TeacherController {
	return &TeacherController{UserService: userService}
}

// swagger:model TeacherRequest
type TeacherRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Username string `json:"username" validate:"required,min=2,max=50,username"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,numeric,min=8,max=15"`
}

// swagger:model TeacherUpdateRequest
type TeacherUpdateRequest struct {
	Name                 string `json:"name" validate:"required,min=2,max=50"`
	Username             string `json:"username" validate:"required,min=2,max=50,username"`
	Email                string `json:"email" validate:"omitempty,email"`
	Phone                string `json:"phone" validate:"omitempty,numeric,min=8,max=15"`
	Password             string `json:"password" validate:"omitempty,min=6,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Index godoc
// @Summary List teacher accounts
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/admin/guru [get]
func (c *TeacherController) Index(ctx *gin.Context) {
	teachers, err := c.UserService.ListByRole(model.Teacher)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, teachers)
}

// Store godoc
// @Summary Create a teacher account
// @Description The account is created with the server-side default password.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body TeacherRequest true "Teacher data"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "field error map"
// @Router /api/admin/guru [post]
func (c *TeacherController) Store(ctx *gin.Context) {
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
	}

	_, fields, err := c.UserService.CreateWithRole(input, model.Teacher)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	util.Redirect(ctx, "Berhasil menambahkan guru", "/admin/guru")
}

// Update godoc
// @Summary Update a teacher account
// @Description The stored password is replaced only when a new one is provided.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Teacher ID"
// @Param body body TeacherUpdateRequest true "Teacher data"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "field error map"
// @Failure 404 {object} util.Response
// @Router /api/admin/guru/{id} [put]
func (c *TeacherController) Update(ctx *gin.Context) {
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
	}

	fields, err := c.UserService.Update(uint(id), model.Teacher, input)
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

	util.Redirect(ctx, "Berhasil mengedit guru", "/admin/guru")
}

// Destroy godoc
// @Summary Delete a teacher account
// @Description Removes the account and releases its avatar file.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Teacher ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/guru/{id} [delete]
func (c *TeacherController) Destroy(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	if err := c.UserService.Delete(ctx.Request.Context(), uint(id), model.Teacher); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Redirect(ctx, "Berhasil menghapus guru", "/admin/guru")
}

// optional maps an empty form value to nil so it is stored as NULL
// and skips the uniqueness checks.
func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
