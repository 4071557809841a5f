package controller

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"school_exam_backend/internal/service"
	"school_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxAvatarSize = 2 << 20 // 2 MiB

type ProfileController struct {
	UserService    *service.UserService
	StorageService *service.StorageService
}

func NewProfileController(userService *service.UserService, storageService *service.StorageService) *ProfileController {
	return &ProfileController{UserService: userService, StorageService: storageService}
}

type ProfileRequest struct {
	Name                 string `json:"name" validate:"required,min=2,max=50"`
	Email                string `json:"email" validate:"omitempty,email"`
	Phone                string `json:"phone" validate:"omitempty,numeric,min=8,max=15"`
	Password             string `json:"password" validate:"omitempty,min=6,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Show godoc
// @Summary Profile of the signed-in user
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/profil [get]
func (c *ProfileController) Show(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	user, err := c.UserService.GetByID(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// Update godoc
// @Summary Edit own profile
// @Description Name, contact details and password. Role and username stay fixed.
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ProfileRequest true "Profile data"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/profil [put]
func (c *ProfileController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if fields := util.ValidateStruct(&req); !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	fields, err := c.UserService.UpdateProfile(claims.UserID, service.ProfileInput{
		Name:     req.Name,
		Email:    optional(req.Email),
		Phone:    optional(req.Phone),
		Password: req.Password,
	})
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	if !fields.Empty() {
		util.ValidationFailed(ctx, fields)
		return
	}

	util.Redirect(ctx, "Berhasil mengedit profil", "/profil")
}

// UploadAvatar godoc
// @Summary Upload a profile picture
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param avatar formData file true "Image file"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/profil/avatar [post]
func (c *ProfileController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	header, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "Avatar file is required")
		return
	}
	if header.Size > maxAvatarSize {
		util.BadRequest(ctx, "Avatar must not exceed 2 MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, e := range util.AllowedAvatarExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, "Avatar must be an image file")
		return
	}

	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	// Sniff the real content type, the extension alone is not trusted.
	mimeType, err := util.ValidateMimeType(file, []string{util.MimeImage})
	if err != nil {
		util.BadRequest(ctx, "Avatar must be an image file")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	if _, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, header.Size, mimeType); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.UserService.SetAvatar(ctx.Request.Context(), claims.UserID, filename); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.RedirectWithData(ctx, "Berhasil mengunggah avatar", gin.H{
		"avatar": filename,
		"url":    c.StorageService.GetURL(filename),
	}, "/profil")
}
