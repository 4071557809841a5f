package util

import (
	"net/http"

	"school_exam_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Every endpoint answers with this envelope: mutations carry a redirect
// URL on success, reads carry Data, failures carry Message (and a
// field->messages map in Data for validation failures).
type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	URL     string      `json:"url,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Status: true,
		Data:   data,
	})
}

// Redirect answers a successful mutation with the listing URL the web
// client should navigate to.
func Redirect(c *gin.Context, message, url string) {
	c.JSON(http.StatusOK, Response{
		Status:  true,
		Message: message,
		URL:     url,
	})
}

// RedirectWithData is Redirect with a payload, used when the client
// needs the created record before navigating.
func RedirectWithData(c *gin.Context, message string, data interface{}, url string) {
	c.JSON(http.StatusOK, Response{
		Status:  true,
		Message: message,
		Data:    data,
		URL:     url,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Status:  false,
		Message: message,
	})
}

// ValidationFailed returns the field->messages map the way the web
// forms expect it.
func ValidationFailed(c *gin.Context, fields FieldErrors) {
	c.JSON(http.StatusBadRequest, Response{
		Status:  false,
		Message: "Validation error",
		Data:    fields,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Data not found")
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// LogInternalError logs the cause server-side and hands the client a
// generic failure. Internals never reach the response body.
func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}
