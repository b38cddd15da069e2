package util

import (
	"errors"
	"net/http"

	"smartexam_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every handler writes.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err), zap.String("path", c.FullPath()))
	InternalServerError(c)
}

var errorStatus = []struct {
	err    error
	status int
}{
	{ErrInvalidAnswerOption, http.StatusBadRequest},
	{ErrInvalidQuestion, http.StatusBadRequest},
	{ErrInvalidName, http.StatusBadRequest},
	{ErrInvalidPassword, http.StatusBadRequest},
	{ErrQuestionNotInAttempt, http.StatusBadRequest},
	{ErrInvalidCredentials, http.StatusUnauthorized},
	{ErrPermissionDenied, http.StatusForbidden},
	{ErrNotFound, http.StatusNotFound},
	{ErrAlreadySubmitted, http.StatusConflict},
	{ErrBlocked, http.StatusConflict},
	{ErrAlreadyExists, http.StatusConflict},
	{ErrAttemptNotStarted, http.StatusConflict},
	{ErrEmptyQuestionSet, http.StatusUnprocessableEntity},
	{ErrStoreUnavailable, http.StatusServiceUnavailable},
}

// HandleError writes the envelope for a service error. Unknown errors are
// logged and reported as 500.
func HandleError(c *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			if e.status == http.StatusServiceUnavailable {
				logger.Log.Warn("store call failed", zap.Error(err), zap.String("path", c.FullPath()))
				Error(c, e.status, e.err.Error())
				return
			}
			Error(c, e.status, err.Error())
			return
		}
	}
	LogInternalError(c, err)
}
