package util

import (
	"net/http"

	"studyshare_backend/internal/apperr"
	"studyshare_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
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

func MethodNotAllowed(c *gin.Context) {
	Error(c, http.StatusMethodNotAllowed, "Method not allowed")
}

// HandleError is the single kind-to-status mapping table. Expected,
// user-actionable outcomes are never logged; storage failures are logged with
// context and surfaced opaquely.
func HandleError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)

	status := http.StatusInternalServerError
	message := "Internal server error"

	switch kind {
	case apperr.KindValidation:
		status, message = http.StatusBadRequest, err.Error()
	case apperr.KindAuthorization:
		status, message = http.StatusForbidden, err.Error()
	case apperr.KindNotFound:
		status, message = http.StatusNotFound, "Resource not found"
	case apperr.KindConflict:
		status, message = http.StatusConflict, err.Error()
	case apperr.KindStaleSession:
		status, message = http.StatusConflict, err.Error()
	case apperr.KindStorage:
		logger.Log.Error("Unexpected persistence failure",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.JSON(status, Response{
		Code:    status,
		Message: message,
		Error:   apperr.CodeOf(err),
	})
}
