package util

import (
	"context"
	"errors"
	"net/http"

	"skill_matrix_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Response 错误响应结构，message 字段即客户端读取的错误信息
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Success 直接输出数据，保持前端依赖的原始结构
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func Error(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Response{
		Code:    code,
		Message: message,
		Error:   message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func ServiceUnavailable(c *gin.Context) {
	Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable, please retry")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}

// StatusFor 把服务层错误映射为 HTTP 状态码
func StatusFor(err error) int {
	var ve *ValidationError
	var sc *StateConflictError
	switch {
	case errors.As(err, &ve),
		errors.Is(err, ErrNoQuestions),
		errors.Is(err, ErrInvalidLevel):
		return http.StatusBadRequest
	case errors.Is(err, ErrEmployeeNotFound),
		errors.Is(err, ErrSkillNotFound),
		errors.Is(err, ErrRoleNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.As(err, &sc),
		errors.Is(err, ErrEmailRegistered),
		errors.Is(err, ErrEmployeeIDTaken),
		errors.Is(err, ErrSkillCodeTaken),
		errors.Is(err, ErrRoleExists),
		errors.Is(err, ErrQuestionExists),
		errors.Is(err, ErrRetestNotAuthorized):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// HandleError 请求边界统一处理错误，任何错误都不会导致进程退出
func HandleError(c *gin.Context, err error) {
	switch status := StatusFor(err); status {
	case http.StatusInternalServerError:
		LogInternalError(c, err)
	case http.StatusServiceUnavailable:
		logger.Log.Warn("Store unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		ServiceUnavailable(c)
	default:
		Error(c, status, err.Error())
	}
}
