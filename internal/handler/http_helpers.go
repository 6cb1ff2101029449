package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/printpro/internal/auth"
	"github.com/printpro/internal/validation"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func respondValidation(c *gin.Context, verrs *validation.Errors) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Validation error",
		"details": verrs.Details(),
	})
}

// respondServiceError 将服务层错误映射为 HTTP 状态码，内部错误只记录日志不回显。
func (a *API) respondServiceError(c *gin.Context, err error, notFound error, notFoundMessage, failMessage string) {
	if verrs, ok := validation.AsErrors(err); ok {
		respondValidation(c, verrs)
		return
	}

	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "Unauthorized")
	case notFound != nil && errors.Is(err, notFound):
		respondError(c, http.StatusNotFound, notFoundMessage)
	default:
		a.logger.ErrorContext(c.Request.Context(), failMessage,
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
		)
		respondError(c, http.StatusInternalServerError, failMessage)
	}
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// bindForm 解析后台与公开页面的表单提交，请求体无法解析时直接返回 400。
func bindForm(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBind(dst); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parseUintQuery(c *gin.Context, key string) (uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
