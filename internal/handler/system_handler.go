package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/printpro/internal/auth"
	"github.com/printpro/internal/service"
	"github.com/printpro/internal/validation"
)

const adminSettingsPath = "/admin/settings"

// HealthCheck 提供部署平台与监控系统使用的健康检查端点。
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "database handle unavailable",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
	})
}

// GetSiteSettings 返回当前商家信息。
func (a *API) GetSiteSettings(c *gin.Context) {
	settings, err := a.settings.Get(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, nil, "", "Failed to fetch settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSiteSettings 保存商家信息。
func (a *API) UpdateSiteSettings(c *gin.Context) {
	var payload service.SiteSettingsInput
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}

	settings, err := a.settings.Update(c.Request.Context(), auth.Current(c), payload)
	if err != nil {
		a.respondServiceError(c, err, nil, "", "Failed to save settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ShowSettings 渲染后台商家信息页面。
func (a *API) ShowSettings(c *gin.Context) {
	a.renderAdmin(c, http.StatusOK, "admin_settings.html", gin.H{
		"title": "Settings",
		"form":  a.siteSettings(c),
		"flash": a.takeFlash(c),
	})
}

// UpdateSettingsForm 处理后台商家信息表单。
func (a *API) UpdateSettingsForm(c *gin.Context) {
	input := service.SiteSettingsInput{
		BusinessName: c.PostForm("businessName"),
		Phone:        c.PostForm("phone"),
		Email:        c.PostForm("email"),
		Address:      c.PostForm("address"),
	}

	if _, err := a.settings.Update(c.Request.Context(), auth.Current(c), input); err != nil {
		if verrs, ok := validation.AsErrors(err); ok {
			a.renderAdmin(c, http.StatusBadRequest, "admin_settings.html", gin.H{
				"title":  "Settings",
				"form":   input,
				"errors": verrs.Fields(),
			})
			return
		}
		a.redirectAfterFormError(c, adminSettingsPath, err, nil, "")
		return
	}

	a.redirectWithFlash(c, adminSettingsPath, flashSuccess, "Settings saved")
}
