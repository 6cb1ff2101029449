package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/printpro/internal/auth"
	"github.com/printpro/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	flashSuccess = "success"
	flashError   = "error"

	somethingWentWrong = "Something went wrong"
	adminHomePath      = "/admin"
)

type flashMessage struct {
	Kind string
	Text string
}

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	if auth.Current(c) != nil {
		c.Redirect(http.StatusFound, safeNext(c.Query("next")))
		return
	}
	a.renderHTML(c, http.StatusOK, "admin_login.html", gin.H{
		"title": "Sign in",
		"next":  c.Query("next"),
	})
}

// Login 校验用户名和密码并写入会话
func (a *API) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	next := c.PostForm("next")

	fail := func(status int, message string) {
		a.renderHTML(c, status, "admin_login.html", gin.H{
			"title":    "Sign in",
			"error":    message,
			"username": username,
			"next":     next,
		})
	}

	var user db.User
	if err := a.db.WithContext(c.Request.Context()).Where("username = ?", username).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			a.logger.ErrorContext(c.Request.Context(), "load admin user", "error", err)
		}
		fail(http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		fail(http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := auth.StartSession(c, auth.Identity{UserID: user.ID, Username: user.Username}); err != nil {
		a.logger.ErrorContext(c.Request.Context(), "save admin session", "error", err)
		fail(http.StatusInternalServerError, "Could not start session")
		return
	}

	a.logger.InfoContext(c.Request.Context(), "admin signed in", "username", user.Username)
	c.Redirect(http.StatusSeeOther, safeNext(next))
}

// Logout 清空会话并回到登录页
func (a *API) Logout(c *gin.Context) {
	if err := auth.EndSession(c); err != nil {
		a.logger.ErrorContext(c.Request.Context(), "clear admin session", "error", err)
	}
	c.Redirect(http.StatusSeeOther, auth.LoginPath)
}

// ShowDashboard 渲染后台首页统计
func (a *API) ShowDashboard(c *gin.Context) {
	stats, err := a.dashboard.Stats(c.Request.Context(), auth.Current(c))
	if err != nil {
		a.logger.ErrorContext(c.Request.Context(), "load dashboard stats", "error", err)
		a.renderAdmin(c, http.StatusInternalServerError, "admin_dashboard.html", gin.H{
			"title": "Dashboard",
			"flash": &flashMessage{Kind: flashError, Text: somethingWentWrong},
		})
		return
	}

	a.renderAdmin(c, http.StatusOK, "admin_dashboard.html", gin.H{
		"title":          "Dashboard",
		"stats":          stats,
		"unhandledCount": stats.NewContacts,
		"flash":          a.takeFlash(c),
	})
}

func (a *API) redirectWithFlash(c *gin.Context, path, kind, text string) {
	session := sessions.Default(c)
	session.AddFlash(kind + ":" + text)
	if err := session.Save(); err != nil {
		a.logger.WarnContext(c.Request.Context(), "save flash message", "error", err)
	}
	c.Redirect(http.StatusSeeOther, path)
}

func (a *API) takeFlash(c *gin.Context) *flashMessage {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		a.logger.WarnContext(c.Request.Context(), "consume flash message", "error", err)
	}

	raw, _ := flashes[len(flashes)-1].(string)
	kind, text, found := strings.Cut(raw, ":")
	if !found {
		return &flashMessage{Kind: flashSuccess, Text: raw}
	}
	return &flashMessage{Kind: kind, Text: text}
}

// redirectAfterFormError 处理后台表单提交中无法在对话框内展示的错误。
func (a *API) redirectAfterFormError(c *gin.Context, path string, err error, notFound error, notFoundMessage string) {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		c.Redirect(http.StatusSeeOther, auth.LoginPath+"?next="+url.QueryEscape(path))
	case notFound != nil && errors.Is(err, notFound):
		a.redirectWithFlash(c, path, flashError, notFoundMessage)
	default:
		a.logger.ErrorContext(c.Request.Context(), "admin form submission failed",
			"error", err,
			"path", c.Request.URL.Path,
		)
		a.redirectWithFlash(c, path, flashError, somethingWentWrong)
	}
}

// safeNext 只允许站内后台路径，防止登录后跳转到外部站点。
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if !strings.HasPrefix(next, adminHomePath) || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return adminHomePath
	}
	if strings.HasPrefix(next, auth.LoginPath) {
		return adminHomePath
	}
	return next
}
