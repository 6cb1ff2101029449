package router

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/printpro/internal/auth"
	"github.com/printpro/internal/handler"
	"github.com/printpro/internal/logging"
	"github.com/printpro/internal/view"
	"github.com/printpro/web"
	"gorm.io/gorm"
)

const sessionName = "printpro_session"

// Options 汇总构建路由所需的运行参数。
type Options struct {
	SessionSecret string
	UploadDir     string
	UploadURL     string
	SecureCookie  bool
	Logger        *slog.Logger
	// Gate 为空时使用基于 cookie 会话的 SessionGate。
	Gate auth.Gate
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(gdb *gorm.DB, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gate := opts.Gate
	if gate == nil {
		gate = auth.NewSessionGate()
	}
	uploadURL := "/" + strings.Trim(opts.UploadURL, "/")
	if uploadURL == "/" {
		uploadURL = "/uploads"
	}

	r := gin.New()
	r.Use(logging.GinLogger(logger), gin.Recovery())

	// 配置会话中间件
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.SetHTMLTemplate(mustLoadTemplates())

	// 静态文件服务
	staticFS, err := fs.Sub(web.FS, "static")
	if err != nil {
		panic(fmt.Sprintf("embedded static assets: %v", err))
	}
	r.StaticFS("/static", http.FS(staticFS))
	r.Static(uploadURL, opts.UploadDir)

	api := handler.NewAPI(gdb, logger, opts.UploadDir, uploadURL)

	r.GET("/healthz", api.HealthCheck)

	// 前台页面
	public := r.Group("")
	public.Use(auth.Optional(gate))
	{
		public.GET("/", api.ShowHome)
		public.GET("/services", api.ShowServices)
		public.GET("/gallery", api.ShowGallery)
		public.GET("/about", api.ShowAbout)
		public.GET("/contact", api.ShowContact)
		public.POST("/contact", api.SubmitContactForm)
	}

	// JSON 接口
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/services", api.ListServices)
		apiGroup.GET("/services/:id", api.GetService)
		apiGroup.GET("/gallery", api.ListGalleryImages)
		apiGroup.GET("/gallery/:id", api.GetGalleryImage)
		apiGroup.POST("/contact", api.SubmitContact)

		protected := apiGroup.Group("")
		protected.Use(auth.RequireAPI(gate))
		{
			protected.POST("/services", api.CreateService)
			protected.PUT("/services/:id", api.UpdateService)
			protected.DELETE("/services/:id", api.DeleteService)

			protected.POST("/gallery", api.CreateGalleryImage)
			protected.PUT("/gallery/:id", api.UpdateGalleryImage)
			protected.DELETE("/gallery/:id", api.DeleteGalleryImage)

			protected.GET("/contact", api.ListContacts)
			protected.PATCH("/contact/:id", api.UpdateContact)
			protected.DELETE("/contact/:id", api.DeleteContact)

			protected.POST("/uploads", api.UploadImage)
			protected.GET("/settings", api.GetSiteSettings)
			protected.PUT("/settings", api.UpdateSiteSettings)
		}
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		login := admin.Group("")
		login.Use(auth.Optional(gate))
		{
			login.GET("/login", api.ShowLoginPage)
			login.POST("/login", api.Login)
			login.POST("/logout", api.Logout)
		}

		// 需要认证的后台路由
		pages := admin.Group("")
		pages.Use(auth.RequirePage(gate))
		{
			pages.GET("", api.ShowDashboard)

			pages.GET("/services", api.ShowServiceManagement)
			pages.POST("/services", api.CreateServiceForm)
			pages.POST("/services/:id", api.UpdateServiceForm)
			pages.POST("/services/:id/delete", api.DeleteServiceForm)

			pages.GET("/gallery", api.ShowGalleryManagement)
			pages.POST("/gallery", api.CreateGalleryForm)
			pages.POST("/gallery/:id", api.UpdateGalleryForm)
			pages.POST("/gallery/:id/delete", api.DeleteGalleryForm)

			pages.GET("/contacts", api.ShowContactManagement)
			pages.POST("/contacts/:id/toggle", api.ToggleContactForm)
			pages.POST("/contacts/:id/delete", api.DeleteContactForm)

			pages.GET("/settings", api.ShowSettings)
			pages.POST("/settings", api.UpdateSettingsForm)
		}
	}

	return r
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"icon": view.IconSVG,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006 15:04")
		},
		"timeAgo": func(t time.Time) string {
			return formatRelativeTime(time.Now(), t)
		},
	}
}

func mustLoadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs()).ParseFS(web.FS,
		"template/public/*.html",
		"template/admin/*.html",
	))
}

func formatRelativeTime(now, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	diff := now.Sub(t)
	if diff < time.Minute {
		return "just now"
	}

	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s ago", unit)
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hour")
	case diff < 30*24*time.Hour:
		return plural(int(diff/(24*time.Hour)), "day")
	case diff < 365*24*time.Hour:
		return plural(int(diff/(30*24*time.Hour)), "month")
	default:
		return plural(int(diff/(365*24*time.Hour)), "year")
	}
}
