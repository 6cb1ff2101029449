package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printpro/internal/auth"
	"github.com/printpro/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	catalog   *service.CatalogService
	galleries *service.GalleryService
	contacts  *service.ContactService
	dashboard *service.DashboardService
	settings  *service.SiteSettingService
	logger    *slog.Logger
	uploadDir string
	uploadURL string
}

const siteSettingsContextKey = "__site_settings"

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, logger *slog.Logger, uploadDir, uploadURL string) *API {
	if logger == nil {
		logger = slog.Default()
	}

	catalog := service.NewCatalogService(db)
	galleries := service.NewGalleryService(db)
	contacts := service.NewContactService(db)

	return &API{
		db:        db,
		catalog:   catalog,
		galleries: galleries,
		contacts:  contacts,
		dashboard: service.NewDashboardService(catalog, galleries, contacts),
		settings:  service.NewSiteSettingService(db),
		logger:    logger,
		uploadDir: uploadDir,
		uploadURL: uploadURL,
	}
}

func (a *API) siteSettings(c *gin.Context) service.SiteSettings {
	if cached, exists := c.Get(siteSettingsContextKey); exists {
		if settings, ok := cached.(service.SiteSettings); ok {
			return settings
		}
	}

	settings, err := a.settings.Get(c.Request.Context())
	if err != nil {
		a.logger.ErrorContext(c.Request.Context(), "load site settings", "error", err)
	}

	c.Set(siteSettingsContextKey, settings)
	return settings
}

// renderHTML 在向模板渲染时自动附加商家信息、年份与当前管理员。
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		payload["site"] = a.siteSettings(c)
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = time.Now().Year()
	}
	if _, exists := payload["admin"]; !exists {
		if id := auth.Current(c); id != nil {
			payload["admin"] = id
		}
	}

	c.HTML(status, template, payload)
}

// renderAdmin 额外附加未处理咨询数，用于后台导航角标。
func (a *API) renderAdmin(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["unhandledCount"]; !exists {
		count, err := a.contacts.CountUnhandled(c.Request.Context())
		if err != nil {
			a.logger.ErrorContext(c.Request.Context(), "count unhandled contacts", "error", err)
		}
		payload["unhandledCount"] = count
	}
	a.renderHTML(c, status, template, payload)
}
