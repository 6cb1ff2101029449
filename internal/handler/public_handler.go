package handler

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/printpro/internal/db"
	"github.com/printpro/internal/view"
)

const homeServiceLimit = 3

type serviceCard struct {
	ID          uint
	Title       string
	Description template.HTML
	ImageURL    string
}

func (a *API) newServiceCard(c *gin.Context, item db.Service) serviceCard {
	html, err := view.RenderMarkdown(item.Description)
	if err != nil {
		a.logger.WarnContext(c.Request.Context(), "render service description", "error", err, "service_id", item.ID)
		html = template.HTML(template.HTMLEscapeString(item.Description))
	}
	return serviceCard{
		ID:          item.ID,
		Title:       item.Title,
		Description: html,
		ImageURL:    item.ImageURL,
	}
}

// ShowHome renders the public landing page.
func (a *API) ShowHome(c *gin.Context) {
	items, err := a.catalog.List(c.Request.Context())
	if err != nil {
		a.logger.ErrorContext(c.Request.Context(), "list services for home", "error", err)
		items = nil
	}
	if len(items) > homeServiceLimit {
		items = items[:homeServiceLimit]
	}

	cards := make([]serviceCard, 0, len(items))
	for _, item := range items {
		cards = append(cards, a.newServiceCard(c, item))
	}

	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title":    "Professional Printing Services",
		"features": view.HomeFeatures(),
		"services": cards,
	})
}

// ShowAbout renders the about page.
func (a *API) ShowAbout(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "about.html", gin.H{
		"title":  "About PrintPro",
		"values": view.AboutValues(),
		"team":   view.Team(),
	})
}
