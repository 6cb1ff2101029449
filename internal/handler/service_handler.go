package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/printpro/internal/auth"
	"github.com/printpro/internal/db"
	"github.com/printpro/internal/service"
	"github.com/printpro/internal/validation"
	"github.com/printpro/internal/view"
)

const adminServicesPath = "/admin/services"

type servicePayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Order       *int    `json:"order"`
}

func (p servicePayload) toInput() service.ServiceInput {
	input := service.ServiceInput{}
	if p.Title != nil {
		input.Title = *p.Title
	}
	if p.Description != nil {
		input.Description = *p.Description
	}
	if p.ImageURL != nil {
		input.ImageURL = *p.ImageURL
	}
	if p.Order != nil {
		input.Order = *p.Order
	}
	return input
}

func (p servicePayload) toPatch() service.ServicePatch {
	return service.ServicePatch{
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Order:       p.Order,
	}
}

// ListServices returns all services in display order.
func (a *API) ListServices(c *gin.Context) {
	items, err := a.catalog.List(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, nil, "", "Failed to fetch services")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetService returns a single service.
func (a *API) GetService(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid service id")
		return
	}

	item, err := a.catalog.Get(c.Request.Context(), id)
	if err != nil {
		a.respondServiceError(c, err, service.ErrServiceNotFound, "Service not found", "Failed to fetch service")
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateService creates a new service.
func (a *API) CreateService(c *gin.Context) {
	var payload servicePayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}

	item, err := a.catalog.Create(c.Request.Context(), auth.Current(c), payload.toInput())
	if err != nil {
		a.respondServiceError(c, err, nil, "", "Failed to create service")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateService overwrites the fields present in the request body.
func (a *API) UpdateService(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid service id")
		return
	}

	var payload servicePayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}

	item, err := a.catalog.Update(c.Request.Context(), auth.Current(c), id, payload.toPatch())
	if err != nil {
		a.respondServiceError(c, err, service.ErrServiceNotFound, "Service not found", "Failed to update service")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteService removes a service.
func (a *API) DeleteService(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid service id")
		return
	}

	if err := a.catalog.Delete(c.Request.Context(), auth.Current(c), id); err != nil {
		a.respondServiceError(c, err, service.ErrServiceNotFound, "Service not found", "Failed to delete service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

// ShowServiceManagement renders the admin services page in the state given by the query:
// ?mode=create opens the create dialog, ?edit=<id> opens the edit dialog.
func (a *API) ShowServiceManagement(c *gin.Context) {
	editor := view.Idle[*db.Service]()
	form := view.ServiceFormFrom(nil)
	flash := a.takeFlash(c)

	if id, ok := parseUintQuery(c, "edit"); ok {
		item, err := a.catalog.Get(c.Request.Context(), id)
		switch {
		case err == nil:
			editor = editor.OpenEdit(item)
			form = view.ServiceFormFrom(item)
		case errors.Is(err, service.ErrServiceNotFound):
			flash = &flashMessage{Kind: flashError, Text: "Service not found"}
		default:
			a.logger.ErrorContext(c.Request.Context(), "load service for edit", "error", err, "id", id)
			flash = &flashMessage{Kind: flashError, Text: somethingWentWrong}
		}
	} else if c.Query("mode") == "create" {
		editor = editor.OpenCreate()
	}

	a.renderServiceManagement(c, http.StatusOK, editor, form, nil, flash)
}

// CreateServiceForm handles the create dialog submission.
func (a *API) CreateServiceForm(c *gin.Context) {
	var form view.ServiceForm
	if !bindForm(c, &form) {
		return
	}
	editor := view.Creating[*db.Service]()

	input, err := form.Input()
	if err == nil {
		_, err = a.catalog.Create(c.Request.Context(), auth.Current(c), input)
	}
	if err != nil {
		a.handleServiceFormError(c, err, editor, form)
		return
	}

	a.redirectWithFlash(c, adminServicesPath, flashSuccess, "Service created")
}

// UpdateServiceForm handles the edit dialog submission.
func (a *API) UpdateServiceForm(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.redirectWithFlash(c, adminServicesPath, flashError, "Service not found")
		return
	}

	var form view.ServiceForm
	if !bindForm(c, &form) {
		return
	}

	item, err := a.catalog.Get(c.Request.Context(), id)
	if err != nil {
		a.handleServiceFormError(c, err, view.Idle[*db.Service](), form)
		return
	}
	editor := view.Editing(item)

	patch, err := form.Patch()
	if err == nil {
		_, err = a.catalog.Update(c.Request.Context(), auth.Current(c), id, patch)
	}
	if err != nil {
		a.handleServiceFormError(c, err, editor, form)
		return
	}

	a.redirectWithFlash(c, adminServicesPath, flashSuccess, "Service updated")
}

// DeleteServiceForm handles the delete button on the services list.
func (a *API) DeleteServiceForm(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.redirectWithFlash(c, adminServicesPath, flashError, "Service not found")
		return
	}

	if err := a.catalog.Delete(c.Request.Context(), auth.Current(c), id); err != nil {
		a.redirectAfterFormError(c, adminServicesPath, err, service.ErrServiceNotFound, "Service not found")
		return
	}
	a.redirectWithFlash(c, adminServicesPath, flashSuccess, "Service deleted")
}

func (a *API) handleServiceFormError(c *gin.Context, err error, editor view.Editor[*db.Service], form view.ServiceForm) {
	if verrs, ok := validation.AsErrors(err); ok {
		a.renderServiceManagement(c, http.StatusBadRequest, editor, form, verrs.Fields(), nil)
		return
	}
	a.redirectAfterFormError(c, adminServicesPath, err, service.ErrServiceNotFound, "Service not found")
}

func (a *API) renderServiceManagement(c *gin.Context, status int, editor view.Editor[*db.Service], form view.ServiceForm, fieldErrors map[string]string, flash *flashMessage) {
	items, err := a.catalog.List(c.Request.Context())
	if err != nil {
		a.logger.ErrorContext(c.Request.Context(), "list services", "error", err)
		a.renderAdmin(c, http.StatusInternalServerError, "admin_services.html", gin.H{
			"title":  "Services",
			"editor": view.Idle[*db.Service](),
			"flash":  &flashMessage{Kind: flashError, Text: somethingWentWrong},
		})
		return
	}

	var editingID uint
	if target, ok := editor.Target(); ok {
		editingID = target.ID
	}

	a.renderAdmin(c, status, "admin_services.html", gin.H{
		"title":     "Services",
		"items":     items,
		"editor":    editor,
		"editingID": editingID,
		"form":      form,
		"errors":    fieldErrors,
		"flash":     flash,
	})
}

// ShowServices renders the public services page.
func (a *API) ShowServices(c *gin.Context) {
	items, err := a.catalog.List(c.Request.Context())
	if err != nil {
		a.logger.ErrorContext(c.Request.Context(), "list services", "error", err)
		a.renderHTML(c, http.StatusInternalServerError, "services.html", gin.H{
			"title": "Our Services",
			"error": "Unable to load services right now. Please try again later.",
		})
		return
	}

	cards := make([]serviceCard, 0, len(items))
	for _, item := range items {
		cards = append(cards, a.newServiceCard(c, item))
	}

	a.renderHTML(c, http.StatusOK, "services.html", gin.H{
		"title":    "Our Services",
		"services": cards,
	})
}
