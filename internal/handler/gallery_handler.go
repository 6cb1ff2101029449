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

const adminGalleryPath = "/admin/gallery"

type galleryPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Order       *int    `json:"order"`
}

func (p galleryPayload) toInput() service.GalleryInput {
	input := service.GalleryInput{}
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

func (p galleryPayload) toPatch() service.GalleryPatch {
	return service.GalleryPatch{
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Order:       p.Order,
	}
}

// ListGalleryImages returns all gallery images.
func (a *API) ListGalleryImages(c *gin.Context) {
	items, err := a.galleries.List(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, nil, "", "Failed to fetch gallery images")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetGalleryImage returns a single gallery image.
func (a *API) GetGalleryImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid gallery image id")
		return
	}

	item, err := a.galleries.Get(c.Request.Context(), id)
	if err != nil {
		a.respondServiceError(c, err, service.ErrGalleryNotFound, "Gallery image not found", "Failed to fetch gallery image")
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateGalleryImage creates a new gallery image.
func (a *API) CreateGalleryImage(c *gin.Context) {
	var payload galleryPayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}

	item, err := a.galleries.Create(c.Request.Context(), auth.Current(c), payload.toInput())
	if err != nil {
		a.respondServiceError(c, err, nil, "", "Failed to create gallery image")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateGalleryImage updates an existing gallery image.
func (a *API) UpdateGalleryImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid gallery image id")
		return
	}

	var payload galleryPayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}

	item, err := a.galleries.Update(c.Request.Context(), auth.Current(c), id, payload.toPatch())
	if err != nil {
		a.respondServiceError(c, err, service.ErrGalleryNotFound, "Gallery image not found", "Failed to update gallery image")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteGalleryImage removes a gallery image.
func (a *API) DeleteGalleryImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid gallery image id")
		return
	}

	if err := a.galleries.Delete(c.Request.Context(), auth.Current(c), id); err != nil {
		a.respondServiceError(c, err, service.ErrGalleryNotFound, "Gallery image not found", "Failed to delete gallery image")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gallery image deleted successfully"})
}

// ShowGalleryManagement renders admin gallery management page.
func (a *API) ShowGalleryManagement(c *gin.Context) {
	editor := view.Idle[*db.GalleryImage]()
	form := view.GalleryFormFrom(nil)
	flash := a.takeFlash(c)

	if id, ok := parseUintQuery(c, "edit"); ok {
		item, err := a.galleries.Get(c.Request.Context(), id)
		switch {
		case err == nil:
			editor = editor.OpenEdit(item)
			form = view.GalleryFormFrom(item)
		case errors.Is(err, service.ErrGalleryNotFound):
			flash = &flashMessage{Kind: flashError, Text: "Gallery image not found"}
		default:
			a.logger.ErrorContext(c.Request.Context(), "load gallery image for edit", "error", err, "id", id)
			flash = &flashMessage{Kind: flashError, Text: somethingWentWrong}
		}
	} else if c.Query("mode") == "create" {
		editor = editor.OpenCreate()
	}

	a.renderGalleryManagement(c, http.StatusOK, editor, form, nil, flash)
}

// CreateGalleryForm handles the create dialog submission.
func (a *API) CreateGalleryForm(c *gin.Context) {
	var form view.GalleryForm
	if !bindForm(c, &form) {
		return
	}
	editor := view.Creating[*db.GalleryImage]()

	input, err := form.Input()
	if err == nil {
		_, err = a.galleries.Create(c.Request.Context(), auth.Current(c), input)
	}
	if err != nil {
		a.handleGalleryFormError(c, err, editor, form)
		return
	}

	a.redirectWithFlash(c, adminGalleryPath, flashSuccess, "Gallery image added")
}

// UpdateGalleryForm handles the edit dialog submission.
func (a *API) UpdateGalleryForm(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.redirectWithFlash(c, adminGalleryPath, flashError, "Gallery image not found")
		return
	}

	var form view.GalleryForm
	if !bindForm(c, &form) {
		return
	}

	item, err := a.galleries.Get(c.Request.Context(), id)
	if err != nil {
		a.handleGalleryFormError(c, err, view.Idle[*db.GalleryImage](), form)
		return
	}
	editor := view.Editing(item)

	patch, err := form.Patch()
	if err == nil {
		_, err = a.galleries.Update(c.Request.Context(), auth.Current(c), id, patch)
	}
	if err != nil {
		a.handleGalleryFormError(c, err, editor, form)
		return
	}

	a.redirectWithFlash(c, adminGalleryPath, flashSuccess, "Gallery image updated")
}

// DeleteGalleryForm handles the delete button on the gallery list.
func (a *API) DeleteGalleryForm(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.redirectWithFlash(c, adminGalleryPath, flashError, "Gallery image not found")
		return
	}

	if err := a.galleries.Delete(c.Request.Context(), auth.Current(c), id); err != nil {
		a.redirectAfterFormError(c, adminGalleryPath, err, service.ErrGalleryNotFound, "Gallery image not found")
		return
	}
	a.redirectWithFlash(c, adminGalleryPath, flashSuccess, "Gallery image deleted")
}

func (a *API) handleGalleryFormError(c *gin.Context, err error, editor view.Editor[*db.GalleryImage], form view.GalleryForm) {
	if verrs, ok := validation.AsErrors(err); ok {
		a.renderGalleryManagement(c, http.StatusBadRequest, editor, form, verrs.Fields(), nil)
		return
	}
	a.redirectAfterFormError(c, adminGalleryPath, err, service.ErrGalleryNotFound, "Gallery image not found")
}

func (a *API) renderGalleryManagement(c *gin.Context, status int, editor view.Editor[*db.GalleryImage], form view.GalleryForm, fieldErrors map[string]string, flash *flashMessage) {
	items, err := a.galleries.List(c.Request.Context())
	if err != nil {
		a.logger.ErrorContext(c.Request.Context(), "list gallery images", "error", err)
		a.renderAdmin(c, http.StatusInternalServerError, "admin_gallery.html", gin.H{
			"title":  "Gallery",
			"editor": view.Idle[*db.GalleryImage](),
			"flash":  &flashMessage{Kind: flashError, Text: somethingWentWrong},
		})
		return
	}

	var editingID uint
	if target, ok := editor.Target(); ok {
		editingID = target.ID
	}

	a.renderAdmin(c, status, "admin_gallery.html", gin.H{
		"title":     "Gallery",
		"items":     items,
		"editor":    editor,
		"editingID": editingID,
		"form":      form,
		"errors":    fieldErrors,
		"flash":     flash,
	})
}

// ShowGallery renders public gallery page.
func (a *API) ShowGallery(c *gin.Context) {
	items, err := a.galleries.List(c.Request.Context())
	if err != nil {
		a.logger.ErrorContext(c.Request.Context(), "list gallery images", "error", err)
		a.renderHTML(c, http.StatusInternalServerError, "gallery.html", gin.H{
			"title": "Our Work",
			"error": "Unable to load the gallery right now. Please try again later.",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "gallery.html", gin.H{
		"title": "Our Work",
		"items": items,
	})
}
