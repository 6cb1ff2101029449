package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/printpro/internal/auth"
	"github.com/printpro/internal/service"
	"github.com/printpro/internal/validation"
	"github.com/printpro/internal/view"
)

const adminContactsPath = "/admin/contacts"

type contactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type handledPayload struct {
	Handled *bool `json:"handled"`
}

// SubmitContact accepts the public contact form.
func (a *API) SubmitContact(c *gin.Context) {
	var payload contactPayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}

	item, err := a.contacts.Submit(c.Request.Context(), service.ContactInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Message: payload.Message,
	})
	if err != nil {
		a.respondServiceError(c, err, nil, "", "Failed to submit contact form")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Contact form submitted successfully",
		"id":      item.ID,
	})
}

// ListContacts returns every submission, newest first.
func (a *API) ListContacts(c *gin.Context) {
	items, err := a.contacts.List(c.Request.Context(), auth.Current(c))
	if err != nil {
		a.respondServiceError(c, err, nil, "", "Failed to fetch contact submissions")
		return
	}
	c.JSON(http.StatusOK, items)
}

// UpdateContact sets the handled flag of a submission.
func (a *API) UpdateContact(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid contact submission id")
		return
	}

	var payload handledPayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}
	if payload.Handled == nil {
		verrs := &validation.Errors{}
		verrs.Add("handled", "required", "Handled is required")
		respondValidation(c, verrs)
		return
	}

	item, err := a.contacts.SetHandled(c.Request.Context(), auth.Current(c), id, *payload.Handled)
	if err != nil {
		a.respondServiceError(c, err, service.ErrContactNotFound, "Contact submission not found", "Failed to update contact submission")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteContact removes a submission.
func (a *API) DeleteContact(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid contact submission id")
		return
	}

	if err := a.contacts.Delete(c.Request.Context(), auth.Current(c), id); err != nil {
		a.respondServiceError(c, err, service.ErrContactNotFound, "Contact submission not found", "Failed to delete contact submission")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact submission deleted successfully"})
}

// ShowContactManagement renders the admin submissions list.
func (a *API) ShowContactManagement(c *gin.Context) {
	items, err := a.contacts.List(c.Request.Context(), auth.Current(c))
	if err != nil {
		a.logger.ErrorContext(c.Request.Context(), "list contact submissions", "error", err)
		a.renderAdmin(c, http.StatusInternalServerError, "admin_contacts.html", gin.H{
			"title": "Contact Submissions",
			"flash": &flashMessage{Kind: flashError, Text: somethingWentWrong},
		})
		return
	}

	a.renderAdmin(c, http.StatusOK, "admin_contacts.html", gin.H{
		"title": "Contact Submissions",
		"items": items,
		"flash": a.takeFlash(c),
	})
}

// ToggleContactForm flips the handled flag from the admin list.
func (a *API) ToggleContactForm(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.redirectWithFlash(c, adminContactsPath, flashError, "Contact submission not found")
		return
	}

	item, err := a.contacts.Toggle(c.Request.Context(), auth.Current(c), id)
	if err != nil {
		a.redirectAfterFormError(c, adminContactsPath, err, service.ErrContactNotFound, "Contact submission not found")
		return
	}

	message := "Marked as new"
	if item.Handled {
		message = "Marked as handled"
	}
	a.redirectWithFlash(c, adminContactsPath, flashSuccess, message)
}

// DeleteContactForm deletes a submission from the admin list.
func (a *API) DeleteContactForm(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.redirectWithFlash(c, adminContactsPath, flashError, "Contact submission not found")
		return
	}

	if err := a.contacts.Delete(c.Request.Context(), auth.Current(c), id); err != nil {
		a.redirectAfterFormError(c, adminContactsPath, err, service.ErrContactNotFound, "Contact submission not found")
		return
	}
	a.redirectWithFlash(c, adminContactsPath, flashSuccess, "Contact submission deleted")
}

// ShowContact renders the public contact page.
func (a *API) ShowContact(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "contact.html", gin.H{
		"title":     "Contact Us",
		"form":      view.ContactForm{},
		"submitted": c.Query("sent") == "1",
	})
}

// SubmitContactForm is the non-JavaScript fallback for the public contact page.
func (a *API) SubmitContactForm(c *gin.Context) {
	var form view.ContactForm
	if !bindForm(c, &form) {
		return
	}

	_, err := a.contacts.Submit(c.Request.Context(), form.Input())
	if err == nil {
		c.Redirect(http.StatusSeeOther, "/contact?sent=1")
		return
	}

	if verrs, ok := validation.AsErrors(err); ok {
		a.renderHTML(c, http.StatusBadRequest, "contact.html", gin.H{
			"title":  "Contact Us",
			"form":   form,
			"errors": verrs.Fields(),
		})
		return
	}

	a.logger.ErrorContext(c.Request.Context(), "submit contact form", "error", err)
	a.renderHTML(c, http.StatusInternalServerError, "contact.html", gin.H{
		"title": "Contact Us",
		"form":  form,
		"error": "Failed to send message. Please try again.",
	})
}
