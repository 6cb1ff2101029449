package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/printpro/internal/db"
)

func TestGalleryAPICRUD(t *testing.T) {
	env := newHandlerTestEnv(t, testAdmin)

	created := env.doJSON(http.MethodPost, "/api/gallery", `{"title":"Storefront","imageUrl":"/uploads/front.jpg"}`)
	if created.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, created.Code, created.Body.String())
	}
	var item db.GalleryImage
	decodeJSON(t, created, &item)
	if item.Description != nil {
		t.Fatalf("expected empty description to be stored as null, got %q", *item.Description)
	}

	updated := env.doJSON(http.MethodPut, fmt.Sprintf("/api/gallery/%d", item.ID), `{"description":"Window vinyl"}`)
	if updated.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, updated.Code)
	}
	decodeJSON(t, updated, &item)
	if item.Description == nil || *item.Description != "Window vinyl" {
		t.Fatalf("expected description to be updated, got %+v", item)
	}

	if code := env.doJSON(http.MethodDelete, fmt.Sprintf("/api/gallery/%d", item.ID), "").Code; code != http.StatusOK {
		t.Fatalf("expected delete to return %d, got %d", http.StatusOK, code)
	}
	if code := env.doJSON(http.MethodGet, fmt.Sprintf("/api/gallery/%d", item.ID), "").Code; code != http.StatusNotFound {
		t.Fatalf("expected %d after delete, got %d", http.StatusNotFound, code)
	}
}

func TestGalleryAPIValidation(t *testing.T) {
	env := newHandlerTestEnv(t, testAdmin)

	recorder := env.doJSON(http.MethodPost, "/api/gallery", `{"title":"No image"}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	var body validationResponse
	decodeJSON(t, recorder, &body)
	if _, ok := body.Details["imageUrl"]; !ok {
		t.Fatalf("expected imageUrl detail, got %+v", body.Details)
	}
}

func TestGalleryManagementForms(t *testing.T) {
	env := newHandlerTestEnv(t, testAdmin)

	recorder := env.doForm("/admin/gallery", url.Values{"title": {"Menus"}})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	if env.html.name != "admin_gallery.html" {
		t.Fatalf("expected gallery template, got %s", env.html.name)
	}

	recorder = env.doForm("/admin/gallery", url.Values{
		"title":    {"Menus"},
		"imageUrl": {"/uploads/menus.png"},
		"order":    {"3"},
	})
	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, recorder.Code)
	}
	if count := countRows(t, env.db, &db.GalleryImage{}); count != 1 {
		t.Fatalf("expected one gallery image, got %d", count)
	}

	recorder = env.doForm("/admin/gallery/999", url.Values{"title": {"Ghost"}, "imageUrl": {"/x.png"}})
	if recorder.Code != http.StatusSeeOther || recorder.Header().Get("Location") != adminGalleryPath {
		t.Fatalf("expected redirect for missing image, got %d %s", recorder.Code, recorder.Header().Get("Location"))
	}
}
