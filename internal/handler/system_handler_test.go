package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/printpro/internal/service"
)

func TestSiteSettingsAPI(t *testing.T) {
	env := newHandlerTestEnv(t, testAdmin)

	recorder := env.doJSON(http.MethodPut, "/api/settings", `{"businessName":"PrintPro Downtown","phone":"555-0100","email":"hello@printpro.test","address":"12 Main St"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}

	recorder = env.doJSON(http.MethodGet, "/api/settings", "")
	var settings service.SiteSettings
	decodeJSON(t, recorder, &settings)
	if settings.BusinessName != "PrintPro Downtown" || settings.Phone != "555-0100" {
		t.Fatalf("unexpected settings %+v", settings)
	}

	recorder = env.doJSON(http.MethodPut, "/api/settings", `{"email":"nope"}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	var body validationResponse
	decodeJSON(t, recorder, &body)
	if _, ok := body.Details["email"]; !ok {
		t.Fatalf("expected email detail, got %+v", body.Details)
	}
}

func TestSiteSettingsRequireAdmin(t *testing.T) {
	env := newHandlerTestEnv(t, nil)

	if code := env.doJSON(http.MethodPut, "/api/settings", `{"businessName":"Hijacked"}`).Code; code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, code)
	}
}

func TestUpdateSettingsForm(t *testing.T) {
	env := newHandlerTestEnv(t, testAdmin)

	recorder := env.doForm("/admin/settings", url.Values{
		"businessName": {"PrintPro"},
		"email":        {"hello@printpro.test"},
	})
	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, recorder.Code)
	}
	if location := recorder.Header().Get("Location"); location != adminSettingsPath {
		t.Fatalf("unexpected redirect %s", location)
	}

	recorder = env.doForm("/admin/settings", url.Values{"email": {"bad"}})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	if env.html.name != "admin_settings.html" {
		t.Fatalf("expected settings template, got %s", env.html.name)
	}
}
