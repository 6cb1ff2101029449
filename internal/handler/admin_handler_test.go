package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/printpro/internal/db"
)

func TestLogin(t *testing.T) {
	env := newHandlerTestEnv(t, nil)

	if _, err := db.EnsureUser(env.db, "owner", "s3cret"); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	recorder := env.doForm("/admin/login", url.Values{
		"username": {"owner"},
		"password": {"wrong"},
	})
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
	if env.html.name != "admin_login.html" || env.html.data["error"] == nil {
		t.Fatalf("expected login page with error, got %s %v", env.html.name, env.html.data)
	}

	recorder = env.doForm("/admin/login", url.Values{
		"username": {"nobody"},
		"password": {"s3cret"},
	})
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected unknown user to return %d, got %d", http.StatusUnauthorized, recorder.Code)
	}

	recorder = env.doForm("/admin/login", url.Values{
		"username": {"owner"},
		"password": {"s3cret"},
		"next":     {"/admin/contacts"},
	})
	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, recorder.Code)
	}
	if location := recorder.Header().Get("Location"); location != "/admin/contacts" {
		t.Fatalf("expected redirect to next, got %s", location)
	}
	if recorder.Header().Get("Set-Cookie") == "" {
		t.Fatal("expected session cookie")
	}
}

func TestLogoutRedirectsToLogin(t *testing.T) {
	env := newHandlerTestEnv(t, testAdmin)

	recorder := env.doForm("/admin/logout", url.Values{})
	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, recorder.Code)
	}
	if location := recorder.Header().Get("Location"); location != "/admin/login" {
		t.Fatalf("unexpected redirect %s", location)
	}
}

func TestShowLoginPageRedirectsSignedInAdmin(t *testing.T) {
	env := newHandlerTestEnv(t, testAdmin)

	recorder := env.do(http.MethodGet, "/admin/login?next=%2Fadmin%2Fgallery", nil, "")
	if recorder.Code != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, recorder.Code)
	}
	if location := recorder.Header().Get("Location"); location != "/admin/gallery" {
		t.Fatalf("unexpected redirect %s", location)
	}
}

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                    "/admin",
		"/admin/services":     "/admin/services",
		"/admin?x=1":          "/admin?x=1",
		"https://evil.test":   "/admin",
		"//evil.test/admin":   "/admin",
		"/admin\\..\\evil":    "/admin",
		"/admin/login":        "/admin",
		"/services":           "/admin",
		"  /admin/contacts  ": "/admin/contacts",
	}
	for input, want := range cases {
		if got := safeNext(input); got != want {
			t.Errorf("safeNext(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestShowDashboard(t *testing.T) {
	env := newHandlerTestEnv(t, testAdmin)

	env.db.Create(&db.Service{Title: "Banners", Description: "Vinyl"})
	env.db.Create(&db.ContactSubmission{Name: "Jane", Email: "jane@example.com", Message: "Quote for posters"})

	recorder := env.do(http.MethodGet, "/admin", nil, "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	if env.html.name != "admin_dashboard.html" {
		t.Fatalf("expected dashboard template, got %s", env.html.name)
	}
	if count, _ := env.html.data["unhandledCount"].(int64); count != 1 {
		t.Fatalf("expected one unhandled contact, got %v", env.html.data["unhandledCount"])
	}
}
