package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestWebServer(t *testing.T) *httptest.Server {
	t.Helper()
	router, err := NewRouter()
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func fetchBody(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading %s: %v", url, err)
	}
	return resp.StatusCode, string(body)
}

func TestPagesRender(t *testing.T) {
	server := newTestWebServer(t)

	pages := []string{
		"/", "/index.html", "/list.html", "/report.html",
		"/item.html", "/login.html", "/register.html", "/reset.html",
	}
	for _, page := range pages {
		status, body := fetchBody(t, server.URL+page)
		if status != http.StatusOK {
			t.Errorf("page %s: expected 200, got %d", page, status)
			continue
		}
		if !strings.Contains(body, `id="profileDropdown"`) {
			t.Errorf("page %s is missing the profile header", page)
		}
	}
}

func TestProfileScriptDropdownBehavior(t *testing.T) {
	server := newTestWebServer(t)

	status, body := fetchBody(t, server.URL+"/static/profile.js")
	if status != http.StatusOK {
		t.Fatalf("expected 200 for profile script, got %d", status)
	}

	// Clicks inside the dropdown must not bubble to the window handler
	// that closes it.
	if !strings.Contains(body, `dropdown.addEventListener("click"`) ||
		!strings.Contains(body, "stopPropagation") {
		t.Error("expected the dropdown to stop click propagation")
	}

	// Opening the dropdown reloads the displayed user info.
	open := strings.Index(body, `classList.contains("open")`)
	if open < 0 || !strings.Contains(body[open:], "loadUserInfo()") {
		t.Error("expected opening the dropdown to refresh user info")
	}
}
