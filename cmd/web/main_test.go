package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/prangana-web/internal/config"
	mw "finitefield.org/prangana-web/internal/middleware"
)

// newTestRouter builds the same router as main(), optionally adding extra routes.
func newTestRouter(t *testing.T, add func(r chi.Router)) http.Handler {
	t.Helper()
	// ensure templates reparse each request and set correct paths
	devMode = true
	templatesDir = "../../templates"
	publicDir = "../../public"
	if _, err := parseTemplates(); err != nil {
		t.Fatalf("parseTemplates failed: %v", err)
	}
	cfg, err := config.Load(
		config.WithEnvFile(""),
		config.WithoutSystemEnv(),
		config.WithEnvMap(map[string]string{
			"PRANGANA_WEB_CONTENT_DIR":         "../../content",
			"PRANGANA_WEB_BASE_URL":            "https://prangana.studio",
			"PRANGANA_WEB_SESSION_SIGNING_KEY": "test-key",
		}),
	)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	mw.ConfigureSession(cfg.Session.SigningKey, false)

	h := newRouter(newSite(cfg, zap.NewNop()), zap.NewNop())
	if add == nil {
		return h
	}
	r := chi.NewRouter()
	r.Group(add)
	r.Mount("/", h)
	return r
}

func get(t *testing.T, srv http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Accept", "text/html")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func parseDoc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
	if rec.Header().Get("X-Content-Status") == "" {
		t.Fatalf("expected content status header")
	}
}

func TestHomeRendersWaveNavigation(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := parseDoc(t, rec)

	anchors := doc.Find("#rangoli-slot .rangoli__anchor")
	if anchors.Length() != 6 {
		t.Fatalf("expected 6 wave anchors, got %d", anchors.Length())
	}
	active := doc.Find(".rangoli__anchor.is-active")
	if active.Length() != 1 || active.AttrOr("data-section", "") != "home" {
		t.Fatalf("expected home to be the only active anchor, got %d (%q)", active.Length(), active.AttrOr("data-section", ""))
	}
	if doc.Find("main#main section#home").Length() != 1 {
		t.Fatalf("expected home section in main")
	}
	if got := doc.Find("title").First().Text(); got != "Studio Prangana" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := doc.Find(`script[type="application/ld+json"]`).Length(); got != 3 {
		t.Fatalf("expected 3 JSON-LD blocks, got %d", got)
	}
	if got := doc.Find(`link[rel="canonical"]`).AttrOr("href", ""); got != "https://prangana.studio/" {
		t.Fatalf("unexpected canonical %q", got)
	}
	// every anchor links to its section url and navigates with htmx
	anchors.Each(func(_ int, s *goquery.Selection) {
		section := s.AttrOr("data-section", "")
		if hx := s.AttrOr("hx-get", ""); hx != "/navigate?to="+section {
			t.Errorf("anchor %s: unexpected hx-get %q", section, hx)
		}
		if s.Find("text.rangoli__label").Length() != 1 {
			t.Errorf("anchor %s: expected one label", section)
		}
	})
}

func TestSectionFromQuery(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/?section=team&utm_source=newsletter", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	doc := parseDoc(t, rec)
	if got := doc.Find(".rangoli__anchor.is-active").AttrOr("data-section", ""); got != "team" {
		t.Fatalf("expected team active, got %q", got)
	}
	if doc.Find("section#team .team-member").Length() == 0 {
		t.Fatalf("expected team members rendered")
	}
	if !strings.Contains(doc.Find("section#team").Text(), "Ananya Rao") {
		t.Fatalf("expected team content from content dir")
	}
	crumbs := doc.Find("#breadcrumbs .breadcrumbs__item")
	if crumbs.Length() != 2 || strings.TrimSpace(crumbs.Last().Text()) != "Team" {
		t.Fatalf("expected Home > Team breadcrumbs, got %q", crumbs.Text())
	}
	if got := doc.Find("title").First().Text(); got != "Team | Studio Prangana" {
		t.Fatalf("unexpected title %q", got)
	}
}

func TestUnknownSectionFallsBackToHome(t *testing.T) {
	srv := newTestRouter(t, nil)
	for _, target := range []string{"/?section=blog", "/?section=", "/?section=Team", "/?section=%20portfolio", "/?section=contact%09", "/?section=%0Ateam"} {
		doc := parseDoc(t, get(t, srv, target, nil))
		if got := doc.Find(".rangoli__anchor.is-active").AttrOr("data-section", ""); got != "home" {
			t.Fatalf("%s: expected home active, got %q", target, got)
		}
		if doc.Find("section#home").Length() != 1 {
			t.Fatalf("%s: expected home section", target)
		}
	}
}

func TestNavigateRedirectsWithoutHTMX(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/navigate?to=portfolio&utm_source=newsletter", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/?section=portfolio&utm_source=newsletter" {
		t.Fatalf("unexpected redirect %q", got)
	}

	rec = get(t, srv, "/navigate?to=home", nil)
	if got := rec.Header().Get("Location"); got != "/" {
		t.Fatalf("navigating home should clear the parameter, got %q", got)
	}
}

func TestNavigateFragmentPushesURLAndResetsScroll(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/navigate?to=portfolio", map[string]string{
		"HX-Request":     "true",
		"HX-Current-URL": "https://prangana.studio/?section=team&utm_source=newsletter",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("HX-Push-Url"); got != "/?section=portfolio&utm_source=newsletter" {
		t.Fatalf("unexpected HX-Push-Url %q", got)
	}
	want := `{"nav:scroll-reset":{"x":0,"y":0,"behavior":"instant"}}`
	if got := rec.Header().Get("HX-Trigger"); got != want {
		t.Fatalf("unexpected HX-Trigger %q", got)
	}
	doc := parseDoc(t, rec)
	if doc.Find("section#portfolio .project-card").Length() == 0 {
		t.Fatalf("expected portfolio projects in fragment")
	}
	oob := doc.Find(`#rangoli-slot[hx-swap-oob="true"] .rangoli__anchor.is-active`)
	if oob.AttrOr("data-section", "") != "portfolio" {
		t.Fatalf("expected out-of-band widget with portfolio active")
	}
	if doc.Find("header").Length() != 0 {
		t.Fatalf("fragment must not include the page layout")
	}

	rec = get(t, srv, "/navigate?to=home", map[string]string{
		"HX-Request":     "true",
		"HX-Current-URL": "https://prangana.studio/?section=portfolio&utm_source=newsletter",
	})
	if got := rec.Header().Get("HX-Push-Url"); got != "/?utm_source=newsletter" {
		t.Fatalf("expected section parameter cleared, got %q", got)
	}
}

func TestNavigateInvalidTargetGoesHome(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/navigate?to=nowhere", map[string]string{"HX-Request": "true"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("HX-Push-Url"); got != "/" {
		t.Fatalf("expected push to /, got %q", got)
	}
	if parseDoc(t, rec).Find("section#home").Length() != 1 {
		t.Fatalf("expected home section")
	}

	rec = get(t, srv, "/navigate?to=%20portfolio", nil)
	if got := rec.Header().Get("Location"); got != "/" {
		t.Fatalf("padded target must not match a section, got %q", got)
	}
}

// session performs a GET and returns the cookies plus the CSRF token they carry.
func session(t *testing.T, srv http.Handler) ([]*http.Cookie, string) {
	t.Helper()
	rec := get(t, srv, "/?section=contact", nil)
	cookies := rec.Result().Cookies()
	for _, c := range cookies {
		if c.Name == "csrf_token" {
			return cookies, c.Value
		}
	}
	t.Fatalf("no csrf cookie issued")
	return nil, ""
}

func postContact(t *testing.T, srv http.Handler, cookies []*http.Cookie, form url.Values, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestContactRequiresCSRF(t *testing.T) {
	srv := newTestRouter(t, nil)
	cookies, _ := session(t, srv)
	rec := postContact(t, srv, cookies, url.Values{"name": {"A"}}, map[string]string{"HX-Request": "true"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestContactValidationAndSubmit(t *testing.T) {
	srv := newTestRouter(t, nil)
	cookies, token := session(t, srv)
	hx := map[string]string{"HX-Request": "true", "X-CSRF-Token": token}

	rec := postContact(t, srv, cookies, url.Values{"name": {"Leela"}}, hx)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := parseDoc(t, rec)
	if got := doc.Find(".field--error").Length(); got != 2 {
		t.Fatalf("expected email and message errors, got %d", got)
	}
	if got := doc.Find(`input[name="name"]`).AttrOr("value", ""); got != "Leela" {
		t.Fatalf("expected name to be kept, got %q", got)
	}

	rec = postContact(t, srv, cookies, url.Values{
		"name":    {"Leela"},
		"email":   {"leela@example.com"},
		"message": {"A small courtyard house."},
	}, hx)
	doc = parseDoc(t, rec)
	if doc.Find(".contact-form__thanks").Length() != 1 {
		t.Fatalf("expected thank-you message; body=%s", rec.Body.String())
	}
	if !strings.Contains(doc.Find(".contact-form__thanks").Text(), "enq_") {
		t.Fatalf("expected submission reference")
	}

	// plain form posts carry the token as a field and get the full page back
	rec = postContact(t, srv, cookies, url.Values{mw.CSRFFormField: {token}}, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if parseDoc(t, rec).Find("header .rangoli__anchor.is-active").AttrOr("data-section", "") != "contact" {
		t.Fatalf("expected full page with contact active")
	}
}

func TestAssetsServedWithETag(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/assets/css/site.css", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag")
	}
	rec = get(t, srv, "/assets/css/site.css", map[string]string{"If-None-Match": etag})
	if rec.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rec.Code)
	}
}

func TestLabelsRevealOnlyOnHoverOrFocus(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/assets/css/site.css", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, line := range strings.Split(rec.Body.String(), "\n") {
		if strings.Contains(line, ".rangoli__label") && strings.Contains(line, "is-active") {
			t.Fatalf("active anchor must not pin its label: %q", line)
		}
	}
}

func TestNotFound(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
