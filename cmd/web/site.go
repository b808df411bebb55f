package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"finitefield.org/prangana-web/internal/cms"
	"finitefield.org/prangana-web/internal/config"
	"finitefield.org/prangana-web/internal/contact"
	"finitefield.org/prangana-web/internal/handlers"
	mw "finitefield.org/prangana-web/internal/middleware"
	"finitefield.org/prangana-web/internal/nav"
	"finitefield.org/prangana-web/internal/observability"
	"finitefield.org/prangana-web/internal/seo"
)

// scrollResetEvent is dispatched on the client after every section swap.
const scrollResetEvent = "nav:scroll-reset"

// site holds the per-process dependencies shared by handlers.
type site struct {
	loader    *cms.Loader
	seo       seo.Site
	analytics handlers.Analytics
	dev       bool
}

func newSite(cfg config.Config, logger *zap.Logger) *site {
	var providers []cms.Provider
	if client := cms.NewClient(cfg.Content.RemoteURL); client.Configured() {
		providers = append(providers, client)
	}
	providers = append(providers, cms.NewFileProvider(cfg.Content.Dir), cms.Fallback())
	return &site{
		loader:    cms.NewLoader(cfg.Content.TTL, providers, cms.WithLogger(logger.Named("cms"))),
		seo:       seo.Site{Name: cfg.Site.Name, BaseURL: cfg.Site.BaseURL, Image: "/assets/img/og.jpg"},
		analytics: handlers.AnalyticsFromConfig(cfg.Analytics),
		dev:       cfg.Dev,
	}
}

func (s *site) page(r *http.Request, content cms.Content, section nav.SectionID, form handlers.ContactView) handlers.PageData {
	return handlers.BuildPage(handlers.PageParams{
		Site:      s.seo,
		Content:   content,
		Section:   section,
		Path:      "/",
		Analytics: s.analytics,
		Dev:       s.dev,
		CSRFToken: mw.CSRFToken(r),
		Contact:   form,
	})
}

func (s *site) content(w http.ResponseWriter, r *http.Request) (cms.Content, bool) {
	c, err := s.loader.Content(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return cms.Content{}, false
		}
		observability.FromContext(r.Context()).Error("content unavailable", zap.Error(err))
		mw.WriteError(w, r, http.StatusServiceUnavailable, "content unavailable")
		return cms.Content{}, false
	}
	return c, true
}

// HealthHandler answers liveness checks and reports the content cache state.
func (s *site) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Status", s.loader.Status().String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// HomeHandler renders the page for the section persisted in the query string.
func (s *site) HomeHandler(w http.ResponseWriter, r *http.Request) {
	content, ok := s.content(w, r)
	if !ok {
		return
	}
	section := nav.Decode(r.URL.Query())
	form := handlers.NewContactView(mw.CSRFFormField, mw.CSRFToken(r))
	render(w, r, http.StatusOK, s.page(r, content, section, form))
}

// NavigateHandler moves to ?to=<section>. htmx callers get the main fragment with the new
// URL pushed and a scroll reset event; everyone else is redirected to the canonical URL.
func (s *site) NavigateHandler(w http.ResponseWriter, r *http.Request) {
	target, ok := nav.ParseSection(r.URL.Query().Get("to"))
	if !ok {
		target = nav.Home
	}
	router := nav.NewRouter(currentLocation(r))
	t := router.Navigate(target)
	observability.FromContext(r.Context()).Debug("navigate",
		zap.String("from", t.From.String()),
		zap.String("to", t.To.String()),
	)

	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, t.URL, http.StatusSeeOther)
		return
	}
	content, ok := s.content(w, r)
	if !ok {
		return
	}
	mw.PushURL(w, t.URL)
	if err := mw.Trigger(w, map[string]any{scrollResetEvent: t.Scroll}); err != nil {
		observability.FromContext(r.Context()).Warn("scroll reset trigger", zap.Error(err))
	}
	form := handlers.NewContactView(mw.CSRFFormField, mw.CSRFToken(r))
	renderTemplate(w, r, "frag_navigate", http.StatusOK, s.page(r, content, t.To, form))
}

// currentLocation is the page the visitor navigates from. htmx reports it in
// HX-Current-URL; without it only the remaining query of this request is kept.
func currentLocation(r *http.Request) *nav.Location {
	if raw := r.Header.Get("HX-Current-URL"); raw != "" {
		if u, err := url.Parse(raw); err == nil {
			loc := nav.LocationFromURL(u)
			loc.Path = "/"
			return loc
		}
	}
	loc := nav.LocationFromURL(r.URL)
	loc.Path = "/"
	loc.Query.Del("to")
	return loc
}

// ContactHandler validates the enquiry form. htmx swaps only the form; plain posts get
// the full contact page back.
func (s *site) ContactHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	form := contact.Parse(r.PostForm)
	view := handlers.NewContactView(mw.CSRFFormField, mw.CSRFToken(r))
	view.Values = form.Values()

	status := http.StatusOK
	sub, err := contact.Submit(r.Context(), form)
	switch {
	case errors.Is(err, contact.ErrInvalid):
		view.Errors = form.Validate()
		if !mw.IsHTMX(r.Context()) {
			status = http.StatusUnprocessableEntity
		}
	case err != nil:
		observability.FromContext(r.Context()).Error("contact submit", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "could not send your message")
		return
	default:
		view.Sent = true
		view.SubmissionID = sub.ID
		view.Values = map[string]string{}
	}

	if mw.IsHTMX(r.Context()) {
		renderTemplate(w, r, "frag_contact_form", status, view)
		return
	}
	content, ok := s.content(w, r)
	if !ok {
		return
	}
	render(w, r, status, s.page(r, content, nav.Contact, view))
}

// NotFoundHandler renders the home layout with a 404 status.
func (s *site) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	if mw.IsHTMX(r.Context()) || !strings.Contains(r.Header.Get("Accept"), "text/html") {
		mw.WriteError(w, r, http.StatusNotFound, "not found")
		return
	}
	content, ok := s.content(w, r)
	if !ok {
		return
	}
	form := handlers.NewContactView(mw.CSRFFormField, mw.CSRFToken(r))
	render(w, r, http.StatusNotFound, s.page(r, content, nav.Home, form))
}
