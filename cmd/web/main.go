package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	"finitefield.org/prangana-web/internal/config"
	"finitefield.org/prangana-web/internal/format"
	mw "finitefield.org/prangana-web/internal/middleware"
	"finitefield.org/prangana-web/internal/observability"
	"finitefield.org/prangana-web/internal/rangoli"
)

const shutdownTimeout = 10 * time.Second

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode reparses templates on every request
	devMode   bool
	tmplCache *template.Template
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	var (
		addr     string
		tmplPath string
		pubPath  string
	)
	flag.StringVar(&addr, "addr", cfg.Server.Addr(), "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", cfg.Paths.Templates, "templates directory")
	flag.StringVar(&pubPath, "public", cfg.Paths.Public, "public assets directory")
	flag.Parse()

	templatesDir = tmplPath
	publicDir = pubPath
	devMode = cfg.Dev

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.Dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := rangoli.DefaultOptions().Validate(); err != nil {
		logger.Fatal("navigation geometry", zap.Error(err))
	}

	if !devMode {
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}
	if cfg.Session.SigningKey == "" {
		logger.Warn("session: using ephemeral signing key; set PRANGANA_WEB_SESSION_SIGNING_KEY outside local runs")
	}
	mw.ConfigureSession(cfg.Session.SigningKey, cfg.Session.Secure)

	s := newSite(cfg, logger)

	srv := &http.Server{
		Handler:           newRouter(s, logger),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal("listen", zap.String("addr", addr), zap.Error(err))
	}
	ln = netutil.LimitListener(ln, cfg.Server.MaxConns)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// warm the content cache so the first visitor does not pay for it
	go func() {
		if _, err := s.loader.Content(ctx); err != nil {
			logger.Warn("content warmup failed", zap.Error(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", ln.Addr().String()),
			zap.Bool("devMode", devMode),
			zap.String("env", cfg.Environment),
			zap.Int("maxConns", cfg.Server.MaxConns),
		)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}

// newRouter wires middleware and routes. Tests build the same router.
func newRouter(s *site, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(mw.HTMX)

	r.Get("/healthz", s.HealthHandler)
	r.Handle("/assets/*", mw.AssetsWithCache(filepath.Join(publicDir, "assets"), "/assets"))

	r.Group(func(r chi.Router) {
		r.Use(mw.Session)
		r.Use(mw.CSRF)
		r.Get("/", s.HomeHandler)
		r.Get("/navigate", s.NavigateHandler)
		r.Post("/contact", s.ContactHandler)
	})
	r.NotFound(s.NotFoundHandler)
	return r
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now":  time.Now,
		"year": func() string { return format.Year(time.Now()) },
		// seo.JSON output is produced by encoding/json, which escapes <, > and &
		"jsonld": func(s string) template.JS { return template.JS(s) },
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

func templates() (*template.Template, error) {
	if devMode {
		return parseTemplates()
	}
	if tmplCache == nil {
		return nil, errors.New("template not initialized")
	}
	return tmplCache, nil
}

// render executes the base layout.
func render(w http.ResponseWriter, r *http.Request, status int, data any) {
	renderTemplate(w, r, "base", status, data)
}

// renderTemplate executes a named template into a buffer so a failing template never
// leaves a half-written page behind.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, status int, data any) {
	t, err := templates()
	if err != nil {
		observability.FromContext(r.Context()).Error("templates unavailable", zap.Error(err))
		templateError(w, "template parse error", err)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		observability.FromContext(r.Context()).Error("template exec", zap.String("template", name), zap.Error(err))
		templateError(w, "template exec error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// templateError shows template details only in dev mode.
func templateError(w http.ResponseWriter, msg string, err error) {
	if devMode {
		msg = fmt.Sprintf("%s: %v", msg, err)
	} else {
		msg = http.StatusText(http.StatusInternalServerError)
	}
	http.Error(w, msg, http.StatusInternalServerError)
}
