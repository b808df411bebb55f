package cms

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNotFound is returned when a content source has nothing to serve.
var ErrNotFound = errors.New("cms: not found")

// Content is everything the page needs from the outside world.
type Content struct {
	Studio   Studio       `yaml:"studio" json:"studio"`
	Services []Service    `yaml:"services" json:"services"`
	Projects []Project    `yaml:"projects" json:"projects"`
	Team     []TeamMember `yaml:"team" json:"team"`

	Source   string    `yaml:"-" json:"-"`
	LoadedAt time.Time `yaml:"-" json:"-"`
}

// Studio describes the practice itself.
type Studio struct {
	Name      string        `yaml:"name" json:"name"`
	Tagline   string        `yaml:"tagline" json:"tagline"`
	Intro     string        `yaml:"intro" json:"intro"`
	About     string        `yaml:"about" json:"about"` // markdown
	Address   string        `yaml:"address" json:"address"`
	Email     string        `yaml:"email" json:"email"`
	Phone     string        `yaml:"phone" json:"phone"`
	Founded   int           `yaml:"founded" json:"founded"`
	AboutHTML template.HTML `yaml:"-" json:"-"`
}

// Service is one offering listed in the services panel.
type Service struct {
	Slug     string        `yaml:"slug" json:"slug"`
	Title    string        `yaml:"title" json:"title"`
	Summary  string        `yaml:"summary" json:"summary"`
	Body     string        `yaml:"body" json:"body"` // markdown
	BodyHTML template.HTML `yaml:"-" json:"-"`
}

// Project is a portfolio entry.
type Project struct {
	Title         string `yaml:"title" json:"title"`
	Category      string `yaml:"category" json:"category"`
	Location      string `yaml:"location" json:"location"`
	Image         string `yaml:"image" json:"image"`
	CategoryLabel string `yaml:"-" json:"-"`
}

// TeamMember is a person shown in the team panel.
type TeamMember struct {
	Name  string `yaml:"name" json:"name"`
	Role  string `yaml:"role" json:"role"`
	Bio   string `yaml:"bio" json:"bio"`
	Image string `yaml:"image" json:"image"`
}

// Provider is the content adapter boundary. Implementations may scrape, fetch or read
// files; nothing past this interface knows how.
type Provider interface {
	LoadContent(ctx context.Context) (Content, error)
}

// ProviderFunc adapts ordinary functions to Provider.
type ProviderFunc func(context.Context) (Content, error)

// LoadContent calls f.
func (f ProviderFunc) LoadContent(ctx context.Context) (Content, error) { return f(ctx) }

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.Typographer, extension.Linkify))
	sanitize = bluemonday.UGCPolicy()
)

// RenderMarkdown converts markdown to sanitized HTML.
func RenderMarkdown(src string) (template.HTML, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("cms: render markdown: %w", err)
	}
	return template.HTML(sanitize.SanitizeBytes(buf.Bytes())), nil
}

// normalize trims fields, renders markdown bodies and fills derived labels.
func (c *Content) normalize() error {
	c.Studio.Name = strings.TrimSpace(c.Studio.Name)
	c.Studio.Tagline = strings.TrimSpace(c.Studio.Tagline)
	c.Studio.Intro = strings.TrimSpace(c.Studio.Intro)
	about, err := RenderMarkdown(c.Studio.About)
	if err != nil {
		return err
	}
	c.Studio.AboutHTML = about

	for i := range c.Services {
		s := &c.Services[i]
		s.Title = strings.TrimSpace(s.Title)
		s.Summary = strings.TrimSpace(s.Summary)
		s.Slug = sanitizeSlug(firstNonEmpty(s.Slug, s.Title))
		body, err := RenderMarkdown(s.Body)
		if err != nil {
			return fmt.Errorf("cms: service %q: %w", s.Slug, err)
		}
		s.BodyHTML = body
	}
	for i := range c.Projects {
		p := &c.Projects[i]
		p.Title = strings.TrimSpace(p.Title)
		p.Location = strings.TrimSpace(p.Location)
		p.Category = strings.TrimSpace(p.Category)
		p.CategoryLabel = CategoryLabel(p.Category)
	}
	for i := range c.Team {
		m := &c.Team[i]
		m.Name = strings.TrimSpace(m.Name)
		m.Role = strings.TrimSpace(m.Role)
		m.Bio = strings.TrimSpace(m.Bio)
	}
	return nil
}

// Categories returns the distinct project categories in first-seen order.
func (c Content) Categories() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range c.Projects {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// CategoryLabel turns a category slug into a display label, e.g. "hospitality-interiors"
// becomes "Hospitality Interiors".
func CategoryLabel(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return ""
	}
	category = strings.NewReplacer("-", " ", "_", " ").Replace(category)
	// a Caser keeps state, so one is built per call
	return cases.Title(language.English).String(category)
}

func cloneContent(src Content) Content {
	cp := src
	cp.Services = append([]Service(nil), src.Services...)
	cp.Projects = append([]Project(nil), src.Projects...)
	cp.Team = append([]TeamMember(nil), src.Team...)
	return cp
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") {
		return ""
	}
	return strings.Join(strings.Fields(slug), "-")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
