package seo

import (
	"strings"

	"finitefield.org/prangana-web/internal/nav"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

type Twitter struct {
	Card  string
	Image string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []string
}

// Site is the site-wide identity every page's metadata is built from.
type Site struct {
	Name    string
	BaseURL string
	Image   string
}

// Absolute joins a site-relative path onto the base URL.
func (s Site) Absolute(path string) string {
	base := strings.TrimRight(s.BaseURL, "/")
	if path == "" {
		return base + "/"
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// ForSection builds page metadata for one section view. The canonical URL is the
// section URL, so every section is its own shareable page.
func ForSection(site Site, section nav.SectionID, description string) Meta {
	title := site.Name
	if section != nav.Home {
		title = section.Label() + " | " + site.Name
	}
	canonical := site.Absolute(nav.Href("/", section))
	image := ""
	if site.Image != "" {
		image = site.Absolute(site.Image)
	}
	card := "summary"
	if image != "" {
		card = "summary_large_image"
	}
	return Meta{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		Robots:      "index,follow",
		OG: OpenGraph{
			Title:       title,
			Description: description,
			Image:       image,
			Type:        "website",
			URL:         canonical,
			SiteName:    site.Name,
		},
		Twitter: Twitter{Card: card, Image: image},
	}
}
