package handlers

import (
	"time"

	"finitefield.org/prangana-web/internal/cms"
	"finitefield.org/prangana-web/internal/format"
	"finitefield.org/prangana-web/internal/nav"
	"finitefield.org/prangana-web/internal/rangoli"
	"finitefield.org/prangana-web/internal/seo"
)

// PageData is the view model for the shared layout.
type PageData struct {
	Title     string
	Lang      string
	SEO       seo.Meta
	Analytics Analytics
	Dev       bool

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Rangoli     rangoli.View
	Section     SectionView

	Studio        cms.Studio
	CSRFToken     string
	Year          string
	ContentSource string
}

// PageParams collects everything a page is built from.
type PageParams struct {
	Site      seo.Site
	Content   cms.Content
	Section   nav.SectionID
	Path      string
	Analytics Analytics
	Dev       bool
	CSRFToken string
	Contact   ContactView
	Now       time.Time
}

// BuildPage assembles the layout view model for one section.
func BuildPage(p PageParams) PageData {
	if p.Path == "" {
		p.Path = "/"
	}
	if !p.Section.Valid() {
		p.Section = nav.Home
	}
	if p.Now.IsZero() {
		p.Now = time.Now()
	}
	if p.Site.Name == "" {
		p.Site.Name = p.Content.Studio.Name
	}

	opts := rangoli.DefaultOptions()
	opts.Path = p.Path
	menu := opts.Menu

	meta := seo.ForSection(p.Site, p.Section, Description(p.Content, p.Section))
	meta.JSONLD = jsonLD(p.Site, p.Content, p.Path, p.Section)

	return PageData{
		Title:         meta.Title,
		Lang:          "en",
		SEO:           meta,
		Analytics:     p.Analytics,
		Dev:           p.Dev,
		Path:          p.Path,
		Nav:           nav.Build(p.Path, menu, p.Section),
		Breadcrumbs:   nav.Breadcrumbs(p.Path, p.Section),
		Rangoli:       rangoli.Build(opts, p.Section),
		Section:       BuildSectionView(p.Content, p.Section, p.Contact),
		Studio:        p.Content.Studio,
		CSRFToken:     p.CSRFToken,
		Year:          format.Year(p.Now),
		ContentSource: p.Content.Source,
	}
}

func jsonLD(site seo.Site, content cms.Content, path string, section nav.SectionID) []string {
	studio := content.Studio
	out := []string{
		seo.JSON(seo.ProfessionalService(seo.Studio{
			Name:    site.Name,
			URL:     site.Absolute("/"),
			Email:   studio.Email,
			Phone:   studio.Phone,
			Address: studio.Address,
			Founded: studio.Founded,
		})),
		seo.JSON(seo.WebSite(site.Name, site.Absolute("/"))),
	}
	crumbs := nav.Breadcrumbs(path, section)
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: site.Absolute(c.Href)})
	}
	out = append(out, seo.JSON(seo.BreadcrumbList(items)))

	if section == nav.Portfolio && len(content.Projects) > 0 {
		works := make([]seo.Work, 0, len(content.Projects))
		for _, p := range content.Projects {
			w := seo.Work{Name: p.Title, Genre: p.CategoryLabel, Location: p.Location}
			if p.Image != "" {
				w.Image = site.Absolute(p.Image)
			}
			works = append(works, w)
		}
		out = append(out, seo.JSON(seo.Portfolio(site.Name, works)))
	}
	return out
}

