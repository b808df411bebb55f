package nav

// RenderedItem is a view model for the plain-link menu (footer and no-SVG fallback).
type RenderedItem struct {
	Href    string
	Label   string
	Section string
	Active  bool
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Build renders menu items with active state for the current section.
func Build(path string, menu []MenuEntry, current SectionID) []RenderedItem {
	if path == "" {
		path = "/"
	}
	items := make([]RenderedItem, 0, len(menu))
	for _, it := range menu {
		items = append(items, RenderedItem{
			Href:    Href(path, it.Section),
			Label:   it.Label,
			Section: it.Section.String(),
			Active:  it.Section == current,
		})
	}
	return items
}

// Breadcrumbs builds breadcrumb entries for the current section.
// Rules:
// - Always start with Home
// - Any other section adds a single active crumb
func Breadcrumbs(path string, current SectionID) []Crumb {
	if path == "" {
		path = "/"
	}
	crumbs := []Crumb{{Href: Href(path, Home), Label: Home.Label(), Active: current == Home || !current.Valid()}}
	if current == Home || !current.Valid() {
		return crumbs
	}
	crumbs = append(crumbs, Crumb{Href: Href(path, current), Label: current.Label(), Active: true})
	return crumbs
}
