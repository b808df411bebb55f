package handlers

import (
	"fmt"
	"strings"

	"finitefield.org/prangana-web/internal/cms"
	"finitefield.org/prangana-web/internal/nav"
)

// SectionView is the payload of the main content area. Exactly one section is rendered
// per request.
type SectionView struct {
	ID        nav.SectionID
	Name      string
	Label     string
	ElementID string

	Studio     cms.Studio
	Services   []cms.Service
	Projects   []cms.Project
	Categories []CategoryView
	Team       []cms.TeamMember
	Contact    ContactView
}

// CategoryView is one portfolio filter chip.
type CategoryView struct {
	Slug  string
	Label string
	Count int
}

// ContactView drives the enquiry form fragment.
type ContactView struct {
	Action       string
	Target       string
	CSRFField    string
	CSRFToken    string
	Values       map[string]string
	Errors       map[string]string
	Sent         bool
	SubmissionID string
}

// HasErrors reports whether any field failed validation.
func (c ContactView) HasErrors() bool { return len(c.Errors) > 0 }

// NewContactView returns an empty form bound to the given CSRF token.
func NewContactView(csrfField, csrfToken string) ContactView {
	return ContactView{
		Action:    "/contact",
		Target:    "#contact-form",
		CSRFField: csrfField,
		CSRFToken: csrfToken,
		Values:    map[string]string{},
		Errors:    map[string]string{},
	}
}

// BuildSectionView selects what the main area shows. Anything unknown renders home.
func BuildSectionView(content cms.Content, section nav.SectionID, contact ContactView) SectionView {
	if !section.Valid() {
		section = nav.Home
	}
	v := SectionView{
		ID:        section,
		Name:      section.String(),
		Label:     section.Label(),
		ElementID: section.ElementID(),
		Studio:    content.Studio,
	}
	switch section {
	case nav.Services:
		v.Services = content.Services
	case nav.Portfolio:
		v.Projects = content.Projects
		v.Categories = categoryViews(content)
	case nav.Team:
		v.Team = content.Team
	case nav.About:
	case nav.Contact:
		v.Contact = contact
	default:
		// home teases services and a few projects
		v.Services = content.Services
		if len(content.Projects) > 3 {
			v.Projects = content.Projects[:3]
		} else {
			v.Projects = content.Projects
		}
	}
	return v
}

func categoryViews(content cms.Content) []CategoryView {
	counts := map[string]int{}
	for _, p := range content.Projects {
		counts[p.Category]++
	}
	cats := content.Categories()
	out := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryView{Slug: c, Label: cms.CategoryLabel(c), Count: counts[c]})
	}
	return out
}

// Description returns the meta description for a section.
func Description(content cms.Content, section nav.SectionID) string {
	studio := content.Studio
	name := firstNonEmpty(studio.Name, "the studio")
	switch section {
	case nav.Services:
		titles := make([]string, 0, len(content.Services))
		for _, s := range content.Services {
			titles = append(titles, s.Title)
		}
		if len(titles) == 0 {
			return "Services offered by " + name + "."
		}
		return name + " offers " + strings.Join(titles, ", ") + "."
	case nav.Portfolio:
		return fmt.Sprintf("%d projects by %s.", len(content.Projects), name)
	case nav.Team:
		return "Meet the people behind " + name + "."
	case nav.About:
		return firstNonEmpty(studio.Tagline, studio.Intro, "About "+name+".")
	case nav.Contact:
		if studio.Address != "" {
			return "Get in touch with " + name + ", " + studio.Address + "."
		}
		return "Get in touch with " + name + "."
	default:
		return firstNonEmpty(studio.Intro, studio.Tagline, name)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
