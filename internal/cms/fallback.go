package cms

import (
	"context"
	"time"
)

// Fallback serves the built-in studio content. It never fails and is always the last
// provider in a Loader chain.
func Fallback() Provider {
	return ProviderFunc(func(context.Context) (Content, error) {
		c := cloneContent(fallbackContent)
		c.Source = "fallback"
		c.LoadedAt = time.Now().UTC()
		return c, nil
	})
}

var fallbackContent = Content{
	Studio: Studio{
		Name:    "Studio Prangana",
		Tagline: "Architecture and interiors shaped around the courtyard.",
		Intro:   "We design homes, workplaces and hospitality spaces that gather light, air and people around an open centre.",
		About: `Prangana is the Sanskrit word for courtyard. Since 2009 the studio has treated every brief as a question of
how a space *opens* rather than how it closes.

We work across **architecture**, **interiors** and **landscape**, keeping one team on a project from the first
sketch to the last site visit.`,
		Address: "14 Temple Road, Basavanagudi, Bengaluru 560004",
		Email:   "hello@prangana.studio",
		Phone:   "+91 80 4000 1122",
		Founded: 2009,
	},
	Services: []Service{
		{
			Slug:    "architecture",
			Title:   "Architecture",
			Summary: "Ground-up residences and small institutional buildings.",
			Body:    "Site studies, massing, permits and construction documentation, delivered by the team that drew the first sketch.",
		},
		{
			Slug:    "interiors",
			Title:   "Interior Design",
			Summary: "Homes, studios and restaurants with crafted, local material palettes.",
			Body:    "Space planning, joinery design and material sourcing with artisans we have worked with for over a decade.",
		},
		{
			Slug:    "landscape",
			Title:   "Landscape",
			Summary: "Courtyards, terraces and gardens that cool the buildings around them.",
			Body:    "Planting plans built on native species and passive water management.",
		},
		{
			Slug:    "consulting",
			Title:   "Design Consulting",
			Summary: "Feasibility and renovation advice for existing buildings.",
			Body:    "Short engagements for owners weighing a renovation, an extension or a change of use.",
		},
	},
	Projects: []Project{
		{Title: "Courtyard House", Category: "residential", Location: "Mysuru", Image: "/assets/img/projects/courtyard-house.jpg"},
		{Title: "Indigo Workshop", Category: "workplace", Location: "Bengaluru", Image: "/assets/img/projects/indigo-workshop.jpg"},
		{Title: "Terracotta Cafe", Category: "hospitality-interiors", Location: "Chennai", Image: "/assets/img/projects/terracotta-cafe.jpg"},
		{Title: "Stepwell Library", Category: "institutional", Location: "Ahmedabad", Image: "/assets/img/projects/stepwell-library.jpg"},
		{Title: "Monsoon Retreat", Category: "residential", Location: "Coorg", Image: "/assets/img/projects/monsoon-retreat.jpg"},
		{Title: "Loom Gallery", Category: "hospitality-interiors", Location: "Kochi", Image: "/assets/img/projects/loom-gallery.jpg"},
	},
	Team: []TeamMember{
		{Name: "Ananya Rao", Role: "Founding Principal", Bio: "Ananya trained in Ahmedabad and practised in Lisbon before founding the studio.", Image: "/assets/img/team/ananya.jpg"},
		{Name: "Karthik Menon", Role: "Principal, Interiors", Bio: "Karthik leads the interiors team and the studio's joinery workshop.", Image: "/assets/img/team/karthik.jpg"},
		{Name: "Meera Iyer", Role: "Landscape Architect", Bio: "Meera designs the courtyards and gardens at the heart of most projects.", Image: "/assets/img/team/meera.jpg"},
		{Name: "Rohan Das", Role: "Project Architect", Bio: "Rohan runs sites and keeps drawings and construction in step.", Image: "/assets/img/team/rohan.jpg"},
	},
}
