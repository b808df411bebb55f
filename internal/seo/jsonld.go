package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Studio carries the fields the ProfessionalService schema needs.
type Studio struct {
	Name    string
	URL     string
	Logo    string
	Email   string
	Phone   string
	Address string
	Founded int
}

// ProfessionalService returns an Organization subtype describing the practice.
func ProfessionalService(s Studio) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "ProfessionalService",
		"name":     s.Name,
	}
	if s.URL != "" {
		m["url"] = s.URL
	}
	if s.Logo != "" {
		m["logo"] = s.Logo
	}
	if s.Email != "" {
		m["email"] = s.Email
	}
	if s.Phone != "" {
		m["telephone"] = s.Phone
	}
	if s.Address != "" {
		m["address"] = map[string]any{"@type": "PostalAddress", "streetAddress": s.Address}
	}
	if s.Founded > 0 {
		m["foundingDate"] = s.Founded
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Work is a portfolio project as seen by search engines.
type Work struct {
	Name     string
	Genre    string
	Location string
	Image    string
}

// Portfolio lists projects as CreativeWork items.
func Portfolio(creator string, works []Work) map[string]any {
	el := make([]map[string]any, 0, len(works))
	for i, w := range works {
		item := map[string]any{
			"@type":   "CreativeWork",
			"name":    w.Name,
			"creator": map[string]any{"@type": "Organization", "name": creator},
		}
		if w.Genre != "" {
			item["genre"] = w.Genre
		}
		if w.Location != "" {
			item["locationCreated"] = map[string]any{"@type": "Place", "name": w.Location}
		}
		if w.Image != "" {
			item["image"] = w.Image
		}
		el = append(el, map[string]any{"@type": "ListItem", "position": i + 1, "item": item})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"itemListElement": el,
	}
}
