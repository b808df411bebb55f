package nav

// SectionID identifies one of the six top-level page views.
type SectionID uint8

const (
	Home SectionID = iota
	Services
	Portfolio
	Team
	About
	Contact
)

// sectionInfo is the single mapping from a section to every string form it takes.
type sectionInfo struct {
	urlValue string // value of the ?section= parameter
	label    string // display label
	elemID   string // DOM id of the section element
}

var sections = [...]sectionInfo{
	Home:      {urlValue: "home", label: "Home", elemID: "home"},
	Services:  {urlValue: "services", label: "Services", elemID: "services"},
	Portfolio: {urlValue: "portfolio", label: "Portfolio", elemID: "portfolio"},
	Team:      {urlValue: "team", label: "Team", elemID: "team"},
	About:     {urlValue: "about", label: "About", elemID: "about"},
	Contact:   {urlValue: "contact", label: "Contact", elemID: "contact"},
}

// Sections returns every section in menu order.
func Sections() []SectionID {
	out := make([]SectionID, len(sections))
	for i := range sections {
		out[i] = SectionID(i)
	}
	return out
}

// Valid reports whether s is one of the enumerated sections.
func (s SectionID) Valid() bool { return int(s) < len(sections) }

// String returns the URL value of the section; invalid values render as home.
func (s SectionID) String() string { return s.info().urlValue }

// Label returns the display label.
func (s SectionID) Label() string { return s.info().label }

// ElementID returns the DOM id used for the section container.
func (s SectionID) ElementID() string { return s.info().elemID }

func (s SectionID) info() sectionInfo {
	if !s.Valid() {
		return sections[Home]
	}
	return sections[s]
}

// ParseSection maps a URL value to a section. Matching is exact: values are produced by
// Encode and never hand typed.
func ParseSection(v string) (SectionID, bool) {
	for i, info := range sections {
		if info.urlValue == v {
			return SectionID(i), true
		}
	}
	return Home, false
}
