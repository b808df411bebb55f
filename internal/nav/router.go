package nav

import (
	"net/url"
)

// QueryParam is the query parameter that persists the current section.
const QueryParam = "section"

// Decode reads the persisted section. A missing or unrecognized value means Home;
// links from the outside world are never an error. Padded values are unrecognized.
func Decode(q url.Values) SectionID {
	if q == nil {
		return Home
	}
	if id, ok := ParseSection(q.Get(QueryParam)); ok {
		return id
	}
	return Home
}

// Encode writes s into q. Home removes the parameter so the default URL stays clean.
func Encode(q url.Values, s SectionID) {
	if !s.Valid() || s == Home {
		q.Del(QueryParam)
		return
	}
	q.Set(QueryParam, s.String())
}

// Href returns the canonical relative URL of a section on the given path.
func Href(path string, s SectionID) string {
	loc := Location{Path: path, Query: url.Values{}}
	Encode(loc.Query, s)
	return loc.URL()
}

// ScrollBehavior mirrors the browser's ScrollToOptions.behavior.
type ScrollBehavior string

const (
	ScrollInstant ScrollBehavior = "instant"
	ScrollSmooth  ScrollBehavior = "smooth"
)

// Scroll is a viewport offset.
type Scroll struct {
	X        int            `json:"x"`
	Y        int            `json:"y"`
	Behavior ScrollBehavior `json:"behavior"`
}

// Location is the externally persisted navigation state: a path, its query and the
// viewport offset the client should apply.
type Location struct {
	Path   string
	Query  url.Values
	Scroll Scroll
}

// LocationFromURL copies u so a router can mutate it freely.
func LocationFromURL(u *url.URL) *Location {
	loc := &Location{Path: "/", Query: url.Values{}}
	if u == nil {
		return loc
	}
	if u.Path != "" {
		loc.Path = u.Path
	}
	for k, vs := range u.Query() {
		loc.Query[k] = append([]string(nil), vs...)
	}
	return loc
}

// URL renders the location as a relative URL.
func (l *Location) URL() string {
	p := l.Path
	if p == "" {
		p = "/"
	}
	if enc := l.Query.Encode(); enc != "" {
		return p + "?" + enc
	}
	return p
}

// Transition describes one navigation.
type Transition struct {
	From   SectionID
	To     SectionID
	URL    string
	Scroll Scroll
}

// Router owns the current section. State changes only through Navigate.
type Router struct {
	loc     *Location
	current SectionID
}

// NewRouter initializes the router from the persisted location.
func NewRouter(loc *Location) *Router {
	if loc == nil {
		loc = &Location{Path: "/"}
	}
	if loc.Query == nil {
		loc.Query = url.Values{}
	}
	return &Router{loc: loc, current: Decode(loc.Query)}
}

// Current returns the active section.
func (r *Router) Current() SectionID { return r.current }

// Location returns the location the router writes to.
func (r *Router) Location() *Location { return r.loc }

// Navigate persists target and resets the viewport to the top without animation.
// Out of range targets are coerced to Home.
func (r *Router) Navigate(target SectionID) Transition {
	if !target.Valid() {
		target = Home
	}
	from := r.current
	Encode(r.loc.Query, target)
	r.loc.Scroll = Scroll{X: 0, Y: 0, Behavior: ScrollInstant}
	r.current = target
	return Transition{
		From:   from,
		To:     target,
		URL:    r.loc.URL(),
		Scroll: r.loc.Scroll,
	}
}
