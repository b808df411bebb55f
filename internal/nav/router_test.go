package nav

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, id := range Sections() {
		q := url.Values{}
		Encode(q, id)
		if id == Home {
			_, present := q[QueryParam]
			require.False(t, present, "home must clear the parameter")
		} else {
			require.Equal(t, id.String(), q.Get(QueryParam))
		}
		require.Equal(t, id, Decode(q))
	}
}

func TestDecodeFallsBackToHome(t *testing.T) {
	t.Parallel()

	require.Equal(t, Home, Decode(nil))
	require.Equal(t, Home, Decode(url.Values{}))
	require.Equal(t, Home, Decode(url.Values{QueryParam: {"bogus-section"}}))
	require.Equal(t, Home, Decode(url.Values{QueryParam: {""}}))
	for _, padded := range []string{" contact ", " portfolio", "contact\t", "\nteam"} {
		require.Equal(t, Home, Decode(url.Values{QueryParam: {padded}}), "value %q", padded)
	}
}

func TestNavigatePersistsAndResetsScroll(t *testing.T) {
	t.Parallel()

	loc := &Location{
		Path:   "/",
		Query:  url.Values{"utm_source": {"newsletter"}},
		Scroll: Scroll{X: 0, Y: 2400, Behavior: ScrollSmooth},
	}
	r := NewRouter(loc)
	require.Equal(t, Home, r.Current())

	tr := r.Navigate(Portfolio)
	require.Equal(t, Home, tr.From)
	require.Equal(t, Portfolio, tr.To)
	require.Equal(t, Portfolio, r.Current())
	require.Equal(t, "portfolio", loc.Query.Get(QueryParam))
	require.Equal(t, Scroll{X: 0, Y: 0, Behavior: ScrollInstant}, loc.Scroll)
	require.Equal(t, tr.Scroll, loc.Scroll)
	require.Equal(t, "/?section=portfolio&utm_source=newsletter", tr.URL)

	loc.Scroll.Y = 900
	tr = r.Navigate(Home)
	require.Equal(t, Home, r.Current())
	_, present := loc.Query[QueryParam]
	require.False(t, present)
	require.NotContains(t, tr.URL, "section=")
	require.Equal(t, 0, loc.Scroll.Y)
}

func TestNewRouterDecodesPersistedState(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("/?section=team")
	require.NoError(t, err)
	r := NewRouter(LocationFromURL(u))
	require.Equal(t, Team, r.Current())

	u, err = url.Parse("/?section=../../etc")
	require.NoError(t, err)
	require.Equal(t, Home, NewRouter(LocationFromURL(u)).Current())

	require.Equal(t, Home, NewRouter(nil).Current())
}

func TestNavigateCoercesInvalidTarget(t *testing.T) {
	t.Parallel()

	r := NewRouter(&Location{Path: "/", Query: url.Values{QueryParam: {"about"}}})
	tr := r.Navigate(SectionID(99))
	require.Equal(t, Home, tr.To)
	require.Equal(t, "/", tr.URL)
}

func TestLocationFromURLCopies(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("/studio?section=about")
	require.NoError(t, err)
	loc := LocationFromURL(u)
	NewRouter(loc).Navigate(Contact)
	require.Equal(t, "about", u.Query().Get(QueryParam))
	require.Equal(t, "/studio?section=contact", loc.URL())
}
