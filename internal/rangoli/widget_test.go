package rangoli

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"finitefield.org/prangana-web/internal/nav"
	"finitefield.org/prangana-web/internal/wave"
)

func TestBuildMarksExactlyOneActiveAnchor(t *testing.T) {
	t.Parallel()

	for _, current := range nav.Sections() {
		view := Build(DefaultOptions(), current)
		require.Len(t, view.Anchors, 6)
		active := 0
		for _, a := range view.Anchors {
			if a.Active {
				active++
				require.Equal(t, current.String(), a.Section)
				require.Equal(t, "7", a.Radius)
			} else {
				require.Equal(t, "4.5", a.Radius)
			}
		}
		require.Equal(t, 1, active)
	}
}

func TestBuildAnchorGeometry(t *testing.T) {
	t.Parallel()

	view := Build(DefaultOptions(), nav.Home)
	xs := make([]string, 0, len(view.Anchors))
	for _, a := range view.Anchors {
		xs = append(xs, a.X)
		require.Equal(t, "68", a.CurveY)
		require.Equal(t, "54", a.Y)
	}
	require.Equal(t, []string{"80", "160", "240", "320", "400", "480"}, xs)
	require.Equal(t, "0 0 560 100", view.ViewBox)
	require.True(t, strings.HasPrefix(view.PathD, "M0 68 "))
	require.True(t, strings.HasSuffix(view.PathD, "L560 68"))
	require.Equal(t, "0ms", view.Anchors[0].Delay)
	require.Equal(t, "450ms", view.Anchors[5].Delay)
	require.Equal(t, "top", view.Anchors[0].LabelSide)
	require.Equal(t, "bottom", view.Anchors[1].LabelSide)
}

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultOptions().Validate())

	badSpec := DefaultOptions()
	badSpec.Spec.Amplitude = 80
	var specErr *wave.SpecError
	require.ErrorAs(t, badSpec.Validate(), &specErr)

	noMenu := DefaultOptions()
	noMenu.Menu = nil
	require.Error(t, noMenu.Validate())

	overflow := DefaultOptions()
	overflow.FirstTroughX = 200
	require.ErrorContains(t, overflow.Validate(), "outside width")
}

func TestRenderedWidget(t *testing.T) {
	t.Parallel()

	html, err := Build(DefaultOptions(), nav.Portfolio).HTML()
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	require.NoError(t, err)

	anchors := doc.Find("a.rangoli__anchor")
	require.Equal(t, 6, anchors.Length())

	active := doc.Find("a.rangoli__anchor.is-active")
	require.Equal(t, 1, active.Length())
	require.Equal(t, "portfolio", active.AttrOr("data-section", ""))
	require.Equal(t, "page", active.AttrOr("aria-current", ""))
	require.Equal(t, "/navigate?to=portfolio", active.AttrOr("hx-get", ""))

	home := doc.Find(`a.rangoli__anchor[data-section="home"]`)
	require.Equal(t, "/", home.AttrOr("href", ""))
	require.Empty(t, home.AttrOr("aria-current", ""))

	// every anchor owns exactly one label so hover reveals only its own
	anchors.Each(func(_ int, s *goquery.Selection) {
		require.Equal(t, 1, s.Find("text.rangoli__label").Length())
	})
	require.Equal(t, "Services", doc.Find(`a[data-section="services"] text`).Text())
	require.Equal(t, 2, doc.Find("path").Length())
}
