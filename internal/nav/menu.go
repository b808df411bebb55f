package nav

import "finitefield.org/prangana-web/internal/wave"

// DefaultAnchorGap is how far above the curve an anchor dot rests, in viewBox pixels.
const DefaultAnchorGap = 14

// MenuEntry is one item of the wave navigation. Its position in the menu decides
// which trough it sits in.
type MenuEntry struct {
	Label   string
	Section SectionID
}

// DefaultMenu returns the fixed menu: Home, Services, Portfolio, Team, About, Contact.
func DefaultMenu() []MenuEntry {
	ids := Sections()
	menu := make([]MenuEntry, 0, len(ids))
	for _, id := range ids {
		menu = append(menu, MenuEntry{Label: id.Label(), Section: id})
	}
	return menu
}

// LabelSide says where an anchor's label is drawn relative to its dot.
type LabelSide string

const (
	LabelTop    LabelSide = "top"
	LabelBottom LabelSide = "bottom"
)

// Anchor is the computed placement of one menu entry along the wave.
type Anchor struct {
	Index     int
	Entry     MenuEntry
	X         float64
	YOnCurve  float64
	YAnchor   float64
	LabelSide LabelSide
}

// LabelSideFor alternates label placement starting with top for index 0.
func LabelSideFor(i int) LabelSide {
	if i%2 == 0 {
		return LabelTop
	}
	return LabelBottom
}

// ComputeAnchors places one anchor per menu entry at firstTroughX + i·period.
// Anchors always sit gap pixels above the curve, whether the analytic point is a crest
// or a trough; only the label side alternates.
func ComputeAnchors(menu []MenuEntry, spec wave.Spec, firstTroughX, gap float64) []Anchor {
	xs := wave.TroughPositions(firstTroughX, len(menu), spec.Period)
	anchors := make([]Anchor, len(menu))
	for i, entry := range menu {
		y := spec.Eval(xs[i])
		anchors[i] = Anchor{
			Index:     i,
			Entry:     entry,
			X:         xs[i],
			YOnCurve:  y,
			YAnchor:   y - gap,
			LabelSide: LabelSideFor(i),
		}
	}
	return anchors
}
