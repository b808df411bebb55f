// Package rangoli renders the wave navigation: the sampled curve, an accent curve and one
// interactive dot per menu entry, with the current section highlighted.
package rangoli

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"time"

	"finitefield.org/prangana-web/internal/format"
	"finitefield.org/prangana-web/internal/nav"
	"finitefield.org/prangana-web/internal/wave"
)

const (
	dotRadius       = 4.5
	activeDotRadius = 7
	tickRadius      = 1.5
	labelOffset     = 12
	accentScale     = 0.55
	revealStep      = 90 * time.Millisecond
)

//go:embed widget.tmpl
var widgetTemplate string

var tmpl = template.Must(template.New("rangoli").Parse(widgetTemplate))

// Options carries the geometry and menu the widget is drawn from.
type Options struct {
	Spec         wave.Spec
	Menu         []nav.MenuEntry
	FirstTroughX float64
	AnchorGap    float64
	Path         string // page path anchors link to
	Target       string // htmx swap target selector
}

// DefaultOptions returns the production header configuration.
func DefaultOptions() Options {
	return Options{
		Spec:         wave.DefaultSpec(),
		Menu:         nav.DefaultMenu(),
		FirstTroughX: wave.DefaultFirstTroughX,
		AnchorGap:    nav.DefaultAnchorGap,
		Path:         "/",
		Target:       "#main",
	}
}

// Validate checks the wave geometry and that the anchors fit inside it.
func (o Options) Validate() error {
	if err := o.Spec.Validate(); err != nil {
		return err
	}
	if len(o.Menu) == 0 {
		return errors.New("rangoli: empty menu")
	}
	if o.AnchorGap < 0 {
		return fmt.Errorf("rangoli: negative anchor gap %v", o.AnchorGap)
	}
	lastX := o.FirstTroughX + float64(len(o.Menu)-1)*o.Spec.Period
	if o.FirstTroughX < 0 || lastX > o.Spec.Width {
		return fmt.Errorf("rangoli: anchors span [%v, %v] outside width %v", o.FirstTroughX, lastX, o.Spec.Width)
	}
	return nil
}

// View is the template model of the widget.
type View struct {
	ViewBox    string
	Width      string
	Height     string
	PathD      string
	AccentD    string
	Target     string
	Active     string
	Anchors    []AnchorView
	ActiveName string
}

// AnchorView is one interactive dot.
type AnchorView struct {
	Section     string
	Label       string
	Href        string
	NavigateURL string
	X           string
	Y           string
	CurveY      string
	Radius      string
	TickRadius  string
	LabelX      string
	LabelY      string
	LabelSide   string
	Anchor      string // text-anchor of the label
	Delay       string
	Active      bool
}

// Build derives the view for the current section. It is a pure function of its inputs.
func Build(opts Options, current nav.SectionID) View {
	spec := opts.Spec
	path := opts.Path
	if path == "" {
		path = "/"
	}
	anchors := nav.ComputeAnchors(opts.Menu, spec, opts.FirstTroughX, opts.AnchorGap)

	v := View{
		ViewBox:    fmt.Sprintf("0 0 %s %s", format.Coord(spec.Width), format.Coord(spec.Height)),
		Width:      format.Coord(spec.Width),
		Height:     format.Coord(spec.Height),
		PathD:      wave.PathData(wave.BuildPath(spec)),
		AccentD:    wave.PathData(wave.BuildPath(spec.Scaled(accentScale))),
		Target:     opts.Target,
		Active:     current.String(),
		ActiveName: current.Label(),
		Anchors:    make([]AnchorView, 0, len(anchors)),
	}
	for _, a := range anchors {
		active := a.Entry.Section == current
		r := dotRadius
		if active {
			r = activeDotRadius
		}
		labelY := a.YAnchor - r - labelOffset
		if a.LabelSide == nav.LabelBottom {
			labelY = a.YOnCurve + labelOffset + 4
		}
		v.Anchors = append(v.Anchors, AnchorView{
			Section:     a.Entry.Section.String(),
			Label:       a.Entry.Label,
			Href:        nav.Href(path, a.Entry.Section),
			NavigateURL: "/navigate?to=" + a.Entry.Section.String(),
			X:           format.Coord(a.X),
			Y:           format.Coord(a.YAnchor),
			CurveY:      format.Coord(a.YOnCurve),
			Radius:      format.Coord(r),
			TickRadius:  format.Coord(tickRadius),
			LabelX:      format.Coord(a.X),
			LabelY:      format.Coord(labelY),
			LabelSide:   string(a.LabelSide),
			Anchor:      "middle",
			Delay:       format.Millis(time.Duration(a.Index) * revealStep),
			Active:      active,
		})
	}
	return v
}

// HTML renders the widget markup.
func (v View) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("rangoli: render: %w", err)
	}
	return template.HTML(buf.String()), nil
}
