// Package wave computes the sampled sine path drawn behind the rangoli navigation
// and the analytic x positions of its troughs.
package wave

import (
	"fmt"
	"math"
	"strings"

	"finitefield.org/prangana-web/internal/format"
)

// DefaultFirstTroughX is the x position of the first anchor on the production wave.
const DefaultFirstTroughX = 80

// Spec is the immutable waveform configuration. All distances are in viewBox pixels.
type Spec struct {
	Width     float64
	Height    float64
	MidY      float64
	Amplitude float64
	Period    float64
	Phase     float64 // radians
	StepPx    float64
}

// Point is a single vertex of the sampled path.
type Point struct {
	X float64
	Y float64
}

// DefaultSpec returns the constants used by the site header. With phase π/2 the
// lowest on-screen points of the curve fall on multiples of the period.
func DefaultSpec() Spec {
	return Spec{
		Width:     560,
		Height:    100,
		MidY:      50,
		Amplitude: 18,
		Period:    80,
		Phase:     math.Pi / 2,
		StepPx:    8,
	}
}

// SpecError lists the fields of a Spec that violate its invariants.
type SpecError struct {
	Fields []string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("wave: invalid spec fields [%s]", strings.Join(e.Fields, ", "))
}

// Validate reports configuration mistakes. A bad spec is a programmer error; the server
// checks the header geometry once at startup rather than per render.
func (s Spec) Validate() error {
	var bad []string
	if s.Width <= 0 {
		bad = append(bad, "Width")
	}
	if s.Height <= 0 {
		bad = append(bad, "Height")
	}
	if s.Period <= 0 {
		bad = append(bad, "Period")
	}
	if s.StepPx <= 0 {
		bad = append(bad, "StepPx")
	}
	if s.Amplitude < 0 || s.Amplitude > s.MidY {
		bad = append(bad, "Amplitude")
	}
	if s.MidY+s.Amplitude > s.Height {
		bad = append(bad, "MidY")
	}
	if len(bad) > 0 {
		return &SpecError{Fields: bad}
	}
	return nil
}

// Eval returns the unclamped curve height at x.
func (s Spec) Eval(x float64) float64 {
	return s.MidY + s.Amplitude*math.Sin(2*math.Pi*x/s.Period+s.Phase)
}

// Scaled returns a copy of the spec with its amplitude multiplied by f.
func (s Spec) Scaled(f float64) Spec {
	s.Amplitude *= f
	return s
}

// BuildPath samples the curve every StepPx from x=0 and always ends on x=Width exactly.
// Every y is clamped into [0, Height].
func BuildPath(s Spec) []Point {
	if s.Width <= 0 || s.StepPx <= 0 {
		return []Point{{X: 0, Y: s.clamp(s.Eval(0))}}
	}
	n := int(math.Ceil(s.Width/s.StepPx)) + 1
	points := make([]Point, 0, n)
	for i := 0; ; i++ {
		x := float64(i) * s.StepPx
		if x >= s.Width {
			break
		}
		points = append(points, Point{X: x, Y: s.clamp(s.Eval(x))})
	}
	points = append(points, Point{X: s.Width, Y: s.clamp(s.Eval(s.Width))})
	return points
}

func (s Spec) clamp(y float64) float64 {
	if y < 0 {
		return 0
	}
	if y > s.Height {
		return s.Height
	}
	return y
}

// TroughPositions returns count x values starting at firstTroughX, each period apart.
// The positions are analytic; the caller picks a phase that puts troughs there.
func TroughPositions(firstTroughX float64, count int, period float64) []float64 {
	if count <= 0 {
		return []float64{}
	}
	xs := make([]float64, count)
	for i := range xs {
		xs[i] = firstTroughX + float64(i)*period
	}
	return xs
}

// PathData encodes points as SVG path data. Vertices are joined with straight line
// segments; the faceted look is intentional, so no curve commands are emitted.
func PathData(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(points) * 12)
	for i, p := range points {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(format.Coord(p.X))
		b.WriteByte(' ')
		b.WriteString(format.Coord(p.Y))
	}
	return b.String()
}
