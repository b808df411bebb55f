package format

import (
    "math"
    "strconv"
    "strings"
    "time"
)

// Coord formats an SVG coordinate with at most two decimals and no trailing zeros.
// Example: Coord(52.300001) => "52.3", Coord(80) => "80"
func Coord(v float64) string {
    if math.IsNaN(v) || math.IsInf(v, 0) {
        return "0"
    }
    s := strconv.FormatFloat(v, 'f', 2, 64)
    if strings.Contains(s, ".") {
        s = strings.TrimRight(s, "0")
        s = strings.TrimSuffix(s, ".")
    }
    if s == "-0" {
        return "0"
    }
    return s
}

// Millis renders a duration as a CSS time value, e.g. "180ms".
func Millis(d time.Duration) string {
    return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}

// Year returns the four digit year used in the footer copyright line.
func Year(t time.Time) string {
    return t.Format("2006")
}
