// Package gradient parses CSS-like gradient descriptions, samples colors
// along them and cross-fades between a looping sequence of gradients.
package gradient

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// maxGroupScan bounds the scan for a closing parenthesis.
const maxGroupScan = 5000

// ErrUnterminatedGroup is returned when a parenthesized color expression
// is never closed.
var ErrUnterminatedGroup = errors.New("gradient: unterminated parenthesis")

// Color is r, g, b in [0, 255] and alpha in [0, 1].
type Color [4]float64

// Segment is a color stop at a position along the gradient.
type Segment struct {
	Color Color
	Ratio float64
}

// Gradient is a list of segments sorted by ratio.
type Gradient []Segment

var (
	termRe = regexp.MustCompile(`^(.*?\S)\s+([+-]?(?:\d*\.)?\d+)%`)
	rgbaRe = regexp.MustCompile(`(?i)^rgba\(\s*([+-]?(?:\d*\.)?\d+)\s*,\s*([+-]?(?:\d*\.)?\d+)\s*,\s*([+-]?(?:\d*\.)?\d+)\s*,\s*([+-]?(?:\d*\.)?\d+)\s*\)$`)
	rgbRe  = regexp.MustCompile(`(?i)^rgb\(\s*([+-]?(?:\d*\.)?\d+)\s*,\s*([+-]?(?:\d*\.)?\d+)\s*,\s*([+-]?(?:\d*\.)?\d+)\s*\)$`)
)

// Parse reads a comma-separated list of "<color> <percent>%" terms.
// Terms that don't match are dropped so half-typed input still yields a
// usable gradient. An unclosed parenthesis is an error.
func Parse(text string) (Gradient, error) {
	terms, err := splitTerms(text)
	if err != nil {
		return nil, err
	}

	var g Gradient
	for _, term := range terms {
		seg, ok := parseTerm(term)
		if !ok {
			continue
		}
		g = append(g, seg)
	}
	return g, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) Gradient {
	g, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return g
}

// splitTerms splits on commas that are not inside parentheses.
func splitTerms(input string) ([]string, error) {
	var terms []string
	var acc strings.Builder

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch c {
		case ',':
			terms = append(terms, strings.TrimSpace(acc.String()))
			acc.Reset()
		case '(':
			end := strings.IndexByte(input[i:], ')')
			if end < 0 || end > maxGroupScan {
				return nil, fmt.Errorf("%w at offset %d", ErrUnterminatedGroup, i)
			}
			acc.WriteString(input[i : i+end+1])
			i += end
		default:
			acc.WriteByte(c)
		}
	}
	terms = append(terms, strings.TrimSpace(acc.String()))

	return terms, nil
}

func parseTerm(term string) (Segment, bool) {
	m := termRe.FindStringSubmatch(term)
	if m == nil {
		return Segment{}, false
	}
	color, ok := parseColor(strings.TrimSpace(m[1]))
	if !ok {
		return Segment{}, false
	}
	pct, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Segment{}, false
	}
	return Segment{Color: color, Ratio: pct / 100}, true
}

// parseColor understands rgba(), rgb() and #hex colors.
func parseColor(expr string) (Color, bool) {
	if m := rgbaRe.FindStringSubmatch(expr); m != nil {
		return channels(m[1], m[2], m[3], m[4])
	}
	if m := rgbRe.FindStringSubmatch(expr); m != nil {
		return channels(m[1], m[2], m[3], "1")
	}
	if strings.HasPrefix(expr, "#") {
		c, err := colorful.Hex(expr)
		if err != nil {
			return Color{}, false
		}
		r, g, b := c.RGB255()
		return Color{float64(r), float64(g), float64(b), 1}, true
	}
	return Color{}, false
}

func channels(values ...string) (Color, bool) {
	var c Color
	for i, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Color{}, false
		}
		c[i] = f
	}
	return c, true
}

// Lerp interpolates each channel from a to b.
func Lerp(a, b Color, t float64) Color {
	return Color{
		lerp(a[0], b[0], t),
		lerp(a[1], b[1], t),
		lerp(a[2], b[2], t),
		lerp(a[3], b[3], t),
	}
}

func lerp(v0, v1, t float64) float64 {
	return v0*(1-t) + v1*t
}

// ColorAt samples the gradient at ratio. Outside the bracketed range the
// final segment is extrapolated.
func (g Gradient) ColorAt(ratio float64) Color {
	switch len(g) {
	case 0:
		return Color{}
	case 1:
		return g[0].Color
	}

	var from, to Segment
	found := false
	for i := range g {
		if ratio < g[i].Ratio {
			if i > 0 {
				from, to, found = g[i-1], g[i], true
			}
			break
		}
	}
	if !found {
		from, to = g[len(g)-2], g[len(g)-1]
	}

	span := to.Ratio - from.Ratio
	if span == 0 {
		return to.Color
	}
	return Lerp(from.Color, to.Color, (ratio-from.Ratio)/span)
}

// String formats the gradient in the same syntax Parse accepts.
func (g Gradient) String() string {
	parts := make([]string, len(g))
	for i, s := range g {
		parts[i] = fmt.Sprintf("rgba(%s,%s,%s,%s) %s%%",
			formatNumber(s.Color[0]),
			formatNumber(s.Color[1]),
			formatNumber(s.Color[2]),
			formatNumber(s.Color[3]),
			formatPercent(s.Ratio),
		)
	}
	return strings.Join(parts, ", ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatPercent returns the shortest fixed-point percentage that Parse maps
// back to exactly r.
func formatPercent(r float64) string {
	for prec := 0; prec <= 40; prec++ {
		s := strconv.FormatFloat(r*100, 'f', prec, 64)
		if p, err := strconv.ParseFloat(s, 64); err == nil && p/100 == r {
			return s
		}
	}
	return strconv.FormatFloat(r*100, 'f', -1, 64)
}

// MarshalText implements encoding.TextMarshaler.
func (g Gradient) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The receiver is left
// unchanged on error.
func (g *Gradient) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
