// Package layout arranges a primary panel and a dockable secondary panel along
// one of the screen edges.
package layout

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Edge is the side of the screen the secondary panel docks to.
type Edge string

const (
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
	EdgeNone   Edge = "none"
)

// Edges lists every edge in the order the settings form offers them.
var Edges = []Edge{EdgeRight, EdgeLeft, EdgeTop, EdgeBottom, EdgeNone}

func (e Edge) String() string { return string(e) }

// ParseEdge returns the edge named s. Unknown names report false.
func ParseEdge(s string) (Edge, bool) {
	e := Edge(strings.ToLower(strings.TrimSpace(s)))
	switch e {
	case EdgeLeft, EdgeRight, EdgeTop, EdgeBottom, EdgeNone:
		return e, true
	}
	return EdgeNone, false
}

// Range bounds the dock size in percent.
type Range struct {
	Min int
	Max int
}

// DefaultRange is the size range offered by the settings form.
var DefaultRange = Range{Min: 10, Max: 50}

// DefaultSize is the dock size used when none is configured.
const DefaultSize = 30

// Clamp limits size to the range.
func (r Range) Clamp(size int) int {
	return min(max(size, r.Min), r.Max)
}

// Valid reports whether the range is usable as a percentage bound.
func (r Range) Valid() bool {
	return r.Min >= 0 && r.Max <= 100 && r.Min <= r.Max
}

// Config is the user-facing layout setting. Size must already be clamped.
type Config struct {
	Edge          Edge
	Size          int
	ShowSecondary bool
}

// Visible reports whether the secondary panel is shown.
func (c Config) Visible() bool {
	return c.ShowSecondary && c.Edge != EdgeNone
}

// Axis is the direction along which the two panels are split.
type Axis int

const (
	Horizontal Axis = iota // side by side
	Vertical               // stacked
)

// Allocation is the percentage split between the two panels.
type Allocation struct {
	Primary        int
	Secondary      int
	Axis           Axis
	SecondaryFirst bool
}

// Split computes the allocation for cfg. A hidden secondary panel gets 0.
func Split(cfg Config) Allocation {
	if !cfg.Visible() {
		return Allocation{Primary: 100}
	}
	a := Allocation{
		Primary:   100 - cfg.Size,
		Secondary: cfg.Size,
	}
	switch cfg.Edge {
	case EdgeLeft:
		a.Axis, a.SecondaryFirst = Horizontal, true
	case EdgeRight:
		a.Axis = Horizontal
	case EdgeTop:
		a.Axis, a.SecondaryFirst = Vertical, true
	case EdgeBottom:
		a.Axis = Vertical
	}
	return a
}

// Cells converts the allocation to cells along an extent of total. The two
// values always add up to total.
func (a Allocation) Cells(total int) (primary, secondary int) {
	if a.Secondary == 0 || total <= 0 {
		return max(total, 0), 0
	}
	secondary = (total*a.Secondary + 50) / 100
	return total - secondary, secondary
}

// MinSize is the smallest area a panel can be drawn in.
type MinSize struct {
	Width  int
	Height int
}

// Constrain hides the secondary panel when, in a width by height area, either
// panel would get less than least along the split axis.
func (c Config) Constrain(width, height int, least MinSize) Config {
	a := Split(c)
	if a.Secondary == 0 {
		return c
	}
	total, need := width, least.Width
	if a.Axis == Vertical {
		total, need = height, least.Height
	}
	if p, s := a.Cells(total); p < need || s < need {
		c.ShowSecondary = false
	}
	return c
}

// Panel renders content to exactly w by h cells.
type Panel func(w, h int) string

// Compose renders primary and secondary into a width by height area.
func Compose(primary, secondary Panel, cfg Config, width, height int) string {
	a := Split(cfg)
	if a.Secondary == 0 {
		return Clip(primary(width, height), width, height)
	}

	if a.Axis == Horizontal {
		pw, sw := a.Cells(width)
		p := Clip(primary(pw, height), pw, height)
		s := Clip(secondary(sw, height), sw, height)
		if s == "" {
			return p
		}
		if p == "" {
			return s
		}
		if a.SecondaryFirst {
			return lipgloss.JoinHorizontal(lipgloss.Top, s, p)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, p, s)
	}

	ph, sh := a.Cells(height)
	p := Clip(primary(width, ph), width, ph)
	s := Clip(secondary(width, sh), width, sh)
	if s == "" {
		return p
	}
	if p == "" {
		return s
	}
	if a.SecondaryFirst {
		return lipgloss.JoinVertical(lipgloss.Left, s, p)
	}
	return lipgloss.JoinVertical(lipgloss.Left, p, s)
}

// Clip returns content cut and padded to exactly w by h cells. Lines past h
// are dropped and wide lines truncated.
func Clip(content string, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for i, line := range lines {
		if ansi.StringWidth(line) > w {
			lines[i] = ansi.Truncate(line, w, "")
		}
	}
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, strings.Join(lines, "\n"))
}
