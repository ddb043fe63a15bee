package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestSplit_SumsTo100(t *testing.T) {
	for _, edge := range Edges {
		for size := DefaultRange.Min; size <= DefaultRange.Max; size++ {
			for _, show := range []bool{true, false} {
				a := Split(Config{Edge: edge, Size: size, ShowSecondary: show})
				if a.Primary+a.Secondary != 100 {
					t.Fatalf("%s/%d/%v: %d+%d != 100", edge, size, show, a.Primary, a.Secondary)
				}
				hidden := !show || edge == EdgeNone
				if hidden && a.Secondary != 0 {
					t.Fatalf("%s/%d/%v: hidden panel got %d", edge, size, show, a.Secondary)
				}
				if !hidden && a.Secondary != size {
					t.Fatalf("%s/%d/%v: secondary = %d, want %d", edge, size, show, a.Secondary, size)
				}
			}
		}
	}
}

func TestSplit_AxisAndOrder(t *testing.T) {
	tests := []struct {
		edge  Edge
		axis  Axis
		first bool
	}{
		{EdgeLeft, Horizontal, true},
		{EdgeRight, Horizontal, false},
		{EdgeTop, Vertical, true},
		{EdgeBottom, Vertical, false},
	}
	for _, tt := range tests {
		a := Split(Config{Edge: tt.edge, Size: 30, ShowSecondary: true})
		if a.Axis != tt.axis || a.SecondaryFirst != tt.first {
			t.Errorf("%s: axis=%v first=%v", tt.edge, a.Axis, a.SecondaryFirst)
		}
	}
}

func TestAllocation_Cells(t *testing.T) {
	for _, total := range []int{0, 1, 7, 80, 131} {
		for _, size := range []int{10, 33, 50} {
			a := Split(Config{Edge: EdgeRight, Size: size, ShowSecondary: true})
			p, s := a.Cells(total)
			if p+s != total {
				t.Errorf("total=%d size=%d: %d+%d", total, size, p, s)
			}
		}
	}
	p, s := Allocation{Primary: 100}.Cells(40)
	if p != 40 || s != 0 {
		t.Errorf("hidden cells = %d,%d", p, s)
	}
}

func TestRange_Clamp(t *testing.T) {
	r := Range{Min: 10, Max: 50}
	for in, want := range map[int]int{-5: 10, 10: 10, 25: 25, 50: 50, 90: 50} {
		if got := r.Clamp(in); got != want {
			t.Errorf("Clamp(%d) = %d, want %d", in, got, want)
		}
	}
	if !DefaultRange.Valid() || (Range{Min: 60, Max: 20}).Valid() {
		t.Error("unexpected Valid results")
	}
}

func TestParseEdge(t *testing.T) {
	if e, ok := ParseEdge(" Left "); !ok || e != EdgeLeft {
		t.Errorf("ParseEdge(Left) = %v, %v", e, ok)
	}
	if _, ok := ParseEdge("diagonal"); ok {
		t.Error("unknown edge should not parse")
	}
}

func fill(r rune) Panel {
	return func(w, h int) string {
		lines := make([]string, h)
		for i := range lines {
			lines[i] = strings.Repeat(string(r), w)
		}
		return strings.Join(lines, "\n")
	}
}

func TestCompose(t *testing.T) {
	const width, height = 40, 10
	tests := []struct {
		name      string
		cfg       Config
		firstLine string
		lastLine  string
	}{
		{
			name:      "hidden",
			cfg:       Config{Edge: EdgeRight, Size: 25, ShowSecondary: false},
			firstLine: strings.Repeat("p", 40),
			lastLine:  strings.Repeat("p", 40),
		},
		{
			name:      "none",
			cfg:       Config{Edge: EdgeNone, Size: 25, ShowSecondary: true},
			firstLine: strings.Repeat("p", 40),
			lastLine:  strings.Repeat("p", 40),
		},
		{
			name:      "right",
			cfg:       Config{Edge: EdgeRight, Size: 25, ShowSecondary: true},
			firstLine: strings.Repeat("p", 30) + strings.Repeat("s", 10),
			lastLine:  strings.Repeat("p", 30) + strings.Repeat("s", 10),
		},
		{
			name:      "left",
			cfg:       Config{Edge: EdgeLeft, Size: 25, ShowSecondary: true},
			firstLine: strings.Repeat("s", 10) + strings.Repeat("p", 30),
			lastLine:  strings.Repeat("s", 10) + strings.Repeat("p", 30),
		},
		{
			name:      "top",
			cfg:       Config{Edge: EdgeTop, Size: 30, ShowSecondary: true},
			firstLine: strings.Repeat("s", 40),
			lastLine:  strings.Repeat("p", 40),
		},
		{
			name:      "bottom",
			cfg:       Config{Edge: EdgeBottom, Size: 30, ShowSecondary: true},
			firstLine: strings.Repeat("p", 40),
			lastLine:  strings.Repeat("s", 40),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Compose(fill('p'), fill('s'), tt.cfg, width, height)
			if w := lipgloss.Width(out); w != width {
				t.Errorf("width = %d, want %d", w, width)
			}
			if h := lipgloss.Height(out); h != height {
				t.Errorf("height = %d, want %d", h, height)
			}
			lines := strings.Split(out, "\n")
			if lines[0] != tt.firstLine {
				t.Errorf("first line = %q", lines[0])
			}
			if lines[len(lines)-1] != tt.lastLine {
				t.Errorf("last line = %q", lines[len(lines)-1])
			}
		})
	}
}

func TestCompose_PadsShortPanels(t *testing.T) {
	short := func(w, h int) string { return "hi" }
	out := Compose(short, short, Config{Edge: EdgeRight, Size: 50, ShowSecondary: true}, 20, 3)
	if lipgloss.Width(out) != 20 || lipgloss.Height(out) != 3 {
		t.Errorf("got %dx%d", lipgloss.Width(out), lipgloss.Height(out))
	}
}

func TestCompose_ClipsOversizedPanels(t *testing.T) {
	tall := func(w, h int) string {
		return strings.TrimSuffix(strings.Repeat(strings.Repeat("x", w+15)+"\n", h+4), "\n")
	}
	for _, edge := range Edges {
		t.Run(edge.String(), func(t *testing.T) {
			out := Compose(tall, tall, Config{Edge: edge, Size: 10, ShowSecondary: true}, 40, 6)
			lines := strings.Split(out, "\n")
			if len(lines) != 6 {
				t.Fatalf("got %d lines, want 6", len(lines))
			}
			for i, line := range lines {
				if w := lipgloss.Width(line); w != 40 {
					t.Errorf("line %d is %d cells wide, want 40", i, w)
				}
			}
		})
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		name    string
		content string
		w, h    int
	}{
		{"pads", "a", 5, 3},
		{"cuts rows", "a\nb\nc\nd", 5, 2},
		{"cuts wide lines", "abcdefghij\nxy", 4, 2},
		{"styled", lipgloss.NewStyle().Bold(true).Render("abcdefghij"), 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := strings.Split(Clip(tt.content, tt.w, tt.h), "\n")
			if len(lines) != tt.h {
				t.Fatalf("got %d lines, want %d", len(lines), tt.h)
			}
			for i, line := range lines {
				if w := lipgloss.Width(line); w != tt.w {
					t.Errorf("line %d is %d cells wide, want %d", i, w, tt.w)
				}
			}
		})
	}
	if Clip("abc", 0, 3) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestConfig_Constrain(t *testing.T) {
	minSize := MinSize{Width: 12, Height: 4}
	tests := []struct {
		name string
		cfg  Config
		w, h int
		want bool
	}{
		{"fits beside", Config{Edge: EdgeRight, Size: 30, ShowSecondary: true}, 80, 20, true},
		{"too narrow beside", Config{Edge: EdgeLeft, Size: 10, ShowSecondary: true}, 80, 20, false},
		{"fits stacked", Config{Edge: EdgeBottom, Size: 50, ShowSecondary: true}, 80, 20, true},
		{"too short stacked", Config{Edge: EdgeTop, Size: 10, ShowSecondary: true}, 80, 20, false},
		{"primary too short", Config{Edge: EdgeTop, Size: 50, ShowSecondary: true}, 80, 6, false},
		{"already hidden", Config{Edge: EdgeRight, Size: 30}, 80, 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.Constrain(tt.w, tt.h, minSize)
			if got.Visible() != tt.want {
				t.Errorf("Visible() = %v, want %v", got.Visible(), tt.want)
			}
			if got.Edge != tt.cfg.Edge || got.Size != tt.cfg.Size {
				t.Error("Constrain should only toggle visibility")
			}
		})
	}
}
