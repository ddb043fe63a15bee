package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// BadgeStatus is the header's view of badge metadata loading
type BadgeStatus int

const (
	BadgesPending BadgeStatus = iota
	BadgesReady
	BadgesFailed
	BadgesSkipped
)

// Header represents the top header bar
type Header struct {
	width       int
	channel     string
	mock        bool
	badgeStatus BadgeStatus
	badgeCount  int
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetChannel sets the channel shown on the right
func (h *Header) SetChannel(channel string) {
	h.channel = channel
}

// SetMock marks the header as showing generated data
func (h *Header) SetMock(mock bool) {
	h.mock = mock
}

// SetBadgeStatus records the outcome of badge initialization
func (h *Header) SetBadgeStatus(status BadgeStatus, count int) {
	h.badgeStatus = status
	h.badgeCount = count
}

func (h *Header) statusText() string {
	switch h.badgeStatus {
	case BadgesReady:
		return fmt.Sprintf("badges: %d", h.badgeCount)
	case BadgesFailed:
		return "badges: unavailable"
	case BadgesSkipped:
		return "badges: off"
	default:
		return "badges: loading"
	}
}

// View renders the header
func (h *Header) View() string {
	titleText := " streamchat"
	if h.mock {
		titleText += " [mock]"
	}

	var right []string
	if h.channel != "" {
		right = append(right, "#"+h.channel)
	}
	right = append(right, h.statusText())
	rightText := strings.Join(right, "  ") + " "

	paddingLen := max(h.width-ansi.StringWidth(titleText)-ansi.StringWidth(rightText), 0)
	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	return h.renderGradient(fullContent, len([]rune(titleText)), len([]rune(titleText))+paddingLen)
}

// renderGradient renders content over a background fading from the theme's
// primary color to its background. Runes before boldEnd are bold and runes
// from mutedStart on use the muted text color.
func (h *Header) renderGradient(content string, boldEnd, mutedStart int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB, _ := parseHexColor(theme.Primary)
	endR, endG, endB, _ := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)
	if h.badgeStatus == BadgesFailed {
		mutedColor = lipgloss.Color(theme.Warning)
	}

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < boldEnd)

		if i >= mutedStart {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
