package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/zhubert/streamchat/internal/emoji"
	"github.com/zhubert/streamchat/internal/feed"
)

// badgeTagWidth caps the short title shown for a badge
const badgeTagWidth = 8

// authorStyle uses the author's own color when the message carries a valid one
func authorStyle(hex string) lipgloss.Style {
	if _, _, _, ok := parseHexColor(hex); ok {
		return AuthorStyle.Foreground(lipgloss.Color(hex))
	}
	return AuthorStyle
}

// badgeTag renders a badge as a short inline tag
func badgeTag(b feed.Badge) string {
	title := b.Title
	if title == "" {
		title = b.ID
	}
	return BadgeStyle.Render(runewidth.Truncate(title, badgeTagWidth, ""))
}

// RenderContent styles message text, leaving emoji runs intact
func RenderContent(content string) string {
	var sb strings.Builder
	for _, seg := range emoji.Split(content) {
		if seg.Emoji {
			sb.WriteString(EmojiStyle.Render(seg.Text))
		} else {
			sb.WriteString(MessageStyle.Render(seg.Text))
		}
	}
	return sb.String()
}

// RenderChatRow renders one chat message wrapped to width
func RenderChatRow(m feed.ChatMessage, width int) string {
	var sb strings.Builder
	sb.WriteString(TimestampStyle.Render(feed.FormatTime(m.Timestamp)))
	sb.WriteString(" ")
	sb.WriteString(SourceStyle.Render(m.Source.Icon()))
	sb.WriteString(" ")
	for _, b := range m.Badges {
		sb.WriteString(badgeTag(b))
		sb.WriteString(" ")
	}
	author := runewidth.Truncate(m.Author, AuthorMaxWidth, "…")
	sb.WriteString(authorStyle(m.Color).Render(author))
	sb.WriteString(MessageStyle.Render(": "))
	sb.WriteString(RenderContent(m.Content))

	return wrapRow(sb.String(), width)
}

// activityStyle picks the headline style for an activity kind
func activityStyle(kind feed.ActivityKind) lipgloss.Style {
	switch kind {
	case feed.KindDonation:
		return ActivityDonationStyle
	case feed.KindSubscription:
		return ActivitySubscriptionStyle
	default:
		return ActivityFollowStyle
	}
}

// activityIcon is the glyph shown before the headline
func activityIcon(kind feed.ActivityKind) string {
	switch kind {
	case feed.KindDonation:
		return "$"
	case feed.KindSubscription:
		return "★"
	default:
		return "♥"
	}
}

// RenderActivityRow renders one activity wrapped to width. The optional user
// message goes on its own line below the headline.
func RenderActivityRow(a feed.Activity, width int) string {
	style := activityStyle(a.Kind())

	var sb strings.Builder
	sb.WriteString(TimestampStyle.Render(feed.FormatTime(a.Timestamp)))
	sb.WriteString(" ")
	sb.WriteString(SourceStyle.Render(a.Source.Icon()))
	sb.WriteString(" ")
	sb.WriteString(style.Render(activityIcon(a.Kind()) + " " + feed.ActivityText(a)))

	row := wrapRow(sb.String(), width)
	if msg := strings.TrimSpace(a.Message()); msg != "" {
		row += "\n" + wrapRow("  "+ActivityMessageStyle.Render(msg), width)
	}
	return row
}

// wrapRow word-wraps a styled row, hard-breaking words longer than width
func wrapRow(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Wrap(s, width, "")
}
