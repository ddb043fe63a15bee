// Package emoji splits chat text into alternating plain-text and emoji runs so
// the renderer can style emoji independently.
package emoji

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// keycap is the combining enclosing keycap that turns "1" into "1️⃣".
const keycap = '⃣'

// Segment is one run of either plain text or emoji.
type Segment struct {
	Text  string
	Emoji bool
}

// Split breaks s into runs on grapheme cluster boundaries. Adjacent clusters of
// the same class are merged, so the result alternates between text and emoji.
// Joining the segments always reproduces s exactly.
func Split(s string) []Segment {
	if s == "" {
		return nil
	}

	var (
		segs  []Segment
		start int
		pos   int
		cur   bool
		state = -1
		rest  = s
	)
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		isEmoji := IsEmoji(cluster)
		if pos > 0 && isEmoji != cur {
			segs = append(segs, Segment{Text: s[start:pos], Emoji: cur})
			start = pos
		}
		cur = isEmoji
		pos += len(cluster)
	}
	return append(segs, Segment{Text: s[start:], Emoji: cur})
}

// Join concatenates the segment texts.
func Join(segs []Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Contains reports whether s has at least one emoji cluster.
func Contains(s string) bool {
	for _, seg := range Split(s) {
		if seg.Emoji {
			return true
		}
	}
	return false
}

// IsEmoji classifies a single grapheme cluster. A cluster is emoji when it
// starts with a pictographic or emoji-presentation rune, or carries a keycap.
func IsEmoji(cluster string) bool {
	r, size := utf8.DecodeRuneInString(cluster)
	if size == 0 || r == utf8.RuneError {
		return false
	}
	if unicode.Is(pictographic, r) || unicode.Is(presentation, r) {
		return true
	}
	return strings.ContainsRune(cluster, keycap)
}
