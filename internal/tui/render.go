package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thruflo/liftlogic/internal/rep"
)

// Box drawing characters (Unicode)
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
	BoxTeeLeft     = "├"
	BoxTeeRight    = "┤"
)

// BoxWithContent draws a box containing the given content lines.
// Each line is padded/truncated to fit within the box.
func BoxWithContent(width int, content []string) []string {
	if width < 4 {
		return nil
	}

	innerWidth := width - 4 // Account for borders and padding
	lines := make([]string, 0, len(content)+2)

	lines = append(lines, BoxTopLeft+strings.Repeat(BoxHorizontal, width-2)+BoxTopRight)
	for _, line := range content {
		lines = append(lines, BoxVertical+" "+PadOrTruncate(line, innerWidth)+" "+BoxVertical)
	}
	lines = append(lines, BoxBottomLeft+strings.Repeat(BoxHorizontal, width-2)+BoxBottomRight)

	return lines
}

// Divider is a full-width rule for a box of the given width.
func Divider(width int) string {
	if width < 2 {
		return ""
	}
	return BoxTeeLeft + strings.Repeat(BoxHorizontal, width-2) + BoxTeeRight
}

// StripAnsi removes ANSI escape sequences from s.
func StripAnsi(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if isEscapeFinal(r) {
				inEscape = false
			}
		case r == '\033':
			inEscape = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// VisualWidth is the number of runes s occupies on screen, ignoring ANSI
// escape sequences.
func VisualWidth(s string) int {
	return utf8.RuneCountInString(StripAnsi(s))
}

func isEscapeFinal(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// PadOrTruncate pads or truncates a string to exactly width visible
// characters. Escape sequences are kept and do not count toward the width.
func PadOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	visible := VisualWidth(s)
	if visible == width {
		return s
	}
	if visible < width {
		return s + strings.Repeat(" ", width-visible)
	}

	keep := width
	suffix := ""
	if width >= 3 {
		keep = width - 3
		suffix = "..."
	}

	var sb strings.Builder
	styled := false
	inEscape := false
	count := 0
	for _, r := range s {
		switch {
		case inEscape:
			sb.WriteRune(r)
			if isEscapeFinal(r) {
				inEscape = false
			}
		case r == '\033':
			sb.WriteRune(r)
			inEscape = true
			styled = true
		default:
			if count == keep {
				continue
			}
			sb.WriteRune(r)
			count++
		}
		if count == keep && !inEscape {
			break
		}
	}
	if styled && !strings.HasSuffix(sb.String(), Reset) {
		sb.WriteString(Reset)
	}
	sb.WriteString(suffix)
	return sb.String()
}

// Truncate truncates a string to max width, adding ellipsis if needed.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}

	if width >= 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}

// CenterText centers text within the given width.
func CenterText(s string, width int) string {
	runeLen := VisualWidth(s)
	if runeLen >= width {
		return PadOrTruncate(s, width)
	}

	leftPad := (width - runeLen) / 2
	rightPad := width - runeLen - leftPad

	return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", rightPad)
}

// Gauge renders value on a 0..max scale as a bar followed by the value,
// e.g. "[████████░░░░░░░░] 90". It returns "" when width is too small.
func Gauge(value, max float64, width int) string {
	if max <= 0 || width < 10 {
		return ""
	}

	pct := value / max
	switch {
	case pct < 0:
		pct = 0
	case pct > 1:
		pct = 1
	}

	barWidth := width - 6 // Space for "[] XXX"
	filled := int(pct*float64(barWidth) + 0.5)

	return "[" +
		strings.Repeat("█", filled) +
		strings.Repeat("░", barWidth-filled) +
		"]" + fmt.Sprintf(" %3d", int(value+0.5))
}

// Style applies ANSI style codes to text.
func Style(s string, codes ...string) string {
	if len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}

// FeedbackColor returns the color for a HUD feedback message: green for a
// good verdict, red for a bad one, yellow for anything else.
func FeedbackColor(feedback string) string {
	for _, p := range rep.Profiles() {
		switch feedback {
		case p.GoodFeedback:
			return FgGreen
		case p.BadFeedback:
			return FgRed
		}
	}
	return FgYellow
}
