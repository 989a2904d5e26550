package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/thruflo/liftlogic/internal/loop"
	"github.com/thruflo/liftlogic/internal/pose"
	"github.com/thruflo/liftlogic/internal/rep"
)

// Layout bounds for the HUD box.
const (
	MinWidth          = 40
	MaxWidth          = 72
	DefaultPlotHeight = 14
)

// View lays out the HUD as box-drawn lines.
type View struct {
	Width      int
	PlotHeight int
}

// ViewFor fits a View to a terminal of the given width.
func ViewFor(termWidth int) View {
	return View{
		Width:      min(max(termWidth, MinWidth), MaxWidth),
		PlotHeight: DefaultPlotHeight,
	}
}

// Render returns the HUD for one frame.
func (v View) Render(frame pose.Frame, hud loop.HUD) []string {
	width := max(v.Width, MinWidth)
	inner := width - 4

	status := []string{
		fmt.Sprintf("%s  %s MODE  %s",
			Style("LIFTLOGIC", Bold, FgCyan), hud.Mode, Style("session "+shortID(hud.SessionID), Dim)),
		fmt.Sprintf("GOOD %s   BAD %s   phase %s",
			Style(fmt.Sprint(hud.Good), FgGreen, Bold),
			Style(fmt.Sprint(hud.Bad), FgRed, Bold),
			hud.Phase),
		Style(hud.Feedback, FeedbackColor(hud.Feedback), Bold),
		angleLine(hud, inner),
	}

	plot := Plot(frame.Landmarks, rep.ProfileFor(hud.Mode).Triple, inner, v.PlotHeight)
	if !frame.HasLandmarks() && len(plot) > 0 {
		plot[len(plot)/2] = CenterText(Style("no pose", Dim), inner)
	}

	footer := []string{
		Style(fmt.Sprintf("[s] squat  [c] curl  [q] quit   frames %d  skipped %d",
			hud.Frames, hud.Skipped), Dim),
	}

	return stack(width, status, plot, footer)
}

func angleLine(hud loop.HUD, inner int) string {
	lowest := "--"
	if hud.Extremal < 180 {
		lowest = fmt.Sprintf("%d", int(hud.Extremal))
	}
	suffix := "  low " + lowest

	if !hud.Tracking {
		return "angle " + Style("not tracking", Dim) + suffix
	}
	return "angle " + Gauge(hud.Angle, 180, inner-6-len(suffix)) + suffix
}

// stack draws each section in its own box, sharing the borders between
// neighbors.
func stack(width int, sections ...[]string) []string {
	var lines []string
	for i, section := range sections {
		box := BoxWithContent(width, section)
		if i > 0 {
			lines[len(lines)-1] = Divider(width)
			box = box[1:]
		}
		lines = append(lines, box...)
	}
	return lines
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "-"
	}
	return id
}

// Display draws the HUD to a terminal. It implements loop.Renderer.
type Display struct {
	mu   sync.Mutex
	term *Terminal
	view View
}

// NewDisplay creates a Display drawing view to term.
func NewDisplay(term *Terminal, view View) *Display {
	return &Display{term: term, view: view}
}

// Start clears the screen and hides the cursor.
func (d *Display) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.term.HideCursor()
	d.term.Clear()
}

// Render redraws the HUD in place.
func (d *Display) Render(frame pose.Frame, hud loop.HUD) {
	lines := d.view.Render(frame, hud)

	var sb strings.Builder
	sb.WriteString(CursorHome)
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString(ClearLine)
		sb.WriteString("\r\n")
	}
	sb.WriteString(ClearBelow)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.term.Write(sb.String())
}

// Stop restores the cursor below the last frame.
func (d *Display) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.term.ShowCursor()
	d.term.WriteLine("")
}
