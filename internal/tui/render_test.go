package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxWithContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		width   int
		content []string
		want    []string
	}{
		{
			name:    "single line",
			width:   20,
			content: []string{"Hello"},
			want: []string{
				"┌──────────────────┐",
				"│ Hello            │",
				"└──────────────────┘",
			},
		},
		{
			name:    "long line truncated",
			width:   15,
			content: []string{"This is a very long line"},
			want: []string{
				"┌─────────────┐",
				"│ This is ... │",
				"└─────────────┘",
			},
		},
		{
			name:    "width too small",
			width:   3,
			content: []string{"Hi"},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BoxWithContent(tt.width, tt.content))
		})
	}
}

func TestDivider(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "├───┤", Divider(5))
	assert.Equal(t, "", Divider(1))
}

func TestPadOrTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"exact length", "hello", 5, "hello"},
		{"needs padding", "hi", 5, "hi   "},
		{"needs truncation", "hello world", 8, "hello..."},
		{"very short truncation", "hello", 2, "he"},
		{"zero width", "hello", 0, ""},
		{"empty string", "", 5, "     "},
		{"unicode truncated", "日本語文字漢字", 6, "日本語..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PadOrTruncate(tt.input, tt.width))
		})
	}
}

func TestPadOrTruncateWithAnsi(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{
			name:  "ansi needs padding",
			input: FgGreen + "hi" + Reset,
			width: 5,
			want:  FgGreen + "hi" + Reset + "   ",
		},
		{
			name:  "ansi exact width",
			input: FgGreen + "hello" + Reset,
			width: 5,
			want:  FgGreen + "hello" + Reset,
		},
		{
			name:  "ansi needs truncation",
			input: FgGreen + "hello world" + Reset,
			width: 8,
			want:  FgGreen + "hello" + Reset + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := PadOrTruncate(tt.input, tt.width)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.width, VisualWidth(got))
		})
	}
}

func TestVisualWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, VisualWidth("hello"))
	assert.Equal(t, 7, VisualWidth(FgGreen+Bold+"PERFECT"+Reset))
	assert.Equal(t, 3, VisualWidth("日本語"))
	assert.Equal(t, 0, VisualWidth(FgGreen+Reset))
	assert.Equal(t, "test", StripAnsi(FgGreen+Bold+"test"+Reset))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hello...", Truncate("hello world", 8))
	assert.Equal(t, "he", Truncate("hello", 2))
	assert.Equal(t, "", Truncate("hello", 0))
}

func TestCenterText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "  hi  ", CenterText("hi", 6))
	assert.Equal(t, " hi  ", CenterText("hi", 5))
	assert.Equal(t, " "+Dim+"hi"+Reset+" ", CenterText(Style("hi", Dim), 4))
}

func TestGauge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  float64
		max    float64
		width  int
		filled int
		label  string
	}{
		{"half", 90, 180, 20, 7, " 90"},
		{"full", 180, 180, 20, 14, "180"},
		{"empty", 0, 180, 20, 0, "  0"},
		{"clamped", 200, 180, 20, 14, "200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Gauge(tt.value, tt.max, tt.width)
			assert.Equal(t, tt.width, VisualWidth(got))
			assert.Equal(t, tt.filled, strings.Count(got, "█"))
			assert.True(t, strings.HasSuffix(got, "] "+tt.label), got)
		})
	}

	assert.Equal(t, "", Gauge(90, 0, 20))
	assert.Equal(t, "", Gauge(90, 180, 5))
}

func TestStyle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FgRed+Bold+"hello"+Reset, Style("hello", FgRed, Bold))
	assert.Equal(t, "hello", Style("hello"))
}

func TestFeedbackColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		feedback string
		want     string
	}{
		{"PERFECT", FgGreen},
		{"GOOD SQUEEZE", FgGreen},
		{"TOO SHALLOW", FgRed},
		{"HALF REP", FgRed},
		{"Stand in frame", FgYellow},
	}

	for _, tt := range tests {
		t.Run(tt.feedback, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FeedbackColor(tt.feedback))
		})
	}
}
