package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/liftlogic/internal/pose"
	"github.com/thruflo/liftlogic/internal/rep"
)

func TestPlot_Dimensions(t *testing.T) {
	t.Parallel()

	lines := Plot(nil, rep.SquatProfile().Triple, 12, 5)
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.Equal(t, strings.Repeat(" ", 12), line)
	}

	assert.Nil(t, Plot(nil, rep.SquatProfile().Triple, 0, 5))
}

func TestPlot_MarksTrackedJoints(t *testing.T) {
	t.Parallel()

	triple := rep.SquatProfile().Triple
	l := pose.Landmarks{
		pose.LeftHip:      {X: 0, Y: 0},
		pose.LeftKnee:     {X: 0, Y: 1},
		pose.LeftAnkle:    {X: 1, Y: 1},
		pose.LeftShoulder: {X: 1, Y: 0},
	}

	lines := Plot(l, triple, 5, 5)
	require.Len(t, lines, 5)

	assert.Equal(t, "@   o", lines[0])
	assert.Equal(t, ".    ", lines[1], "limb from hip to knee")
	assert.Equal(t, "@...@", lines[4], "vertex and limb to ankle")
}

func TestPlot_SkipsOutOfFrameJoints(t *testing.T) {
	t.Parallel()

	l := pose.Landmarks{
		pose.LeftWrist: {X: 1.5, Y: 0.5},
		pose.LeftElbow: {X: -0.2, Y: 0.5},
	}

	lines := Plot(l, rep.SquatProfile().Triple, 6, 3)
	for _, line := range lines {
		assert.Equal(t, strings.Repeat(" ", 6), line)
	}
}
