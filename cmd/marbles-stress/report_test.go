package main

import (
	"strings"
	"testing"
	"time"

	"github.com/plus3/marbles/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	report := &Report{
		Rounds:   2,
		Width:    320,
		Height:   480,
		FPS:      60,
		TapEvery: 30,
		UpdateTime: Stats{
			Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond},
		},
		Scores: []RoundScore{{Round: 1, Score: 40, Selections: 2, Frames: 90}},
		Top:    []int{40, 0, 0},
		systems: make(map[string]*SystemTotals),
	}
	report.UpdateTime.Finalize()

	assert.Equal(t, time.Millisecond, report.UpdateTime.Min)
	assert.Equal(t, 3*time.Millisecond, report.UpdateTime.Max)
	assert.Equal(t, 2*time.Millisecond, report.UpdateTime.Avg)

	for range 2 {
		report.add(&game.SchedulerStats{Systems: []game.SystemStats{
			{Name: "PhysicsSystem", ExecutionCount: 2, TotalDuration: 4 * time.Millisecond, MaxDuration: 3 * time.Millisecond},
			{Name: "ClockSystem", ExecutionCount: 2, TotalDuration: 2 * time.Millisecond, MaxDuration: time.Millisecond},
		}})
	}

	systems := report.Systems()
	require.Len(t, systems, 2)
	assert.Equal(t, "PhysicsSystem", systems[0].Name)
	assert.Equal(t, int64(4), systems[0].Executions)
	assert.Equal(t, 2*time.Millisecond, systems[0].Avg())

	var out strings.Builder
	require.NoError(t, report.Generate(&out))
	assert.Contains(t, out.String(), "**Board:** 320x480")
	assert.Contains(t, out.String(), "- Round 1: 40 points, 2 matches, 90 frames")
	assert.Contains(t, out.String(), "- ClockSystem: 4 runs")
	assert.Contains(t, out.String(), "1. 40")
}
