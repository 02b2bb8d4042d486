package main

import (
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/marbles/game"
)

type Report struct {
	// Configuration
	Rounds   int
	Width    float64
	Height   float64
	FPS      int
	TapEvery int

	// Results
	Balls          int
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Scores         []RoundScore
	Top            []int
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats

	systems map[string]*SystemTotals
	order   []string
}

type RoundScore struct {
	Round      int
	Score      int
	Selections int
	Frames     int64
}

// SystemTotals sums the scheduler statistics of one system over all rounds.
type SystemTotals struct {
	Name       string
	Executions int64
	Total      time.Duration
	Max        time.Duration
}

func (t SystemTotals) Avg() time.Duration {
	if t.Executions == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Executions)
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	for _, sample := range s.Samples {
		total += sample
	}
	s.Min = slices.Min(s.Samples)
	s.Max = slices.Max(s.Samples)
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) add(stats *game.SchedulerStats) {
	for _, system := range stats.Systems {
		totals, ok := r.systems[system.Name]
		if !ok {
			totals = &SystemTotals{Name: system.Name}
			r.systems[system.Name] = totals
			r.order = append(r.order, system.Name)
		}
		totals.Executions += system.ExecutionCount
		totals.Total += system.TotalDuration
		totals.Max = max(totals.Max, system.MaxDuration)
	}
}

// Systems returns the totals in frame order.
func (r *Report) Systems() []SystemTotals {
	systems := make([]SystemTotals, 0, len(r.order))
	for _, name := range r.order {
		systems = append(systems, *r.systems[name])
	}
	return systems
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Marbles Stress Report

## Configuration
- **Rounds:** {{.Rounds}}
- **Board:** {{printf "%.0f" .Width}}x{{printf "%.0f" .Height}}
- **Simulated FPS:** {{.FPS}}
- **Tap Every:** {{.TapEvery}} frames

## Performance Results
- **Balls Laid Out:** {{.Balls}}
- **Total Frames:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Systems
{{range .Systems}}- {{.Name}}: {{.Executions}} runs, avg {{.Avg}}, max {{.Max}}
{{end}}
## Rounds
{{range .Scores}}- Round {{.Round}}: {{.Score}} points, {{.Selections}} matches, {{.Frames}} frames
{{end}}
## Top Scores
{{range $i, $score := .Top}}{{inc $i}}. {{$score}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}
`

	fm := template.FuncMap{
		"inc": func(i int) int {
			return i + 1
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
