package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/crossing/ecs"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Preset   string
	Seed     uint64
	Games    int

	// Results
	TotalTicks     int64
	TotalTime      time.Duration
	TickTime       Stats
	Sessions       int
	GameOvers      int
	Crossings      int
	BestScore      int
	PeakEntities   int
	Systems        []ecs.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
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
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// merge folds per-system stats from another game into r.Systems by name.
func (r *Report) merge(systems []ecs.SystemStats) {
	for _, sys := range systems {
		found := false
		for i := range r.Systems {
			acc := &r.Systems[i]
			if acc.Name != sys.Name {
				continue
			}
			found = true
			acc.ExecutionCount += sys.ExecutionCount
			acc.TotalDuration += sys.TotalDuration
			acc.MaxDuration = max(acc.MaxDuration, sys.MaxDuration)
			if sys.ExecutionCount > 0 {
				acc.MinDuration = min(acc.MinDuration, sys.MinDuration)
			}
			if acc.ExecutionCount > 0 {
				acc.AvgDuration = acc.TotalDuration / time.Duration(acc.ExecutionCount)
			}
		}
		if !found {
			r.Systems = append(r.Systems, sys)
		}
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Crossing Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Preset:** {{.Preset}}
- **Seed:** {{.Seed}}
- **Concurrent Games:** {{.Games}}

## Gameplay
- **Sessions:** {{.Sessions}}
- **Game Overs:** {{.GameOvers}}
- **Crossings:** {{.Crossings}}
- **Best Score:** {{.BestScore}}
- **Peak Live Entities:** {{.PeakEntities}}

## Performance Results
- **Total Ticks:** {{.TotalTicks}}
- **Total Test Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

## Systems
| System | Runs | Avg | Max |
|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
## Memory Usage (MB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
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
