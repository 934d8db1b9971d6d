// Command crossing-stress runs headless games under an autopilot as fast as
// possible and prints a Markdown report of tick timings and gameplay totals.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/plus3/crossing/ecs"
	"github.com/plus3/crossing/game"
	"golang.org/x/sync/errgroup"
)

type result struct {
	ticks        int64
	samples      []time.Duration
	sessions     int
	gameOvers    int
	crossings    int
	bestScore    int
	peakEntities int
	systems      []ecs.SystemStats
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	games := flag.Int("games", runtime.GOMAXPROCS(0), "Number of games to run side by side.")
	preset := flag.String("preset", "arcade", "Built-in tuning: classic, arcade or inverted.")
	configPath := flag.String("config", "", "YAML or INI config file; overrides -preset.")
	seed := flag.Uint64("seed", 1, "Base spawn seed; game i uses seed+i.")
	lookahead := flag.Int("lookahead", 8, "Ticks of traffic the autopilot looks ahead.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	verbose := flag.Bool("v", false, "Log game events at debug level.")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, ok := game.Preset(*preset)
	if *configPath != "" {
		var err error
		if cfg, err = game.LoadConfig(*configPath); err != nil {
			log.Error("load config", slog.Any("error", err))
			os.Exit(1)
		}
	} else if !ok {
		log.Error("unknown preset", slog.String("preset", *preset))
		os.Exit(1)
	}

	report := &Report{
		Duration:       *duration,
		Preset:         *preset,
		Seed:           *seed,
		Games:          *games,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running stress test", slog.Int("games", *games), slog.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	results := make([]result, *games)
	group, ctx := errgroup.WithContext(ctx)
	startTime := time.Now()
	for i := range *games {
		group.Go(func() error {
			g, err := game.New(cfg,
				game.WithSeed(*seed+uint64(i)),
				game.WithLogger(log.With(slog.Int("game", i))),
			)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = play(ctx, g, newAutopilot(cfg, *lookahead))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		log.Error("stress test failed", slog.Any("error", err))
		os.Exit(1)
	}

	report.TotalTime = time.Since(startTime)
	for _, r := range results {
		report.TotalTicks += r.ticks
		report.TickTime.Samples = append(report.TickTime.Samples, r.samples...)
		report.Sessions += r.sessions
		report.GameOvers += r.gameOvers
		report.Crossings += r.crossings
		report.BestScore = max(report.BestScore, r.bestScore)
		report.PeakEntities = max(report.PeakEntities, r.peakEntities)
		report.merge(r.systems)
	}
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Error("generate report", slog.Any("error", err))
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")
}

// play ticks g until ctx ends, restarting after every game over.
func play(ctx context.Context, g *game.Game, pilot *autopilot) result {
	var res result
	w := g.World()

	endSession := func() {
		res.crossings += w.Crossings
		res.bestScore = max(res.bestScore, w.Score)
	}

	for ctx.Err() == nil {
		switch g.Phase() {
		case game.GameOver:
			res.gameOvers++
			endSession()
			g.Start()
			res.sessions++
		case game.Idle:
			g.Start()
			res.sessions++
		}

		if d, ok := pilot.next(g.Snapshot()); ok {
			g.MovePlayer(d)
		}

		tickStart := time.Now()
		g.Tick()
		res.samples = append(res.samples, time.Since(tickStart))
		res.ticks++
		res.peakEntities = max(res.peakEntities, w.Entities.Len())
	}

	if g.Phase() == game.GameOver {
		res.gameOvers++
	}
	endSession()
	res.systems = g.Stats().Scheduler.Systems
	return res
}
