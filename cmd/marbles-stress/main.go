package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/marbles/board"
	"github.com/plus3/marbles/config"
	"github.com/plus3/marbles/contact"
	"github.com/plus3/marbles/game"
	"github.com/plus3/marbles/match"
	"github.com/plus3/marbles/scoreboard"
)

func main() {
	rounds := flag.Int("rounds", 20, "The number of rounds to play.")
	width := flag.Float64("width", 640, "Playfield width.")
	height := flag.Float64("height", 960, "Playfield height.")
	fps := flag.Int("fps", 60, "Simulated frames per second.")
	tapEvery := flag.Int("tap-every", 30, "Frames between two taps.")
	realtime := flag.Duration("realtime", 0, "Run the last round in real time with this frame interval instead of simulated time.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	settings := game.SettingsFrom(cfg, *width, *height)
	scores := scoreboard.New(scoreboard.NewMemoryStore(), cfg.TopN)
	app, err := game.NewApp(settings, scores, nil)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	log.Printf("Starting marbles stress test: %d rounds on a %.0fx%.0f board...\n", *rounds, *width, *height)

	report := &Report{
		Rounds:         *rounds,
		Width:          *width,
		Height:         *height,
		FPS:            *fps,
		TapEvery:       *tapEvery,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
		systems: make(map[string]*SystemTotals),
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()
	dt := 1 / float64(*fps)

	for i := range *rounds {
		session := app.Start()
		report.Balls += len(session.Snapshot().Balls)

		if *realtime > 0 && i == *rounds-1 {
			if err := runRealtime(session, *realtime, *tapEvery); err != nil {
				log.Fatalf("Round %d failed: %v", i+1, err)
			}
			if err := app.Update(0); err != nil {
				log.Fatalf("Round %d failed: %v", i+1, err)
			}
		} else {
			frame := 0
			for app.Scene() == game.Playing {
				if frame%*tapEvery == 0 {
					tapLargest(session)
				}

				updateStart := time.Now()
				err := app.Update(dt)
				report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
				if err != nil {
					log.Fatalf("Round %d failed: %v", i+1, err)
				}
				frame++
			}
		}

		stats := session.Stats()
		report.TotalUpdates += stats.Frames
		report.add(stats)
		report.Scores = append(report.Scores, RoundScore{
			Round:      i + 1,
			Score:      app.LastScore(),
			Selections: session.Snapshot().Selections,
			Frames:     stats.Frames,
		})
		log.Printf("Round %d finished with %d points.\n", i+1, app.LastScore())
	}

	report.TotalTime = time.Since(startTime)
	report.Top = app.Top()
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n\n--- Marbles Stress Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// tapLargest picks a ball of the largest group on the board.
func tapLargest(session *game.Session) {
	var target board.BallId
	session.Inspect(func(b *board.Board, graph *contact.Graph) {
		groups := match.Groups(b, graph)
		if len(groups) > 0 {
			target = groups[0][0]
		}
	})
	if target != 0 {
		session.Pick(target)
	}
}

func runRealtime(session *game.Session, interval time.Duration, tapEvery int) error {
	log.Printf("Running the last round in real time at %s per frame...\n", interval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ticker := time.NewTicker(interval * time.Duration(tapEvery))
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tapLargest(session)
			}
		}
	}()

	return session.Run(ctx, interval)
}
