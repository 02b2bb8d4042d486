package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/marbles/config"
	"github.com/plus3/marbles/game"
	"github.com/plus3/marbles/scoreboard"
)

func main() {
	envFile := flag.String("env", ".env", "Settings file.")
	logFile := flag.String("log", "", "Write logs to this file.")
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()

	term := NewTerminal(screen, cfg.BallSize)
	width, height := term.World()

	scores := scoreboard.New(scoreboard.NewFileStore(cfg.ScoresDir), cfg.TopN)
	app, err := game.NewApp(game.SettingsFrom(cfg, width, height), scores, term)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	term.app = app

	run(screen, term)
}

func run(screen tcell.Screen, term *Terminal) {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- screen.PollEvent()
		}
	}()

	lastTime := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if ev == nil || !term.Handle(ev) {
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if err := term.Update(dt); err != nil {
				log.Printf("Frame failed: %v", err)
			}
			term.Draw()
		}
	}
}
