package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Mshel/retrosnake/internal/audio"
	"github.com/Mshel/retrosnake/internal/game"
	"github.com/Mshel/retrosnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Error("Snake exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := game.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("bad configuration: %w", err)
	}

	// the TUI owns the terminal, so logs go to a file or nowhere
	log.SetOutput(io.Discard)
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("could not open log file %s: %w", cfg.LogFile, err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
		log.SetLevel(log.DebugLevel)
	}
	// stderr is free again once the program has released the terminal
	defer log.SetOutput(os.Stderr)

	var sound game.SoundPlayer = game.NopSound{}
	if beeper, err := audio.NewBeeper(log.Default()); err != nil {
		log.Warn("Audio device unavailable, playing silently", "error", err)
	} else {
		sound = beeper
	}

	gameManager, closeSession, err := game.NewSession(cfg, sound, log.Default())
	if err != nil {
		return fmt.Errorf("could not start round: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		defer closeSession()
		if err := gameManager.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Game loop failed", "error", err)
		}
	}()

	p := tea.NewProgram(ui.NewControllerModel(gameManager, 0, 0), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("program exited: %w", err)
	}
	return nil
}
