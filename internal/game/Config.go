package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultTicksPerSecond = 8
	DefaultCellSize       = 20
	DefaultGridCells      = 36
	BorderThickness       = 4
	GridMarginX           = 40
	GridMarginY           = 60
	FoodSize              = 15
	StartCol              = 5
	StartRow              = 5

	directionBufferSize = 16
	updateBufferSize    = 8
)

var ErrInvalidConfig = errors.New("invalid game config")

type Config struct {
	CellSize     int
	Cells        int
	Thickness    int
	MarginX      int
	MarginY      int
	FoodSize     int
	StartCol     int
	StartRow     int
	TickDuration time.Duration

	Autopilot       bool
	AutopilotScript string
	LogFile         string
}

func DefaultConfig() Config {
	return Config{
		CellSize:     DefaultCellSize,
		Cells:        DefaultGridCells,
		Thickness:    BorderThickness,
		MarginX:      GridMarginX,
		MarginY:      GridMarginY,
		FoodSize:     FoodSize,
		StartCol:     StartCol,
		StartRow:     StartRow,
		TickDuration: time.Second / DefaultTicksPerSecond,
	}
}

// ConfigFromEnv starts from DefaultConfig and applies the SNAKE_* overrides.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if raw := os.Getenv("SNAKE_GRID_CELLS"); raw != "" {
		cells, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: SNAKE_GRID_CELLS=%q: %v", ErrInvalidConfig, raw, err)
		}
		cfg.Cells = cells
		cfg.fitStartToGrid()
	}

	if raw := os.Getenv("SNAKE_TICKS_PER_SECOND"); raw != "" {
		rate, err := strconv.Atoi(raw)
		if err != nil || rate <= 0 {
			return cfg, fmt.Errorf("%w: SNAKE_TICKS_PER_SECOND=%q must be a positive integer", ErrInvalidConfig, raw)
		}
		cfg.TickDuration = time.Second / time.Duration(rate)
	}

	if raw := os.Getenv("SNAKE_AUTOPILOT"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: SNAKE_AUTOPILOT=%q: %v", ErrInvalidConfig, raw, err)
		}
		cfg.Autopilot = enabled
	}

	cfg.AutopilotScript = os.Getenv("SNAKE_AUTOPILOT_SCRIPT")
	if cfg.AutopilotScript != "" {
		cfg.Autopilot = true
	}
	cfg.LogFile = os.Getenv("SNAKE_LOG_FILE")

	return cfg, cfg.Validate()
}

// fitStartToGrid moves a start cell that falls off a small grid to its centre.
// Cells/2 is at least 1, leaving room for the body segment left of the head.
func (c *Config) fitStartToGrid() {
	if c.Cells < 2 {
		return
	}
	if c.StartCol >= c.Cells {
		c.StartCol = c.Cells / 2
	}
	if c.StartRow >= c.Cells {
		c.StartRow = c.Cells / 2
	}
}

func (c Config) Validate() error {
	switch {
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size %d must be positive", ErrInvalidConfig, c.CellSize)
	case c.Cells < 2:
		return fmt.Errorf("%w: grid needs at least 2 cells per axis, got %d", ErrInvalidConfig, c.Cells)
	case c.Thickness < 0 || c.MarginX < 0 || c.MarginY < 0:
		return fmt.Errorf("%w: border and margins must not be negative", ErrInvalidConfig)
	case c.FoodSize <= 0 || c.FoodSize > c.CellSize:
		return fmt.Errorf("%w: food size %d must be in (0, %d]", ErrInvalidConfig, c.FoodSize, c.CellSize)
	case c.StartCol < 1 || c.StartCol >= c.Cells || c.StartRow < 0 || c.StartRow >= c.Cells:
		// the starting body segment sits one cell left of the head
		return fmt.Errorf("%w: start cell (%d,%d) does not fit a %dx%d grid", ErrInvalidConfig, c.StartCol, c.StartRow, c.Cells, c.Cells)
	case c.TickDuration <= 0:
		return fmt.Errorf("%w: tick duration %s must be positive", ErrInvalidConfig, c.TickDuration)
	}
	return nil
}

func (c Config) Grid() Grid {
	return Grid{
		CellSize:  c.CellSize,
		Cells:     c.Cells,
		Thickness: c.Thickness,
		MarginX:   c.MarginX,
		MarginY:   c.MarginY,
	}
}
