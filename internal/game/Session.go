package game

import (
	"github.com/charmbracelet/log"
)

// NewSession wires a fresh round, the optional autopilot and its game manager.
// The returned close func releases the autopilot's Lua state once the loop is done.
func NewSession(cfg Config, sound SoundPlayer, logger *log.Logger) (*GameManager, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	round := NewRound(cfg, WithSound(sound), WithLogger(logger))
	opts := []ManagerOption{WithManagerLogger(logger)}
	closeFn := func() {}

	if cfg.Autopilot {
		var (
			pilot *LuaPilot
			err   error
		)
		if cfg.AutopilotScript != "" {
			pilot, err = NewLuaPilotFromFile(cfg.AutopilotScript)
		} else {
			pilot, err = NewLuaPilot(DefaultPilotScript)
		}
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, WithPilot(pilot))
		closeFn = pilot.Close
	}

	return NewGameManager(cfg, round, opts...), closeFn, nil
}
