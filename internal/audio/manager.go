package audio

import (
	"log/slog"

	"github.com/jmylchreest/cargo-clicker/internal/config"
	"github.com/jmylchreest/cargo-clicker/internal/model"
)

// Manager plays the response for an outcome.
type Manager struct {
	logger   *slog.Logger
	selector *Selector
	player   *Player
}

// NewManager creates a Manager from an explicit selector and player.
func NewManager(selector *Selector, player *Player, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		logger:   logger,
		selector: selector,
		player:   player,
	}
}

// NewManagerFromConfig builds a Manager from the loaded configuration.
// The environment's response directory overrides the configured one.
func NewManagerFromConfig(cfg *config.Config, env config.Env, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	selector := NewSelector(cfg.ResponseDir(env), logger)
	player := NewPlayer(logger,
		WithVolume(float64(cfg.Audio.Volume)/100.0),
		WithSpeedRange(cfg.Audio.SpeedMin, cfg.Audio.SpeedMax),
	)

	return NewManager(selector, player, logger)
}

// PlayOutcome selects a response for outcome and plays it to completion.
// Having nothing to play is not an error.
func (m *Manager) PlayOutcome(outcome model.Outcome) error {
	asset, err := m.selector.Select(outcome)
	if err != nil {
		return err
	}

	if asset == nil {
		m.logger.Debug("nothing to play", "outcome", outcome)
		return nil
	}

	return m.player.Play(asset)
}
