package audio

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/jmylchreest/cargo-clicker/internal/model"
	"github.com/jmylchreest/cargo-clicker/internal/sounds"
)

// Asset is a single response ready to be decoded.
// Name is used to pick a decoder by extension.
type Asset struct {
	Name string
	Size int64
	io.ReadSeekCloser
}

type bytesAsset struct {
	*bytes.Reader
}

func (bytesAsset) Close() error { return nil }

// NewBytesAsset wraps in-memory data as an Asset.
func NewBytesAsset(name string, data []byte) *Asset {
	return &Asset{
		Name:           name,
		Size:           int64(len(data)),
		ReadSeekCloser: bytesAsset{bytes.NewReader(data)},
	}
}

// Selector picks a response for an outcome, either from a directory laid out
// as <dir>/Positive and <dir>/Negative or from the built-in set.
type Selector struct {
	logger *slog.Logger
	dir    string

	// intN returns a uniform int in [0, n).
	intN func(n int) int

	// builtin returns the compiled-in responses for an outcome.
	builtin func(model.Outcome) []sounds.Sound
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithRand sets the random source used to pick among candidates.
func WithRand(r *rand.Rand) SelectorOption {
	return func(s *Selector) { s.intN = r.IntN }
}

// WithBuiltin replaces the compiled-in response set.
func WithBuiltin(fn func(model.Outcome) []sounds.Sound) SelectorOption {
	return func(s *Selector) { s.builtin = fn }
}

// NewSelector creates a Selector. An empty dir selects the built-in set.
func NewSelector(dir string, logger *slog.Logger, opts ...SelectorOption) *Selector {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Selector{
		logger:  logger,
		dir:     dir,
		intN:    rand.IntN,
		builtin: sounds.Builtin,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select returns a uniformly chosen response for the outcome, or nil when
// there is nothing to play. A response directory that cannot be listed is
// an error.
func (s *Selector) Select(outcome model.Outcome) (*Asset, error) {
	if s.dir != "" {
		return s.selectFromDir(outcome)
	}
	return s.selectBuiltin(outcome), nil
}

func (s *Selector) selectFromDir(outcome model.Outcome) (*Asset, error) {
	dir := filepath.Join(s.dir, outcome.String())

	// Listed on every call; the directory may change between runs.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		candidates = append(candidates, filepath.Join(dir, entry.Name()))
	}

	if len(candidates) == 0 {
		s.logger.Debug("no responses in directory", "outcome", outcome, "dir", dir)
		return nil, nil
	}

	path := candidates[s.intN(len(candidates))]

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open response: %w", err)
	}

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	s.logger.Debug("selected response", "outcome", outcome, "path", path, "candidates", len(candidates))
	return &Asset{Name: path, Size: size, ReadSeekCloser: f}, nil
}

func (s *Selector) selectBuiltin(outcome model.Outcome) *Asset {
	candidates := s.builtin(outcome)
	if len(candidates) == 0 {
		s.logger.Debug("no built-in responses", "outcome", outcome)
		return nil
	}

	sound := candidates[s.intN(len(candidates))]
	s.logger.Debug("selected built-in response", "outcome", outcome, "name", sound.Name, "candidates", len(candidates))
	return NewBytesAsset(sound.Name, sound.Data)
}
