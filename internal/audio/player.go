package audio

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Default playback speed band. Each response plays at a speed drawn
// uniformly from [DefaultSpeedMin, DefaultSpeedMax).
const (
	DefaultSpeedMin = 0.95
	DefaultSpeedMax = 1.05
)

// bufferLatency is the speaker buffer length.
const bufferLatency = 100 * time.Millisecond

// Player decodes and plays one response at a time, blocking until done.
type Player struct {
	logger *slog.Logger
	output Output

	// Volume control (0.0 to 1.0)
	volume float64

	speedMin float64
	speedMax float64

	// randFloat returns a uniform float in [0, 1).
	randFloat func() float64
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithOutput replaces the default speaker output.
func WithOutput(output Output) PlayerOption {
	return func(p *Player) { p.output = output }
}

// WithVolume sets the playback volume, clamped to 0.0-1.0.
func WithVolume(volume float64) PlayerOption {
	return func(p *Player) { p.volume = min(max(volume, 0), 1) }
}

// WithSpeedRange sets the band playback speeds are drawn from.
// A band with min == max plays every response at exactly that speed.
func WithSpeedRange(lo, hi float64) PlayerOption {
	return func(p *Player) {
		if lo > 0 && hi >= lo {
			p.speedMin, p.speedMax = lo, hi
		}
	}
}

// WithSpeedRand sets the random source for the speed multiplier.
func WithSpeedRand(r *rand.Rand) PlayerOption {
	return func(p *Player) { p.randFloat = r.Float64 }
}

// NewPlayer creates a new audio player.
func NewPlayer(logger *slog.Logger, opts ...PlayerOption) *Player {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Player{
		logger:    logger,
		output:    &speakerOutput{},
		volume:    1.0,
		speedMin:  DefaultSpeedMin,
		speedMax:  DefaultSpeedMax,
		randFloat: rand.Float64,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Speed draws a playback speed multiplier from the configured band.
func (p *Player) Speed() float64 {
	return p.speedMin + p.randFloat()*(p.speedMax-p.speedMin)
}

// Play decodes asset and plays it, returning once playback has finished.
// The asset is closed before Play returns. A nil asset plays nothing.
func (p *Player) Play(asset *Asset) error {
	if asset == nil {
		return nil
	}

	buffer, err := decode(asset)
	if err != nil {
		return err
	}

	format := buffer.Format()
	if err := p.output.Init(format.SampleRate, format.SampleRate.N(bufferLatency)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	defer p.output.Close()

	speed := p.Speed()
	var streamer beep.Streamer = beep.ResampleRatio(4, speed, buffer.Streamer(0, buffer.Len()))

	if p.volume < 1.0 {
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     2,
			Volume:   math.Log2(p.volume),
			Silent:   p.volume == 0,
		}
	}

	p.logger.Debug("playing response",
		"name", asset.Name,
		"size", humanize.Bytes(uint64(max(asset.Size, 0))),
		"duration", format.SampleRate.D(buffer.Len()),
		"speed", speed,
	)

	done := make(chan struct{})
	p.output.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))
	<-done

	return nil
}

// decode reads the whole asset into a buffer and closes it.
func decode(asset *Asset) (*beep.Buffer, error) {
	defer func() { _ = asset.Close() }()

	kind, err := detectFormat(asset)
	if err != nil {
		return nil, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch kind {
	case ".wav":
		streamer, format, err = wav.Decode(asset)
	case ".ogg":
		streamer, format, err = vorbis.Decode(asset)
	case ".mp3":
		streamer, format, err = mp3.Decode(asset)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", asset.Name)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", asset.Name, err)
	}
	defer func() { _ = streamer.Close() }()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	return buffer, nil
}

// detectFormat returns the decoder extension for an asset. The file
// extension wins; otherwise the header is sniffed and the asset rewound.
func detectFormat(asset *Asset) (string, error) {
	ext := strings.ToLower(filepath.Ext(asset.Name))
	switch ext {
	case ".wav", ".ogg", ".oga", ".mp3":
		if ext == ".oga" {
			ext = ".ogg"
		}
		return ext, nil
	}

	header := make([]byte, 12)
	n, err := io.ReadFull(asset, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("failed to read %s: %w", asset.Name, err)
	}
	if _, err := asset.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind %s: %w", asset.Name, err)
	}

	return sniff(header[:n]), nil
}

func sniff(header []byte) string {
	switch {
	case len(header) >= 12 && string(header[:4]) == "RIFF" && string(header[8:12]) == "WAVE":
		return ".wav"
	case len(header) >= 4 && string(header[:4]) == "OggS":
		return ".ogg"
	case len(header) >= 3 && string(header[:3]) == "ID3":
		return ".mp3"
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		return ".mp3"
	default:
		return ""
	}
}
