package audio

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cargo-clicker/internal/model"
	"github.com/jmylchreest/cargo-clicker/internal/sounds"
)

// fakeOutput drains everything it is given synchronously.
type fakeOutput struct {
	initErr    error
	inits      int
	closes     int
	sampleRate beep.SampleRate
	samples    int
}

func (o *fakeOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	o.inits++
	if o.initErr != nil {
		return o.initErr
	}
	o.sampleRate = sampleRate
	return nil
}

func (o *fakeOutput) Play(streamers ...beep.Streamer) {
	buf := make([][2]float64, 512)
	for _, s := range streamers {
		for {
			n, ok := s.Stream(buf)
			o.samples += n
			if !ok {
				break
			}
		}
	}
}

func (o *fakeOutput) Close() {
	o.closes++
}

// closeTracker records whether the wrapped asset was closed.
type closeTracker struct {
	*Asset
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return c.Asset.Close()
}

func trackedAsset(name string, data []byte) (*Asset, *closeTracker) {
	inner := NewBytesAsset(name, data)
	tracker := &closeTracker{Asset: inner}
	return &Asset{Name: name, Size: inner.Size, ReadSeekCloser: tracker}, tracker
}

func builtinWAV(t *testing.T) sounds.Sound {
	t.Helper()
	all := sounds.Builtin(model.Positive)
	require.NotEmpty(t, all)
	return all[0]
}

func decodedLen(t *testing.T, data []byte) int {
	t.Helper()
	buffer, err := decode(NewBytesAsset("x.wav", data))
	require.NoError(t, err)
	return buffer.Len()
}

func TestPlayer_PlaysWholeResponse(t *testing.T) {
	sound := builtinWAV(t)
	out := &fakeOutput{}
	p := NewPlayer(nil, WithOutput(out), WithSpeedRange(1, 1))

	asset, tracker := trackedAsset(sound.Name, sound.Data)
	require.NoError(t, p.Play(asset))

	assert.Equal(t, 1, out.inits)
	assert.Equal(t, 1, out.closes)
	assert.Equal(t, beep.SampleRate(22050), out.sampleRate)
	assert.True(t, tracker.closed, "asset should be closed after decoding")

	expected := decodedLen(t, sound.Data)
	assert.InDelta(t, expected, out.samples, float64(expected)*0.05)
}

func TestPlayer_SpeedShortensPlayback(t *testing.T) {
	sound := builtinWAV(t)
	out := &fakeOutput{}
	p := NewPlayer(nil, WithOutput(out), WithSpeedRange(2, 2))

	require.NoError(t, p.Play(NewBytesAsset(sound.Name, sound.Data)))

	expected := decodedLen(t, sound.Data) / 2
	assert.InDelta(t, expected, out.samples, float64(expected)*0.05)
}

func TestPlayer_Volume(t *testing.T) {
	sound := builtinWAV(t)

	for _, volume := range []float64{0, 0.5, 1, 3} {
		out := &fakeOutput{}
		p := NewPlayer(nil, WithOutput(out), WithVolume(volume))
		require.NoError(t, p.Play(NewBytesAsset(sound.Name, sound.Data)))
		assert.Positive(t, out.samples)
		assert.Equal(t, 1, out.closes)
	}
}

func TestPlayer_SniffsFormatWithoutExtension(t *testing.T) {
	sound := builtinWAV(t)
	out := &fakeOutput{}
	p := NewPlayer(nil, WithOutput(out))

	require.NoError(t, p.Play(NewBytesAsset("no-extension", sound.Data)))
	assert.Positive(t, out.samples)
}

func TestPlayer_DecodeFailureLeavesOutputUntouched(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayer(nil, WithOutput(out))

	asset, tracker := trackedAsset("broken.wav", []byte("definitely not audio"))
	err := p.Play(asset)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
	assert.Zero(t, out.inits)
	assert.Zero(t, out.closes)
	assert.True(t, tracker.closed)
}

func TestPlayer_UnsupportedFormat(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayer(nil, WithOutput(out))

	err := p.Play(NewBytesAsset("notes", []byte("just some text")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported audio format")
	assert.Zero(t, out.inits)
}

func TestPlayer_OutputInitFailure(t *testing.T) {
	sound := builtinWAV(t)
	out := &fakeOutput{initErr: errors.New("no device")}
	p := NewPlayer(nil, WithOutput(out))

	err := p.Play(NewBytesAsset(sound.Name, sound.Data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no device")
	assert.Zero(t, out.samples)
}

func TestPlayer_NilAsset(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayer(nil, WithOutput(out))

	assert.NoError(t, p.Play(nil))
	assert.Zero(t, out.inits)
}

func TestPlayer_SpeedWithinBand(t *testing.T) {
	p := NewPlayer(nil, WithSpeedRand(rand.New(rand.NewPCG(3, 4))))

	lo, hi := 2.0, 0.0
	for range 10000 {
		s := p.Speed()
		require.GreaterOrEqual(t, s, DefaultSpeedMin)
		require.Less(t, s, DefaultSpeedMax)
		lo, hi = min(lo, s), max(hi, s)
	}

	// The band should actually be explored, not pinned to one value.
	assert.Less(t, lo, 0.96)
	assert.Greater(t, hi, 1.04)
}

func TestWithSpeedRange_IgnoresInvalidBand(t *testing.T) {
	p := NewPlayer(nil, WithSpeedRange(1.2, 0.8))
	assert.Equal(t, DefaultSpeedMin, p.speedMin)
	assert.Equal(t, DefaultSpeedMax, p.speedMax)

	p = NewPlayer(nil, WithSpeedRange(0, 1))
	assert.Equal(t, DefaultSpeedMin, p.speedMin)
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name     string
		header   []byte
		expected string
	}{
		{"wav", []byte("RIFF\x00\x00\x00\x00WAVE"), ".wav"},
		{"riff but not wave", []byte("RIFF\x00\x00\x00\x00AVI "), ""},
		{"ogg", []byte("OggS\x00\x02"), ".ogg"},
		{"mp3 id3", []byte("ID3\x04\x00"), ".mp3"},
		{"mp3 frame sync", []byte{0xFF, 0xFB, 0x90, 0x00}, ".mp3"},
		{"text", []byte("hello world!"), ""},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sniff(tt.header))
		})
	}
}
