package audio

import (
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Output is the audio device a Player writes to.
type Output interface {
	// Init opens the device at the given sample rate.
	Init(sampleRate beep.SampleRate, bufferSize int) error
	// Play queues streamers for playback and returns immediately.
	Play(s ...beep.Streamer)
	// Close releases the device.
	Close()
}

// speakerOutput plays through the default output device.
type speakerOutput struct {
	// drain is how long queued samples take to leave the device buffer.
	drain time.Duration
}

func (o *speakerOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	o.drain = sampleRate.D(bufferSize)
	return speaker.Init(sampleRate, bufferSize)
}

func (o *speakerOutput) Play(s ...beep.Streamer) {
	speaker.Play(s...)
}

func (o *speakerOutput) Close() {
	// The final buffer is still in flight when the last streamer ends.
	time.Sleep(o.drain)
	speaker.Close()
}
