package chime

import (
	"fmt"
	"math"
	"sync"
	"time"

	"duotimer/internal/core/duo"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneHz     = 880
	toneLength = 80 * time.Millisecond
)

// Player plays a short alert.
type Player interface {
	Play()
}

// Speaker plays a sine tone through the default audio device.
type Speaker struct {
	mu    sync.Mutex
	ready bool
}

// NewSpeaker opens the audio device. On failure the returned Speaker is
// silent and the error explains why.
func NewSpeaker() (*Speaker, error) {
	player := &Speaker{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return player, fmt.Errorf("init speaker: %w", err)
	}
	player.ready = true
	return player, nil
}

// Play queues one tone. It never blocks on audio output.
func (player *Speaker) Play() {
	player.mu.Lock()
	ready := player.ready
	player.mu.Unlock()
	if !ready {
		return
	}

	speaker.Play(beep.Take(sampleRate.N(toneLength), newTone(sampleRate, toneHz)))
}

// tone is a sine wave with a short fade-in to avoid a click.
type tone struct {
	rate beep.SampleRate
	freq float64
	pos  int
}

func newTone(rate beep.SampleRate, freq float64) *tone {
	return &tone{rate: rate, freq: freq}
}

func (generator *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(generator.pos) / float64(generator.rate)
		envelope := math.Min(t/0.005, 1)
		sample := 0.25 * envelope * math.Sin(2*math.Pi*generator.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		generator.pos++
	}
	return len(samples), true
}

func (generator *tone) Err() error {
	return nil
}

// Close releases the audio device.
func (player *Speaker) Close() {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.ready {
		speaker.Close()
		player.ready = false
	}
}

// Device opens the speaker on demand. Play is silent until Open succeeds.
type Device struct {
	mu      sync.Mutex
	open    func() (*Speaker, error)
	speaker *Speaker
}

// NewDevice returns a Device that has not touched the audio hardware.
func NewDevice() *Device {
	return &Device{open: NewSpeaker}
}

// Open initialises the speaker once. A failed open is retried on the next
// call.
func (device *Device) Open() error {
	device.mu.Lock()
	defer device.mu.Unlock()
	if device.speaker != nil {
		return nil
	}
	player, err := device.open()
	if err != nil {
		return err
	}
	device.speaker = player
	return nil
}

// Opened reports whether the speaker is initialised.
func (device *Device) Opened() bool {
	device.mu.Lock()
	defer device.mu.Unlock()
	return device.speaker != nil
}

// Play plays a tone if the speaker is open.
func (device *Device) Play() {
	device.mu.Lock()
	player := device.speaker
	device.mu.Unlock()
	if player != nil {
		player.Play()
	}
}

// Close releases the speaker if it was opened.
func (device *Device) Close() {
	device.mu.Lock()
	player := device.speaker
	device.speaker = nil
	device.mu.Unlock()
	if player != nil {
		player.Close()
	}
}

// Watcher plays once each time the second timer enters the last-seconds
// window.
type Watcher struct {
	player  Player
	enabled bool
	inside  bool
}

// NewWatcher creates a Watcher. A nil player disables it.
func NewWatcher(player Player, enabled bool) *Watcher {
	return &Watcher{player: player, enabled: enabled && player != nil}
}

// SetEnabled turns the alert on or off.
func (watcher *Watcher) SetEnabled(enabled bool) {
	watcher.enabled = enabled && watcher.player != nil
}

// Observe inspects a frame and reports whether the alert played.
func (watcher *Watcher) Observe(frame duo.Frame) bool {
	inside := frame.Timers[duo.TimerSecond].Highlight == duo.HighlightLastSeconds
	entered := inside && !watcher.inside
	watcher.inside = inside
	if !entered || !watcher.enabled {
		return false
	}
	watcher.player.Play()
	return true
}
