package chime

import (
	"errors"
	"testing"

	"duotimer/internal/core/duo"

	"github.com/stretchr/testify/assert"
)

type countingPlayer struct {
	plays int
}

func (player *countingPlayer) Play() {
	player.plays++
}

func frameWith(highlight duo.Highlight) duo.Frame {
	var frame duo.Frame
	frame.Timers[duo.TimerSecond] = duo.TimerView{ID: duo.TimerSecond, Highlight: highlight}
	return frame
}

func TestWatcherPlaysOnEntryOnly(t *testing.T) {
	player := &countingPlayer{}
	watcher := NewWatcher(player, true)

	assert.False(t, watcher.Observe(frameWith(duo.HighlightSelected)))
	assert.True(t, watcher.Observe(frameWith(duo.HighlightLastSeconds)))
	assert.False(t, watcher.Observe(frameWith(duo.HighlightLastSeconds)))
	assert.False(t, watcher.Observe(frameWith(duo.HighlightNormal)))
	assert.True(t, watcher.Observe(frameWith(duo.HighlightLastSeconds)))

	assert.Equal(t, 2, player.plays)
}

func TestDisabledWatcherTracksButStaysSilent(t *testing.T) {
	player := &countingPlayer{}
	watcher := NewWatcher(player, false)

	assert.False(t, watcher.Observe(frameWith(duo.HighlightLastSeconds)))
	watcher.SetEnabled(true)
	assert.False(t, watcher.Observe(frameWith(duo.HighlightLastSeconds)))

	assert.Equal(t, 0, player.plays)
}

func TestNilPlayerNeverPlays(t *testing.T) {
	watcher := NewWatcher(nil, true)
	watcher.SetEnabled(true)

	assert.False(t, watcher.Observe(frameWith(duo.HighlightLastSeconds)))
}

func TestSilentSpeakerPlayIsNoop(t *testing.T) {
	player := &Speaker{}
	player.Play()
	player.Close()
}

func TestToneStreamsBoundedSamples(t *testing.T) {
	generator := newTone(sampleRate, toneHz)
	samples := make([][2]float64, 512)

	n, ok := generator.Stream(samples)

	assert.True(t, ok)
	assert.Equal(t, len(samples), n)
	assert.Equal(t, 0.0, samples[0][0])
	for _, sample := range samples {
		assert.LessOrEqual(t, sample[0], 0.25)
		assert.GreaterOrEqual(t, sample[0], -0.25)
		assert.Equal(t, sample[0], sample[1])
	}
	assert.NoError(t, generator.Err())
}

func TestDeviceOpensOnDemand(t *testing.T) {
	opens := 0
	fail := true
	device := &Device{open: func() (*Speaker, error) {
		opens++
		if fail {
			return &Speaker{}, errors.New("no audio device")
		}
		return &Speaker{}, nil
	}}

	device.Play()
	assert.Equal(t, 0, opens)
	assert.False(t, device.Opened())

	assert.Error(t, device.Open())
	assert.False(t, device.Opened())

	fail = false
	assert.NoError(t, device.Open())
	assert.NoError(t, device.Open())
	assert.Equal(t, 2, opens)
	assert.True(t, device.Opened())

	device.Play()
	device.Close()
	assert.False(t, device.Opened())
}

func TestNewDeviceDoesNotOpen(t *testing.T) {
	device := NewDevice()

	assert.False(t, device.Opened())
	device.Play()
	device.Close()
}
