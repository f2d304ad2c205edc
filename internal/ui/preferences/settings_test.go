package preferences

import (
	"image/color"
	"testing"
	"time"

	"duotimer/internal/ui/hotkeys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	settings := DefaultSettings()

	require.NoError(t, settings.Validate())
	config := settings.ControllerConfig()
	assert.False(t, config.StartOnChange)
	assert.Equal(t, 20*time.Second, config.LastSecondsWindow)
}

func TestParseColor(t *testing.T) {
	value, err := ParseColor("#00B300")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0, G: 0xB3, B: 0, A: 255}, value)

	value, err = ParseColor("ff4040")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xFF, G: 0x40, B: 0x40, A: 255}, value)

	for _, bad := range []string{"", "#FFF", "#GG0000", "#0000000"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrInvalidColor, bad)
	}
}

func TestFormatColorRoundTrip(t *testing.T) {
	value, err := ParseColor("#12AB9f")
	require.NoError(t, err)
	assert.Equal(t, "#12AB9F", FormatColor(value))
}

func TestValidateReportsFields(t *testing.T) {
	settings := DefaultSettings()
	settings.Colors.Selected = "gold"
	assert.ErrorIs(t, settings.Validate(), ErrInvalidColor)

	settings = DefaultSettings()
	settings.Width = 701
	assert.ErrorIs(t, settings.Validate(), ErrInvalidSize)

	settings = DefaultSettings()
	settings.Height = 24
	assert.ErrorIs(t, settings.Validate(), ErrInvalidSize)

	settings = DefaultSettings()
	settings.Keys.Second = settings.Keys.First
	assert.ErrorIs(t, settings.Validate(), hotkeys.ErrDuplicateKey)
}
