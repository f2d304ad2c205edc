package overlay

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
)

func linearMeasure(size float32) fyne.Size {
	return fyne.NewSize(size*4, size*1.5)
}

func TestFitTextSize(t *testing.T) {
	tests := []struct {
		name   string
		bounds fyne.Size
		want   float32
	}{
		{name: "roomy", bounds: fyne.NewSize(1000, 1000), want: 100},
		{name: "width bound", bounds: fyne.NewSize(150, 1000), want: 37},
		{name: "height bound", bounds: fyne.NewSize(1000, 60), want: 40},
		{name: "tiny", bounds: fyne.NewSize(1, 1), want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fitTextSize(tc.bounds, linearMeasure))
		})
	}
}
