package overlay

import "fyne.io/fyne/v2"

const (
	maxTextSize = float32(100)
	minTextSize = float32(1)

	// sampleText is the widest layout Format produces below 100 minutes.
	sampleText = "00:00.0"
)

// fitTextSize returns the largest text size, stepping down from maxTextSize,
// whose measured extent fits within bounds.
func fitTextSize(bounds fyne.Size, measure func(size float32) fyne.Size) float32 {
	for size := maxTextSize; size > minTextSize; size-- {
		extent := measure(size)
		if extent.Width <= bounds.Width && extent.Height <= bounds.Height {
			return size
		}
	}
	return minTextSize
}

func measureSample(style fyne.TextStyle) func(float32) fyne.Size {
	return func(size float32) fyne.Size {
		return fyne.MeasureText(sampleText, size, style)
	}
}
