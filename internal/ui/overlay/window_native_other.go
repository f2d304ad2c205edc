//go:build !windows

package overlay

// Topmost and per-window alpha have no portable fyne API; the window manager
// decides stacking on these platforms.
func (overlay *Window) applyNativeStyle(alwaysOnTop bool, alpha uint8) {}
