package stopwatch

import "fmt"

// Format renders a millisecond count for display.
//
// Under a minute the layout is S.FF (hundredths, truncated). From one minute
// on it is M:SS.D, widening to MM:SS.D once minutes reach ten.
func Format(millis int64) string {
	if millis < 0 {
		millis = 0
	}

	fraction := millis % 1000
	seconds := (millis / 1000) % 60
	minutes := millis / 60000

	if minutes < 1 {
		hundredths := fraction / 10
		if fraction <= 10 {
			hundredths = 0
		}
		return fmt.Sprintf("%d.%02d", seconds, hundredths)
	}

	return fmt.Sprintf("%d:%02d.%d", minutes, seconds, fraction/100)
}
