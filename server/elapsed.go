package server

import (
	"fmt"
	"math"
	"time"
)

// FormatElapsed picks a display unit: µs below a millisecond, ms below a
// second, seconds otherwise. value is rounded for that unit.
func FormatElapsed(d time.Duration) (value float64, unit, display string) {
	secs := d.Seconds()
	switch {
	case secs < 0.001:
		value, unit = round(secs*1e6, 2), "µs"
		display = fmt.Sprintf("%.2fµs", secs*1e6)
	case secs < 1:
		value, unit = round(secs*1e3, 3), "ms"
		display = fmt.Sprintf("%.3fms", secs*1e3)
	default:
		value, unit = round(secs, 4), "s"
		display = fmt.Sprintf("%.4fs", secs)
	}

	return value, unit, display
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))

	return math.Round(v*p) / p
}
