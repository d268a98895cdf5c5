package helpers

import "math"

// Round2 rounds to two decimal places, matching how the dashboard displays
// latencies, megabytes and rates.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BytesToMB converts a byte count to megabytes (MiB), rounded to two decimals.
func BytesToMB(b uint64) float64 {
	return Round2(float64(b) / 1048576)
}

// BytesToKbps converts a byte delta over elapsed seconds to kilobits per
// second, rounded to two decimals.
func BytesToKbps(delta uint64, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return Round2(float64(delta) * 8 / 1024 / seconds)
}
