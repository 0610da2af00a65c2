// Package data bundles a small heart rate dataset so the dashboard has
// something to show when no document is configured.
package data

import _ "embed"

//go:embed heartRateData.json
var sample []byte

// Sample returns a copy of the embedded dataset document.
func Sample() []byte {
	out := make([]byte, len(sample))
	copy(out, sample)
	return out
}
