// Package coord normalizes geographic coordinates for cache keys and
// deterministic fallback seeds.
package coord

import (
	"fmt"
	"hash/fnv"
)

// Key rounds coordinates to two decimals (~1 km) so nearby lookups share
// cache entries and fallback output.
func Key(lat, lon float64) string {
	return fmt.Sprintf("%.2f,%.2f", lat, lon)
}

// Seed hashes the rounded coordinates into a stable PRNG seed.
func Seed(lat, lon float64) int64 {
	h := fnv.New64a()
	h.Write([]byte(Key(lat, lon)))
	return int64(h.Sum64())
}
