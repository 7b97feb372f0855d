package glade

// PositionHash mixes a 2D cell coordinate into a 64-bit value using the
// splitmix64 finalizer. Procedural placement (decorations, ambient particle
// phases, placeholder styling) derives everything from this one function so
// the "same cell, same result" property holds across runs and platforms.
func PositionHash(x, y int64) uint64 {
	const (
		k1 uint64 = 0x9E3779B97F4A7C15 // splitmix64 golden gamma
		k2 uint64 = 0xC4CEB9FE1A85EC53 // splitmix64 step 2
		k3 uint64 = 0xBF58476D1CE4E5B9 // splitmix64 step 1
	)
	h := uint64(x)*k1 ^ uint64(y)*k2
	h ^= h >> 33
	h *= k3
	h ^= h >> 27
	h *= k2
	h ^= h >> 31
	return h
}

// HashFloat maps a hash value onto [0, 1). Uses the top 53 bits so the full
// float64 mantissa is exercised.
func HashFloat(h uint64) float64 {
	return float64(h>>11) / (1 << 53)
}

// hashPick selects an index in [0, n) from a hash value. The hash is shifted
// first so that picks do not correlate with HashFloat gates on the same hash.
func hashPick(h uint64, n int) int {
	return int((h >> 32) % uint64(n))
}
