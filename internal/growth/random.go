package growth

import "math/rand/v2"

// Salt for the stream that decides how many children a node sprouts, kept
// apart from the stream that shapes the node itself.
const splitSalt = 0x5eed5eed5eed5eed

// ornamentSlot offsets ornament child indexes away from branch indexes.
const ornamentSlot = 1 << 16

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	z := x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// rootKey is the identity of the trunk of a plant grown from seed.
func rootKey(seed int64) uint64 {
	return splitmix64(uint64(seed))
}

// childKey derives a node identity from its parent, generation and index.
// Identities never depend on derivation order.
func childKey(parent uint64, generation, index int) uint64 {
	return splitmix64(parent ^ splitmix64(uint64(generation)<<32|uint64(uint32(index))))
}

func streamFor(seed int64, key uint64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), key))
}

func uniform(r *rand.Rand, s span) float64 {
	if s.hi <= s.lo {
		return s.lo
	}
	return s.lo + r.Float64()*(s.hi-s.lo)
}

func between(r *rand.Rand, s intSpan) int {
	if s.hi <= s.lo {
		return s.lo
	}
	return s.lo + r.IntN(s.hi-s.lo+1)
}

func side(r *rand.Rand) float64 {
	if r.Float64() < 0.5 {
		return -1
	}
	return 1
}
