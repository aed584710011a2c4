package abtest

import (
	"math"

	"github.com/spaolacci/murmur3"
)

const (
	// Seed is the MurmurHash3 seed shared by all Prepr SDKs.
	Seed uint32 = 1

	// Buckets is the number of A/B testing buckets. Bucket values are in [0, Buckets).
	Buckets = 10000
)

// Hash returns the 32-bit MurmurHash3 (x86 variant) of the UTF-8 bytes of id.
func Hash(id string) uint32 {
	return murmur3.Sum32WithSeed([]byte(id), Seed)
}

// Bucket maps id to an integer in [0, Buckets).
// The hash is normalized to the unit interval and truncated, never rounded.
func Bucket(id string) int {
	ratio := float64(Hash(id)) / math.Exp2(32)
	return int(ratio * Buckets)
}
