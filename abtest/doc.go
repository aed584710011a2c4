// Package abtest assigns users to stable A/B testing buckets.
//
// A user identifier is hashed with 32-bit MurmurHash3 and a fixed seed, then
// scaled onto the range [0, Buckets). The same identifier always lands in the
// same bucket, in this package and in every other Prepr SDK that uses the same
// hash and seed, so experiment variants stay consistent across requests,
// sessions and platforms.
//
// Basic Usage:
//
//	bucket := abtest.Bucket("user-123") // 6318
//	req.Header.Set("Prepr-ABTesting", strconv.Itoa(bucket))
package abtest
