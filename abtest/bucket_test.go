package abtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash_KnownVectors(t *testing.T) {
	tests := []struct {
		id   string
		want uint32
	}{
		{"user-123", 2713655292},
		{"", 1364076727},
		{"a", 1485495528},
		{"abc", 2859854335},
		{"hello", 3142237357},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Hash(tt.id))
		})
	}
}

func TestBucket_Golden(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{"user-123", 6318},
		{"", 3175},
		{"a", 3458},
		{"abc", 6658},
		{"hello", 7316},
		{"customer@example.com", 4770},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Bucket(tt.id))
		})
	}
}

func TestBucket_DeterministicAndInRange(t *testing.T) {
	ids := []string{"", "x", "user-1", "user-2", "ümlaut", "a much longer identifier with spaces", "🙂"}

	for _, id := range ids {
		first := Bucket(id)
		second := Bucket(id)

		assert.Equal(t, first, second, "bucket for %q changed between calls", id)
		assert.GreaterOrEqual(t, first, 0)
		assert.Less(t, first, Buckets)
	}
}
