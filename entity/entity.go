// Package entity holds the coffee shop domain model. Every constructor and
// setter validates its input and leaves the receiver untouched on failure.
package entity

import (
	"coffeeshop_server/lib"
	"math"
	"time"
)

const (
	// UnassignedID marks an entity the store has not issued an id for yet.
	UnassignedID int64 = -1

	// DefaultBaristaID is the reserved barista orders fall back to.
	DefaultBaristaID int64 = 0
)

func validateID(id int64) error {
	if id < 0 {
		return lib.NoValidID(id)
	}
	return nil
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// normalizeTime drops the monotonic clock reading and keeps microsecond
// precision, which is what Postgres stores.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Round(0).Truncate(time.Microsecond)
}

// duplicateIDs returns every id occurring more than once, in first-repeat order.
func duplicateIDs(ids []int64) []int64 {
	seen := make(map[int64]int, len(ids))
	var dups []int64
	for _, id := range ids {
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}
