// Package store is the persistence gateway for the eligibility and
// assessment engine.
package store

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a uniqueness-constrained insert loses to
	// an existing row.
	ErrDuplicate = errors.New("duplicate")
)

const uniqueViolation = pq.ErrorCode("23505")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

func toInts(ids pq.Int64Array) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		out = append(out, int(id))
	}
	return out
}

func toInt64s(ids []int) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}
