package id

import (
	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs sort by creation time and are
// monotonic within a process, so keys minted in one burst keep their order.
func New() string {
	return ulid.Make().String()
}

// Valid reports whether s is a well-formed ULID as produced by New.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
