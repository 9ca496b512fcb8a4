package store

import "github.com/oklog/ulid/v2"

// NewID returns a ULID string. IDs minted by one process sort in creation
// order, including within the same millisecond.
func NewID() string {
	return ulid.Make().String()
}
