package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs are lexicographically sortable
// by creation time, which makes order identifiers unique per process and
// roughly monotonic without a shared counter.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
