package id

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// GenerateRef returns a prefixed, lexically sortable reference such as
// PAY_01J8ZC4R9NT5V2. Used for the account reference sent to the payment
// provider, where sortability makes support lookups easier.
func GenerateRef(prefix string) string {
	u := ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0))
	return prefix + "_" + u.String()
}
