package orders

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// FormatOrderNumber builds the display code from its two inputs: the last
// six digits of a millisecond timestamp plus a three digit suffix. The code
// is short enough to read over the phone; uniqueness is enforced by the
// orders table, and callers regenerate on a collision.
func FormatOrderNumber(now time.Time, suffix int) string {
	ms := now.UnixMilli() % 1_000_000
	return fmt.Sprintf("VY%06d%03d", ms, suffix%1000)
}

// NewOrderNumber returns a fresh candidate order number.
func NewOrderNumber(now time.Time) string {
	return FormatOrderNumber(now, rand.IntN(1000))
}
