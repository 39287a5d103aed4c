package reservation

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewBookingID returns "BK" followed by the base36 millisecond timestamp and
// four random base36 characters, upper-cased.
func NewBookingID(now time.Time) string {
	var b strings.Builder
	b.WriteString("BK")
	b.WriteString(strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)))
	for range 4 {
		b.WriteByte(base36[rand.IntN(len(base36))])
	}
	return b.String()
}
