package orders

import (
	"regexp"
	"strconv"
	"time"
)

const IDPrefix = "BN"

var nonDigit = regexp.MustCompile(`\D`)

// DeriveID builds the order reference from the last 4 digits of the
// normalized phone number and the last 4 digits of the millisecond
// timestamp. Collisions are possible; the repo retries the insert with a
// fresh timestamp suffix.
func DeriveID(phone string, at time.Time) string {
	digits := nonDigit.ReplaceAllString(phone, "")
	millis := strconv.FormatInt(at.UnixMilli(), 10)
	return IDPrefix + "-" + lastN(digits, 4) + "-" + lastN(millis, 4)
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
