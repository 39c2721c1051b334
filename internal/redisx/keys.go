package redisx

import "time"

const (
	// Session pointer: session:{token} -> user JSON
	KeySession = "session:%s"

	// Cart per session: cart:{session} -> JSON array of cart lines
	KeyCart = "cart:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	// Sessions never expire; the pointer lives until logout deletes it.
	TTLSession time.Duration = 0
	TTLCart                  = 24 * time.Hour
	TTLDedup                 = 48 * time.Hour
)
