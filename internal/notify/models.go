package notify

import "time"

// TargetAll is the broadcast sentinel.
const TargetAll = "all"

type Notification struct {
	ID        string    `json:"id"`
	Target    string    `json:"target"` // user id, "guest", or "all"
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	Date      string    `json:"date"` // display form of CreatedAt
}

func DisplayStamp(t time.Time) string { return t.Format("2 Jan 2006 15:04") }

// Visible reports whether a notification shows up for the given viewer.
func Visible(n Notification, userID string) bool {
	return n.Target == TargetAll || n.Target == userID
}

// UnreadCount is a full linear scan of the visible set, recomputed per
// render.
func UnreadCount(list []Notification, userID string) int {
	var n int
	for _, notif := range list {
		if Visible(notif, userID) && !notif.Read {
			n++
		}
	}
	return n
}
