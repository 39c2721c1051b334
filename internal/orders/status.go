package orders

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Monotonic progression; cancellation only before shipping.
var validNext = map[Status]map[Status]bool{
	StatusPending:    {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusShipped: true, StatusCancelled: true},
	StatusShipped:    {StatusDelivered: true},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), true
	}
	return "", false
}
