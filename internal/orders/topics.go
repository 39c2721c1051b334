package orders

const (
	TopicOrderPlaced = "storefront.order.placed"
	TopicOrderStatus = "storefront.order.status"
)

// Partition key = order id so events for one order stay ordered.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
