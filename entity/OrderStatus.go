package entity

type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusPreparing      OrderStatus = "Preparing"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

var orderStatuses = []OrderStatus{
	StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled,
}

// ParseOrderStatus matches the exact wire value.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range orderStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Terminal states never transition again.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CarriesAgent reports whether an order in this status may reference a delivery agent.
func (s OrderStatus) CarriesAgent() bool {
	return s == StatusOutForDelivery || s == StatusDelivered
}
