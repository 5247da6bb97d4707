package domain

import "treasury_go/pkg/price"

// OrderType of an execution order.
type OrderType string

const (
	OrderTypeFOK    OrderType = "FOK"
	OrderTypeIOC    OrderType = "IOC"
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeStop   OrderType = "STOP"
)

// Venue is an execution destination.
type Venue string

const (
	VenueBrokertec Venue = "BROKERTEC"
	VenueESpeed    Venue = "ESPEED"
	VenueCME       Venue = "CME"
)

// Venues is the rotation order used by the execution algo.
var Venues = []Venue{VenueBrokertec, VenueESpeed, VenueCME}

// ExecutionOrder is an order sent to a venue. Key is the product id.
type ExecutionOrder struct {
	Product         Product     `json:"product"`
	Side            PricingSide `json:"side"`
	OrderID         string      `json:"order_id"`
	Type            OrderType   `json:"type"`
	Price           price.Value `json:"price"`
	VisibleQuantity int64       `json:"visible_quantity"`
	HiddenQuantity  int64       `json:"hidden_quantity"`
	ParentOrderID   string      `json:"parent_order_id"`
	IsChildOrder    bool        `json:"is_child_order"`
}

func (o ExecutionOrder) Key() string {
	return o.Product.ID
}

// TotalQuantity is visible + hidden.
func (o ExecutionOrder) TotalQuantity() int64 {
	return o.VisibleQuantity + o.HiddenQuantity
}

// AlgoExecution wraps an execution order with the venue it is routed to.
type AlgoExecution struct {
	Order ExecutionOrder `json:"order"`
	Venue Venue          `json:"venue"`
}

func (a AlgoExecution) Key() string {
	return a.Order.Key()
}
