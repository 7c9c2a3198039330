package types

// OrderItemInput selects a menu, its quantity and the options added to it.
type OrderItemInput struct {
	MenuID    int64
	Quantity  int
	OptionIDs []int64
}

// CreateOrderInput is the cart submitted by a member. TotalPrice is the client's claim
// and is checked against the price computed from stored menus and options.
type CreateOrderInput struct {
	StoreID    int64
	TotalPrice int64
	Items      []OrderItemInput
}

// OrderIdentifier addresses an order through the store it was placed at.
type OrderIdentifier struct {
	StoreID int64
	OrderID int64
}
