package domain

import (
	"errors"
	"math"
	"time"
)

// MaxQuantity bounds the quantity of one line.
const MaxQuantity = 1000

// Status enumerates order progression.
type Status string

const (
	StatusPlaced   Status = "PLACED"
	StatusConfirm  Status = "CONFIRM"
	StatusCanceled Status = "CANCELED"
)

var (
	ErrEmptyOrder        = errors.New("order must contain at least one line")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrQuantityTooLarge  = errors.New("quantity exceeds the per-line maximum")
	ErrAmountOverflow    = errors.New("order amount exceeds the representable range")
	ErrInvalidMenuID     = errors.New("menu id must be greater than zero")
	ErrInvalidMemberID   = errors.New("member id must be greater than zero")
	ErrInvalidStoreID    = errors.New("store id must be greater than zero")
	ErrAlreadyCanceled   = errors.New("order is already canceled")
	ErrInvalidTransition = errors.New("order status transition is not allowed")
)

// LineOption is the snapshot of a menu option selected on a line.
type LineOption struct {
	OptionID int64
	Name     string
	Price    int64
}

// Line is one menu of an order with the menu and option prices captured at order time.
type Line struct {
	ID        int64
	MenuID    int64
	MenuName  string
	MenuPrice int64
	Quantity  int
	Options   []LineOption
}

// NewLine validates a fully formed order line.
func NewLine(menuID int64, menuName string, menuPrice int64, quantity int, options []LineOption) (Line, error) {
	if menuID <= 0 {
		return Line{}, ErrInvalidMenuID
	}
	if err := checkQuantity(quantity); err != nil {
		return Line{}, err
	}
	line := Line{
		MenuID:    menuID,
		MenuName:  menuName,
		MenuPrice: menuPrice,
		Quantity:  quantity,
		Options:   append([]LineOption(nil), options...),
	}
	if _, err := line.CheckedSubtotal(); err != nil {
		return Line{}, err
	}
	return line, nil
}

// Subtotal is menu price times quantity plus every selected option price once.
// Lines built through NewLine never overflow; use CheckedSubtotal otherwise.
func (l Line) Subtotal() int64 {
	total, _ := l.CheckedSubtotal()
	return total
}

// CheckedSubtotal is Subtotal failing with ErrAmountOverflow instead of wrapping.
func (l Line) CheckedSubtotal() (int64, error) {
	total, ok := mulInt64(l.MenuPrice, int64(l.Quantity))
	if !ok {
		return 0, ErrAmountOverflow
	}
	for _, option := range l.Options {
		if total, ok = addInt64(total, option.Price); !ok {
			return 0, ErrAmountOverflow
		}
	}
	return total, nil
}

func checkQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > MaxQuantity {
		return ErrQuantityTooLarge
	}
	return nil
}

// Order is the purchase aggregate of one member at one store.
type Order struct {
	ID         int64
	MemberID   int64
	StoreID    int64
	TotalPrice int64
	Status     Status
	OrderedAt  time.Time
	Lines      []Line

	events []Event
}

// NewOrder builds a placed order from its lines. The total is derived from the lines.
func NewOrder(memberID, storeID int64, lines []Line, orderedAt time.Time) (*Order, error) {
	if memberID <= 0 {
		return nil, ErrInvalidMemberID
	}
	if storeID <= 0 {
		return nil, ErrInvalidStoreID
	}
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	order := &Order{
		MemberID:  memberID,
		StoreID:   storeID,
		Status:    StatusPlaced,
		OrderedAt: orderedAt,
		Lines:     make([]Line, 0, len(lines)),
	}
	for _, line := range lines {
		if err := checkQuantity(line.Quantity); err != nil {
			return nil, err
		}
		line.Options = append([]LineOption(nil), line.Options...)
		order.Lines = append(order.Lines, line)
	}
	total, err := ComputeTotal(order.Lines)
	if err != nil {
		return nil, err
	}
	order.TotalPrice = total
	order.record(OrderPlaced{
		BaseEvent:  BaseEvent{Timestamp: orderedAt},
		MemberID:   memberID,
		StoreID:    storeID,
		TotalPrice: order.TotalPrice,
	})
	return order, nil
}

// ComputeTotal sums the subtotals of lines.
func ComputeTotal(lines []Line) (int64, error) {
	var total int64
	for _, line := range lines {
		subtotal, err := line.CheckedSubtotal()
		if err != nil {
			return 0, err
		}
		var ok bool
		if total, ok = addInt64(total, subtotal); !ok {
			return 0, ErrAmountOverflow
		}
	}
	return total, nil
}

func addInt64(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	if product/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return product, true
}

// PlacedBy reports whether memberID placed the order.
func (o *Order) PlacedBy(memberID int64) bool {
	return o != nil && o.MemberID == memberID
}

// PlacedAt reports whether the order was placed at storeID.
func (o *Order) PlacedAt(storeID int64) bool {
	return o != nil && o.StoreID == storeID
}

// Confirm moves a placed order to CONFIRM.
func (o *Order) Confirm() error {
	if o.Status != StatusPlaced {
		return ErrInvalidTransition
	}
	o.Status = StatusConfirm
	return nil
}

// Cancel moves any non-canceled order to CANCELED.
func (o *Order) Cancel(at time.Time) error {
	if o.Status == StatusCanceled {
		return ErrAlreadyCanceled
	}
	previous := o.Status
	o.Status = StatusCanceled
	o.record(OrderCanceled{
		BaseEvent:      BaseEvent{Timestamp: at},
		OrderID:        o.ID,
		StoreID:        o.StoreID,
		MemberID:       o.MemberID,
		PreviousStatus: previous,
	})
	return nil
}

// Events returns the events recorded since the last ClearEvents.
// OrderPlaced picks up the id assigned on first save.
func (o *Order) Events() []Event {
	events := make([]Event, 0, len(o.events))
	for _, event := range o.events {
		if placed, ok := event.(OrderPlaced); ok && placed.OrderID == 0 {
			placed.OrderID = o.ID
			event = placed
		}
		events = append(events, event)
	}
	return events
}

func (o *Order) ClearEvents() {
	o.events = nil
}

// Clone deep-copies the order without its pending events.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.events = nil
	clone.Lines = make([]Line, len(o.Lines))
	for i, line := range o.Lines {
		line.Options = append([]LineOption(nil), line.Options...)
		clone.Lines[i] = line
	}
	return &clone
}

func (o *Order) record(event Event) {
	o.events = append(o.events, event)
}

// IsValidStatus reports whether status is a known order status.
func IsValidStatus(status Status) bool {
	switch status {
	case StatusPlaced, StatusConfirm, StatusCanceled:
		return true
	default:
		return false
	}
}
