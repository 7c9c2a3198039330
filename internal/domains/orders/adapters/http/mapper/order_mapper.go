package mapper

import (
	"time"

	types "github.com/Apurer/food-order-api/internal/domains/orders/application/types"
	"github.com/Apurer/food-order-api/internal/domains/orders/domain"
	"github.com/Apurer/food-order-api/internal/shared/pagination"
)

// OrderItemRequest selects one menu of the cart.
type OrderItemRequest struct {
	MenuID    int64   `json:"menuId" binding:"required,gt=0"`
	Quantity  int     `json:"quantity" binding:"required,gt=0,lte=1000"`
	OptionIDs []int64 `json:"optionIds"`
}

// CreateOrderRequest is the cart posted by a member. TotalPrice is what the client displayed.
type CreateOrderRequest struct {
	TotalPrice *int64             `json:"totalPrice" binding:"required"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type OrderLineOption struct {
	OptionID int64  `json:"optionId"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
}

type OrderLine struct {
	MenuID    int64             `json:"menuId"`
	MenuName  string            `json:"menuName"`
	MenuPrice int64             `json:"menuPrice"`
	Quantity  int               `json:"quantity"`
	Options   []OrderLineOption `json:"options"`
	Subtotal  int64             `json:"subtotal"`
}

// Order is the HTTP representation of an order and its lines.
type Order struct {
	ID         int64       `json:"id"`
	StoreID    int64       `json:"storeId"`
	StoreName  string      `json:"storeName,omitempty"`
	MemberID   int64       `json:"memberId"`
	Status     string      `json:"status"`
	TotalPrice int64       `json:"totalPrice"`
	OrderedAt  time.Time   `json:"orderedAt"`
	Lines      []OrderLine `json:"lines"`
}

type OrderPage struct {
	Items      []Order `json:"items"`
	Page       int     `json:"page"`
	Size       int     `json:"size"`
	TotalItems int64   `json:"totalItems"`
	TotalPages int     `json:"totalPages"`
}

type ConfirmedCount struct {
	StoreID   int64  `json:"storeId"`
	StoreName string `json:"storeName"`
	Count     int64  `json:"count"`
}

func ToCreateOrderInput(storeID int64, req CreateOrderRequest) types.CreateOrderInput {
	input := types.CreateOrderInput{StoreID: storeID, Items: make([]types.OrderItemInput, 0, len(req.Items))}
	if req.TotalPrice != nil {
		input.TotalPrice = *req.TotalPrice
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, types.OrderItemInput{
			MenuID:    item.MenuID,
			Quantity:  item.Quantity,
			OptionIDs: append([]int64(nil), item.OptionIDs...),
		})
	}
	return input
}

func FromDetail(detail *types.OrderDetail) Order {
	if detail == nil {
		return Order{Lines: []OrderLine{}}
	}
	order := FromDomain(detail.Order)
	order.StoreName = detail.StoreName
	return order
}

func FromDomain(order *domain.Order) Order {
	if order == nil {
		return Order{Lines: []OrderLine{}}
	}
	lines := make([]OrderLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		options := make([]OrderLineOption, 0, len(line.Options))
		for _, option := range line.Options {
			options = append(options, OrderLineOption{OptionID: option.OptionID, Name: option.Name, Price: option.Price})
		}
		lines = append(lines, OrderLine{
			MenuID:    line.MenuID,
			MenuName:  line.MenuName,
			MenuPrice: line.MenuPrice,
			Quantity:  line.Quantity,
			Options:   options,
			Subtotal:  line.Subtotal(),
		})
	}
	return Order{
		ID:         order.ID,
		StoreID:    order.StoreID,
		MemberID:   order.MemberID,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice,
		OrderedAt:  order.OrderedAt.UTC(),
		Lines:      lines,
	}
}

func FromPage(page *types.OrderPage) OrderPage {
	if page == nil {
		return OrderPage{Items: []Order{}}
	}
	mapped := pagination.Map(*page, FromDomain)
	return OrderPage{
		Items:      mapped.Items,
		Page:       mapped.Page,
		Size:       mapped.Size,
		TotalItems: mapped.TotalItems,
		TotalPages: mapped.TotalPages(),
	}
}

func FromCount(count *types.ConfirmedCount) ConfirmedCount {
	if count == nil {
		return ConfirmedCount{}
	}
	return ConfirmedCount{StoreID: count.StoreID, StoreName: count.StoreName, Count: count.Count}
}
