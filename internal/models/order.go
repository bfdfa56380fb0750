package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID string  `json:"product_id" yaml:"product_id"`
	Name      string  `json:"name" yaml:"name"`
	Price     float64 `json:"price" yaml:"price"`
	Quantity  int     `json:"quantity" yaml:"quantity"`
	Image     string  `json:"image" yaml:"image"`
}

type Address struct {
	Street  string `json:"street" yaml:"street"`
	City    string `json:"city" yaml:"city"`
	State   string `json:"state" yaml:"state"`
	ZipCode string `json:"zip_code" yaml:"zip_code"`
	Country string `json:"country" yaml:"country"`
}

type Order struct {
	ID              string      `json:"id" yaml:"id"`
	UserID          string      `json:"user_id" yaml:"user_id"`
	UserName        string      `json:"user_name" yaml:"user_name"`
	Status          OrderStatus `json:"status" yaml:"status"`
	Items           []OrderItem `json:"items" yaml:"items"`
	ShippingAddress Address     `json:"shipping_address" yaml:"shipping_address"`
	PaymentMethod   string      `json:"payment_method" yaml:"payment_method"`
	Total           float64     `json:"total" yaml:"total"`
	Tax             float64     `json:"tax" yaml:"tax"`
	Shipping        float64     `json:"shipping" yaml:"shipping"`
	GrandTotal      float64     `json:"grand_total" yaml:"grand_total"`
	CreatedAt       time.Time   `json:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" yaml:"updated_at"`
}

func (o Order) Clone() Order {
	o.Items = append([]OrderItem(nil), o.Items...)
	return o
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type OrderStats struct {
	Total      int `json:"total"`
	Delivered  int `json:"delivered"`
	Processing int `json:"processing"`
	Pending    int `json:"pending"`
}
