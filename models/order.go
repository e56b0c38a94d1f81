package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order represents a complete customer order
type Order struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	VisitorID       uuid.UUID       `json:"visitor_id" gorm:"type:uuid;not null;index"`
	OrderNumber     string          `json:"order_number" gorm:"not null;uniqueIndex"`
	CustomerName    string          `json:"customer_name" gorm:"not null"`
	CustomerEmail   string          `json:"customer_email" gorm:"not null;index"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:ship_"`
	Subtotal        decimal.Decimal `json:"subtotal" gorm:"type:numeric(12,2);not null"`
	Tax             decimal.Decimal `json:"tax" gorm:"type:numeric(12,2);not null"`
	ShippingCost    decimal.Decimal `json:"shipping_cost" gorm:"type:numeric(12,2);not null"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	Status          string          `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CustomerNotes   *string         `json:"customer_notes,omitempty"`
	AdminNotes      *string         `json:"admin_notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	ShippedAt       *time.Time      `json:"shipped_at,omitempty"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem represents an individual product in an order
type OrderItem struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `json:"product_id" gorm:"type:uuid;not null"`
	ProductName string          `json:"product_name" gorm:"not null"`
	ProductSlug string          `json:"product_slug" gorm:"not null"`
	ImageURL    string          `json:"image_url" gorm:"not null;default:''"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null;check:quantity > 0"`
	Subtotal    decimal.Decimal `json:"subtotal" gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (OrderItem) TableName() string {
	return "order_items"
}

type ShippingAddress struct {
	FullName   string `json:"full_name" binding:"required" gorm:"column:full_name"`
	Street     string `json:"street" binding:"required" gorm:"column:street"`
	City       string `json:"city" binding:"required" gorm:"column:city"`
	PostalCode string `json:"postal_code" binding:"required" gorm:"column:postal_code"`
	Country    string `json:"country" binding:"required" gorm:"column:country"`
}

// OrderHistoryResponse for list view
type OrderHistoryResponse struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateOrderRequest for checkout
type CreateOrderRequest struct {
	CustomerName    string           `json:"customer_name" binding:"required"`
	CustomerEmail   string           `json:"customer_email" binding:"required,email"`
	ShippingAddress ShippingAddress  `json:"shipping_address" binding:"required"`
	Items           []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	CustomerNotes   *string          `json:"customer_notes,omitempty"`
}

// OrderItemInput for cart items
type OrderItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateOrderStatusRequest struct {
	Status     string  `json:"status" binding:"required,oneof=pending processing shipped completed cancelled"`
	AdminNotes *string `json:"admin_notes,omitempty"` // required if status=cancelled
}

type UpdateOrderStatusResponse struct {
	ID          string  `json:"id"`
	OrderNumber string  `json:"order_number"`
	Status      string  `json:"status"`
	AdminNotes  *string `json:"admin_notes,omitempty"`
}
