// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status represents the order lifecycle state
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// IsValid checks whether the status is a known lifecycle state
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order represents a customer order
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	OrderNumber     string          `json:"order_number" gorm:"uniqueIndex;not null"`
	UserID          *uint           `json:"user_id" gorm:"index"`
	SessionID       string          `json:"-" gorm:"index"`
	Status          Status          `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	FullName        string          `json:"full_name" gorm:"not null"`
	Email           string          `json:"email" gorm:"not null"`
	Phone           string          `json:"phone"`
	City            string          `json:"city"`
	Address         string          `json:"address"`
	PostalCode      string          `json:"postal_code"`
	Comment         string          `json:"comment"`
	TotalPrice      decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Paid            bool            `json:"paid" gorm:"default:false"`
	PaymentIntentID string          `json:"-" gorm:"index"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `json:"-" gorm:"index"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a snapshot of one cart line at checkout time
type OrderItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"not null;index"`
	ProductID   uint            `json:"product_id" gorm:"not null"`
	ProductName string          `json:"product_name" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns price times quantity for the line
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// DeliveryAddress is a saved delivery address of a user. At most one
// address per user is the default.
type DeliveryAddress struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"not null;index"`
	FullName   string         `json:"full_name" gorm:"not null"`
	Phone      string         `json:"phone"`
	City       string         `json:"city" gorm:"not null"`
	Address    string         `json:"address" gorm:"not null"`
	PostalCode string         `json:"postal_code"`
	IsDefault  bool           `json:"is_default" gorm:"default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for the DeliveryAddress model
func (DeliveryAddress) TableName() string {
	return "delivery_addresses"
}

// CreateOrderRequest represents a checkout submission
type CreateOrderRequest struct {
	FullName   string `json:"full_name" binding:"required,max=200"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"max=30"`
	City       string `json:"city" binding:"max=120"`
	Address    string `json:"address" binding:"max=300"`
	PostalCode string `json:"postal_code" binding:"max=20"`
	Comment    string `json:"comment" binding:"max=1000"`

	// TotalPrice overrides the computed total when set, e.g. when a
	// discount was applied upstream
	TotalPrice *decimal.Decimal `json:"total_price"`
}

// AddressRequest represents a delivery address create or update
type AddressRequest struct {
	FullName   string `json:"full_name" binding:"required,max=200"`
	Phone      string `json:"phone" binding:"max=30"`
	City       string `json:"city" binding:"required,max=120"`
	Address    string `json:"address" binding:"required,max=300"`
	PostalCode string `json:"postal_code" binding:"max=20"`
	IsDefault  bool   `json:"is_default"`
}

// UpdateStatusRequest represents a status change request
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}
