// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/domain/catalog"
)

const (
	// MinQuantity is the smallest allowed quantity per line
	MinQuantity = 1
	// MaxQuantity is the largest allowed quantity per line
	MaxQuantity = 20
)

// CartItem represents a cart line for an authenticated user
type CartItem struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_items_user_product"`
	ProductID uint           `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_items_user_product"`
	Quantity  int            `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Product *catalog.Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for the CartItem model
func (CartItem) TableName() string {
	return "cart_items"
}

// SessionCartItem is one line of a guest cart. The price is stored as
// a string snapshot taken when the line was added.
type SessionCartItem struct {
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// SessionCart maps product IDs (as decimal strings) to guest cart lines
type SessionCart map[string]SessionCartItem

// Line is a resolved cart line used in cart views
type Line struct {
	Product  *catalog.Product `json:"product"`
	Quantity int              `json:"quantity"`
	Price    decimal.Decimal  `json:"price"`
	Subtotal decimal.Decimal  `json:"subtotal"`
}

// Cart is the resolved cart view shared by both storage modes
type Cart struct {
	Lines      []Line          `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Summary is the mutation response payload
type Summary struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// AddRequest represents an add-to-cart request
type AddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
	Override  bool `json:"override"`
}

// RemoveRequest represents a remove-from-cart request
type RemoveRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}
