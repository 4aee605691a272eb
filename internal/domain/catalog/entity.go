// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Scent family of a perfume
type Scent string

const (
	ScentFloral   Scent = "floral"
	ScentWoody    Scent = "woody"
	ScentFresh    Scent = "fresh"
	ScentAmber    Scent = "amber"
	ScentOriental Scent = "oriental"
)

// IsValid checks whether the scent is a known family
func (s Scent) IsValid() bool {
	switch s {
	case ScentFloral, ScentWoody, ScentFresh, ScentAmber, ScentOriental:
		return true
	}
	return false
}

// SortOption controls catalog result ordering
type SortOption string

const (
	SortNewest    SortOption = "newest"
	SortPriceAsc  SortOption = "price_asc"
	SortPriceDesc SortOption = "price_desc"
	SortName      SortOption = "name"
	SortRating    SortOption = "rating"
)

// Category represents a product category
type Category struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Product represents a perfume in the catalog
type Product struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	CategoryID   uint            `json:"category_id" gorm:"not null;index"`
	Name         string          `json:"name" gorm:"not null"`
	Slug         string          `json:"slug" gorm:"uniqueIndex;not null"`
	Brand        string          `json:"brand"`
	Description  string          `json:"description"`
	Scent        Scent           `json:"scent" gorm:"type:varchar(20);index"`
	VolumeML     int             `json:"volume_ml"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	OldPrice     decimal.Decimal `json:"old_price" gorm:"type:decimal(10,2);default:0"`
	Rating       decimal.Decimal `json:"rating" gorm:"type:decimal(2,1);default:5.0"`
	ImageURL     string          `json:"image_url"`
	IsAvailable  bool            `json:"is_available" gorm:"index"`
	IsBestseller bool            `json:"is_bestseller" gorm:"default:false"`
	IsExclusive  bool            `json:"is_exclusive" gorm:"default:false"`
	IsLimited    bool            `json:"is_limited" gorm:"default:false"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `json:"-" gorm:"index"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Reviews  []Review  `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Badge returns the display badge with bestseller taking priority
// over exclusive, then limited
func (p *Product) Badge() string {
	switch {
	case p.IsBestseller:
		return "bestseller"
	case p.IsExclusive:
		return "exclusive"
	case p.IsLimited:
		return "limited"
	}
	return ""
}

// HasDiscount reports whether the product has a crossed-out old price
func (p *Product) HasDiscount() bool {
	return p.OldPrice.GreaterThan(p.Price)
}

// Review represents a customer review of a product
type Review struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ProductID uint           `json:"product_id" gorm:"not null;index"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Rating    int            `json:"rating" gorm:"not null"`
	Comment   string         `json:"comment"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}

// Favorite links a user to a product they marked as favorite
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_favorites_user_product"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_favorites_user_product"`
	CreatedAt time.Time `json:"created_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for the Favorite model
func (Favorite) TableName() string {
	return "favorites"
}

// ListRequest captures catalog filtering, sorting and pagination
type ListRequest struct {
	CategorySlug string     `form:"category"`
	Scent        Scent      `form:"scent"`
	MinPrice     string     `form:"min_price"`
	MaxPrice     string     `form:"max_price"`
	Badge        string     `form:"badge"`
	Search       string     `form:"q"`
	Sort         SortOption `form:"sort"`
	Page         int        `form:"page"`
	Limit        int        `form:"limit"`
}

// ListResponse is the paginated catalog listing
type ListResponse struct {
	Products   []Product   `json:"products"`
	Pagination *Pagination `json:"pagination"`
	PriceRange *PriceRange `json:"price_range"`
}

// Pagination holds paging metadata
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PriceRange holds the catalog-wide price bounds for the price filter
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// CreateReviewRequest represents a review submission
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}
