// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
)

// ErrProductNotFound is returned when a product does not exist or is unavailable
var ErrProductNotFound = errors.New("product not found")

// ErrCategoryNotFound is returned when a category does not exist
var ErrCategoryNotFound = errors.New("category not found")

const (
	defaultPageLimit = 12
	maxPageLimit     = 60
	featuredCount    = 6
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// List returns a filtered, sorted, paginated slice of the catalog
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = defaultPageLimit
	}
	if req.Limit > maxPageLimit {
		req.Limit = maxPageLimit
	}

	query := s.db.Model(&Product{}).Where("is_available = ?", true)

	if req.CategorySlug != "" {
		var category Category
		if err := s.db.Where("slug = ? AND is_active = ?", req.CategorySlug, true).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to find category: %w", err)
		}
		query = query.Where("category_id = ?", category.ID)
	}

	if req.Scent != "" {
		if !req.Scent.IsValid() {
			return nil, fmt.Errorf("unknown scent family: %s", req.Scent)
		}
		query = query.Where("scent = ?", req.Scent)
	}

	if req.MinPrice != "" {
		min, err := decimal.NewFromString(req.MinPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid min_price: %w", err)
		}
		query = query.Where("price >= ?", min)
	}
	if req.MaxPrice != "" {
		max, err := decimal.NewFromString(req.MaxPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid max_price: %w", err)
		}
		query = query.Where("price <= ?", max)
	}

	switch req.Badge {
	case "":
	case "bestseller":
		query = query.Where("is_bestseller = ?", true)
	case "exclusive":
		query = query.Where("is_exclusive = ?", true)
	case "limited":
		query = query.Where("is_limited = ?", true)
	default:
		return nil, fmt.Errorf("unknown badge: %s", req.Badge)
	}

	if req.Search != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(req.Search)) + "%"
		query = query.
			Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Where("LOWER(products.name) LIKE ? OR LOWER(products.brand) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(categories.name) LIKE ?",
				term, term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []Product
	offset := (req.Page - 1) * req.Limit
	if err := query.
		Preload("Category").
		Order(buildOrderClause(req.Sort)).
		Offset(offset).
		Limit(req.Limit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	priceRange, err := s.PriceBounds()
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &ListResponse{
		Products: products,
		Pagination: &Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
		PriceRange: priceRange,
	}, nil
}

// buildOrderClause maps a sort option to a whitelisted ORDER BY clause
func buildOrderClause(sort SortOption) string {
	switch sort {
	case SortPriceAsc:
		return "products.price ASC"
	case SortPriceDesc:
		return "products.price DESC"
	case SortName:
		return "products.name ASC"
	case SortRating:
		return "products.rating DESC, products.created_at DESC"
	case SortNewest:
		fallthrough
	default:
		return "products.created_at DESC"
	}
}

// PriceBounds returns the lowest and highest price over available products
func (s *Service) PriceBounds() (*PriceRange, error) {
	var bounds struct {
		Min decimal.NullDecimal
		Max decimal.NullDecimal
	}
	if err := s.db.Model(&Product{}).
		Where("is_available = ?", true).
		Select("MIN(price) as min, MAX(price) as max").
		Scan(&bounds).Error; err != nil {
		return nil, fmt.Errorf("failed to compute price bounds: %w", err)
	}

	result := &PriceRange{}
	if bounds.Min.Valid {
		result.Min = bounds.Min.Decimal
	}
	if bounds.Max.Valid {
		result.Max = bounds.Max.Decimal
	}
	return result, nil
}

// GetBySlug returns an available product with its category and reviews
func (s *Service) GetBySlug(slug string) (*Product, error) {
	var product Product
	if err := s.db.
		Preload("Category").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("slug = ? AND is_available = ?", slug, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// GetByID returns an available product by ID
func (s *Service) GetByID(productID uint) (*Product, error) {
	var product Product
	if err := s.db.
		Where("id = ? AND is_available = ?", productID, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// Featured returns the newest available products for the home page
func (s *Service) Featured() ([]Product, error) {
	var products []Product
	if err := s.db.
		Preload("Category").
		Where("is_available = ?", true).
		Order("created_at DESC").
		Limit(featuredCount).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}
	return products, nil
}

// Categories returns all active categories ordered by name
func (s *Service) Categories() ([]Category, error) {
	var categories []Category
	if err := s.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
