// internal/domain/catalog/review_service.go
package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrAlreadyReviewed is returned when a user reviews the same product twice
var ErrAlreadyReviewed = errors.New("you have already reviewed this product")

// ReviewService handles product review logic
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Create adds a review and recomputes the product rating
func (s *ReviewService) Create(userID, productID uint, req *CreateReviewRequest) (*Review, error) {
	var product Product
	if err := s.db.Where("id = ? AND is_available = ?", productID, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	var count int64
	if err := s.db.Model(&Review{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if count > 0 {
		return nil, ErrAlreadyReviewed
	}

	review := &Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		return recomputeRating(tx, productID)
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// ListByProduct returns the reviews for a product, newest first
func (s *ReviewService) ListByProduct(productID uint) ([]Review, error) {
	var reviews []Review
	if err := s.db.
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// recomputeRating sets the product rating to the review average rounded
// to one decimal place, falling back to 5.0 with no reviews
func recomputeRating(tx *gorm.DB, productID uint) error {
	var avg decimal.NullDecimal
	if err := tx.Model(&Review{}).
		Where("product_id = ?", productID).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return fmt.Errorf("failed to average reviews: %w", err)
	}

	rating := decimal.NewFromInt(5)
	if avg.Valid {
		rating = avg.Decimal.Round(1)
	}

	if err := tx.Model(&Product{}).
		Where("id = ?", productID).
		Update("rating", rating).Error; err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}
	return nil
}
