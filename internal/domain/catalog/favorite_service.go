// internal/domain/catalog/favorite_service.go
package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// FavoriteService handles user favorites
type FavoriteService struct {
	db *gorm.DB
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Toggle adds the product to the user's favorites, or removes it if
// already present. Returns true when the product ends up favorited.
func (s *FavoriteService) Toggle(userID, productID uint) (bool, error) {
	if _, err := s.productExists(productID); err != nil {
		return false, err
	}

	var favorite Favorite
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&favorite).Error
	if err == nil {
		if err := s.db.Delete(&favorite).Error; err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	favorite = Favorite{UserID: userID, ProductID: productID}
	if err := s.db.Create(&favorite).Error; err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return true, nil
}

// List returns the user's favorited products, newest first
func (s *FavoriteService) List(userID uint) ([]Favorite, error) {
	var favorites []Favorite
	if err := s.db.
		Preload("Product").
		Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

// IsFavorite reports whether the user has favorited the product
func (s *FavoriteService) IsFavorite(userID, productID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

func (s *FavoriteService) productExists(productID uint) (*Product, error) {
	var product Product
	if err := s.db.Where("id = ? AND is_available = ?", productID, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}
