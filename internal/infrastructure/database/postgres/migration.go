// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/domain/cart"
	"github.com/soulmedev/AromeNoir/internal/domain/catalog"
	"github.com/soulmedev/AromeNoir/internal/domain/order"
	"github.com/soulmedev/AromeNoir/internal/domain/user"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// User domain
		&user.User{},

		// Catalog domain
		&catalog.Category{},
		&catalog.Product{},
		&catalog.Review{},
		&catalog.Favorite{},

		// Cart domain
		&cart.CartItem{},

		// Order domain
		&order.Order{},
		&order.OrderItem{},
		&order.DeliveryAddress{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",

		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_available ON products(category_id, is_available)",
		"CREATE INDEX IF NOT EXISTS idx_products_scent_available ON products(scent, is_available)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_product_created ON reviews(product_id, created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",

		// Address indexes
		"CREATE INDEX IF NOT EXISTS idx_delivery_addresses_user_default ON delivery_addresses(user_id, is_default)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// SeedInitialData seeds development data when the catalog is empty
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&catalog.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding initial catalog data...")

	categories := []catalog.Category{
		{Name: "Women's Fragrances", Slug: "womens", Description: "Perfumes for her", IsActive: true},
		{Name: "Men's Fragrances", Slug: "mens", Description: "Perfumes for him", IsActive: true},
		{Name: "Unisex", Slug: "unisex", Description: "Shared favorites", IsActive: true},
	}
	for i := range categories {
		if err := m.db.Create(&categories[i]).Error; err != nil {
			return fmt.Errorf("failed to seed category: %w", err)
		}
	}

	products := []catalog.Product{
		{
			CategoryID:   categories[0].ID,
			Name:         "Velvet Iris",
			Slug:         "velvet-iris",
			Brand:        "AromeNoir",
			Description:  "Powdery iris over a warm musk base.",
			Scent:        catalog.ScentFloral,
			VolumeML:     50,
			Price:        decimal.RequireFromString("1850.00"),
			Rating:       decimal.RequireFromString("5.0"),
			IsAvailable:  true,
			IsBestseller: true,
		},
		{
			CategoryID:  categories[1].ID,
			Name:        "Cedar Noir",
			Slug:        "cedar-noir",
			Brand:       "AromeNoir",
			Description: "Dry cedarwood sharpened with black pepper.",
			Scent:       catalog.ScentWoody,
			VolumeML:    100,
			Price:       decimal.RequireFromString("2240.00"),
			OldPrice:    decimal.RequireFromString("2600.00"),
			Rating:      decimal.RequireFromString("5.0"),
			IsAvailable: true,
			IsExclusive: true,
		},
		{
			CategoryID:  categories[2].ID,
			Name:        "Amber Dusk",
			Slug:        "amber-dusk",
			Brand:       "AromeNoir",
			Description: "Resinous amber with a vanilla trail.",
			Scent:       catalog.ScentAmber,
			VolumeML:    50,
			Price:       decimal.RequireFromString("1990.00"),
			Rating:      decimal.RequireFromString("5.0"),
			IsAvailable: true,
			IsLimited:   true,
		},
		{
			CategoryID:  categories[2].ID,
			Name:        "Sea Salt Vetiver",
			Slug:        "sea-salt-vetiver",
			Brand:       "AromeNoir",
			Description: "Mineral freshness rooted in green vetiver.",
			Scent:       catalog.ScentFresh,
			VolumeML:    100,
			Price:       decimal.RequireFromString("2120.00"),
			Rating:      decimal.RequireFromString("5.0"),
			IsAvailable: true,
		},
	}
	for i := range products {
		if err := m.db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product: %w", err)
		}
	}

	log.Println("Initial catalog data seeded")
	return nil
}
