// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/domain/catalog"
)

// ErrInvalidQuantity is returned when the quantity is out of bounds
var ErrInvalidQuantity = fmt.Errorf("quantity must be between %d and %d", MinQuantity, MaxQuantity)

// Service handles cart business logic for both guests and
// authenticated users. Guest carts live in the session store,
// authenticated carts in the database.
type Service struct {
	db       *gorm.DB
	sessions SessionStore
	config   *config.Config
}

// NewService creates a new cart service backed by Redis sessions
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:       db,
		sessions: NewRedisSessionStore(redisClient),
		config:   cfg,
	}
}

// NewServiceWithSessions creates a cart service with a custom session store
func NewServiceWithSessions(db *gorm.DB, sessions SessionStore, cfg *config.Config) *Service {
	return &Service{
		db:       db,
		sessions: sessions,
		config:   cfg,
	}
}

// Get returns the resolved cart for a user or guest session
func (s *Service) Get(ctx context.Context, userID *uint, sessionID string) (*Cart, error) {
	if userID != nil {
		return s.getUserCart(*userID)
	}
	return s.getGuestCart(ctx, sessionID)
}

// Add puts a product in the cart. With override the quantity is set,
// otherwise it is added to the existing line.
func (s *Service) Add(ctx context.Context, userID *uint, sessionID string, req *AddRequest) (*Summary, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < MinQuantity || quantity > MaxQuantity {
		return nil, ErrInvalidQuantity
	}

	product, err := s.getProduct(req.ProductID)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		if err := s.addUserItem(*userID, product, quantity, req.Override); err != nil {
			return nil, err
		}
	} else {
		if err := s.addGuestItem(ctx, sessionID, product, quantity, req.Override); err != nil {
			return nil, err
		}
	}

	return s.summary(ctx, userID, sessionID, fmt.Sprintf("%s added to cart", product.Name))
}

// Remove deletes a cart line. Removing an absent product is a no-op.
func (s *Service) Remove(ctx context.Context, userID *uint, sessionID string, productID uint) (*Summary, error) {
	if userID != nil {
		if err := s.db.
			Where("user_id = ? AND product_id = ?", *userID, productID).
			Delete(&CartItem{}).Error; err != nil {
			return nil, fmt.Errorf("failed to remove cart item: %w", err)
		}
	} else {
		sessionCart, err := s.sessions.Get(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		key := strconv.FormatUint(uint64(productID), 10)
		if _, ok := sessionCart[key]; ok {
			delete(sessionCart, key)
			if err := s.sessions.Save(ctx, sessionID, sessionCart); err != nil {
				return nil, err
			}
		}
	}

	return s.summary(ctx, userID, sessionID, "item removed from cart")
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context, userID *uint, sessionID string) error {
	if userID != nil {
		if err := s.db.Where("user_id = ?", *userID).Delete(&CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// Count returns the total number of units in the cart
func (s *Service) Count(ctx context.Context, userID *uint, sessionID string) (int, error) {
	cart, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return 0, err
	}
	return cart.TotalItems, nil
}

// MergeSessionIntoUser folds a guest cart into the user's database
// cart on login, then discards the session cart. Products that have
// gone missing or unavailable are skipped silently.
func (s *Service) MergeSessionIntoUser(ctx context.Context, userID uint, sessionID string) error {
	sessionCart, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if len(sessionCart) == 0 {
		return nil
	}

	for key, line := range sessionCart {
		productID, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			continue
		}
		product, err := s.getProduct(uint(productID))
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				continue
			}
			return err
		}
		if err := s.addUserItem(userID, product, line.Quantity, false); err != nil {
			return err
		}
	}

	return s.sessions.Delete(ctx, sessionID)
}

// MirrorUserIntoSession copies the user's database cart into the
// session store on logout so the cart stays visible to the browser
func (s *Service) MirrorUserIntoSession(ctx context.Context, userID uint, sessionID string) error {
	items, err := s.userItems(userID)
	if err != nil {
		return err
	}

	sessionCart := SessionCart{}
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		key := strconv.FormatUint(uint64(item.ProductID), 10)
		sessionCart[key] = SessionCartItem{
			Quantity: item.Quantity,
			Price:    item.Product.Price.StringFixed(2),
		}
	}

	if len(sessionCart) == 0 {
		return s.sessions.Delete(ctx, sessionID)
	}
	return s.sessions.Save(ctx, sessionID, sessionCart)
}

func (s *Service) getProduct(productID uint) (*catalog.Product, error) {
	var product catalog.Product
	if err := s.db.Where("id = ? AND is_available = ?", productID, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (s *Service) addUserItem(userID uint, product *catalog.Product, quantity int, override bool) error {
	var item CartItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&item).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to get cart item: %w", err)
		}
		item = CartItem{
			UserID:    userID,
			ProductID: product.ID,
			Quantity:  quantity,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to create cart item: %w", err)
		}
		return nil
	}

	if override {
		item.Quantity = quantity
	} else {
		item.Quantity += quantity
	}
	if item.Quantity > MaxQuantity {
		item.Quantity = MaxQuantity
	}
	if err := s.db.Save(&item).Error; err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	return nil
}

func (s *Service) addGuestItem(ctx context.Context, sessionID string, product *catalog.Product, quantity int, override bool) error {
	sessionCart, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	key := strconv.FormatUint(uint64(product.ID), 10)
	line, exists := sessionCart[key]
	if !exists || override {
		line = SessionCartItem{
			Quantity: quantity,
			Price:    product.Price.StringFixed(2),
		}
	} else {
		line.Quantity += quantity
	}
	if line.Quantity > MaxQuantity {
		line.Quantity = MaxQuantity
	}
	sessionCart[key] = line

	return s.sessions.Save(ctx, sessionID, sessionCart)
}

func (s *Service) userItems(userID uint) ([]CartItem, error) {
	var items []CartItem
	if err := s.db.
		Preload("Product").
		Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}

func (s *Service) getUserCart(userID uint) (*Cart, error) {
	items, err := s.userItems(userID)
	if err != nil {
		return nil, err
	}

	cart := &Cart{Lines: []Line{}, TotalPrice: decimal.Zero}
	for _, item := range items {
		if item.Product == nil || !item.Product.IsAvailable {
			continue
		}
		subtotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		cart.Lines = append(cart.Lines, Line{
			Product:  item.Product,
			Quantity: item.Quantity,
			Price:    item.Product.Price,
			Subtotal: subtotal,
		})
		cart.TotalItems += item.Quantity
		cart.TotalPrice = cart.TotalPrice.Add(subtotal)
	}
	return cart, nil
}

func (s *Service) getGuestCart(ctx context.Context, sessionID string) (*Cart, error) {
	sessionCart, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart := &Cart{Lines: []Line{}, TotalPrice: decimal.Zero}
	if len(sessionCart) == 0 {
		return cart, nil
	}

	ids := make([]uint, 0, len(sessionCart))
	for key := range sessionCart {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}

	var products []catalog.Product
	if err := s.db.
		Preload("Category").
		Where("id IN ? AND is_available = ?", ids, true).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart products: %w", err)
	}

	byID := make(map[uint]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for key, line := range sessionCart {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			continue
		}
		product, ok := byID[uint(id)]
		if !ok {
			continue
		}

		price, err := decimal.NewFromString(line.Price)
		if err != nil {
			price = product.Price
		}
		subtotal := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		cart.Lines = append(cart.Lines, Line{
			Product:  product,
			Quantity: line.Quantity,
			Price:    price,
			Subtotal: subtotal,
		})
		cart.TotalItems += line.Quantity
		cart.TotalPrice = cart.TotalPrice.Add(subtotal)
	}

	sort.Slice(cart.Lines, func(i, j int) bool {
		return cart.Lines[i].Product.ID < cart.Lines[j].Product.ID
	})

	return cart, nil
}

func (s *Service) summary(ctx context.Context, userID *uint, sessionID, message string) (*Summary, error) {
	cart, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Success:    true,
		Message:    message,
		TotalItems: cart.TotalItems,
		TotalPrice: cart.TotalPrice,
	}, nil
}
