// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/domain/cart"
)

var (
	// ErrOrderNotFound is returned when the order does not exist
	ErrOrderNotFound = errors.New("order not found")
	// ErrEmptyCart is returned when checking out with an empty cart
	ErrEmptyCart = errors.New("cart is empty")
	// ErrAccessDenied is returned when the order belongs to another user
	ErrAccessDenied = errors.New("order belongs to another user")
	// ErrInvalidTransition is returned for a disallowed status change
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Service handles order business logic
type Service struct {
	db        *gorm.DB
	carts     *cart.Service
	lastOrder LastOrderStore
	config    *config.Config
}

// NewService creates a new order service backed by Redis for guest
// order lookups
func NewService(db *gorm.DB, carts *cart.Service, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:        db,
		carts:     carts,
		lastOrder: NewRedisLastOrderStore(redisClient),
		config:    cfg,
	}
}

// NewServiceWithStores creates an order service with a custom last
// order store
func NewServiceWithStores(db *gorm.DB, carts *cart.Service, lastOrder LastOrderStore, cfg *config.Config) *Service {
	return &Service{
		db:        db,
		carts:     carts,
		lastOrder: lastOrder,
		config:    cfg,
	}
}

// Create turns the current cart into an order. Line prices are
// snapshotted, the cart is cleared and the order is remembered for
// the session.
func (s *Service) Create(ctx context.Context, userID *uint, sessionID string, req *CreateOrderRequest) (*Order, error) {
	currentCart, err := s.carts.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if len(currentCart.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := currentCart.TotalPrice
	if req.TotalPrice != nil {
		total = *req.TotalPrice
	}

	order := &Order{
		UserID:     userID,
		SessionID:  sessionID,
		Status:     StatusPending,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		City:       req.City,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		Comment:    req.Comment,
		TotalPrice: total,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		order.OrderNumber = generateOrderNumber(order.ID)
		if err := tx.Model(order).Update("order_number", order.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to set order number: %w", err)
		}

		for _, line := range currentCart.Lines {
			item := OrderItem{
				OrderID:     order.ID,
				ProductID:   line.Product.ID,
				ProductName: line.Product.Name,
				Price:       line.Price,
				Quantity:    line.Quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			order.Items = append(order.Items, item)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	if err := s.lastOrder.Set(ctx, sessionID, order.ID); err != nil {
		return nil, err
	}

	return order, nil
}

// generateOrderNumber builds a number like ORD-20260830-00042 from
// the order's row ID so concurrent checkouts never collide
func generateOrderNumber(orderID uint) string {
	return fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), orderID)
}

// Get returns an order visible to the given viewer. Guests can only
// see the last order of their session.
func (s *Service) Get(ctx context.Context, orderID uint, userID *uint, sessionID string) (*Order, error) {
	order, err := s.getByID(orderID)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		if order.UserID == nil || *order.UserID != *userID {
			return nil, ErrAccessDenied
		}
		return order, nil
	}

	lastID, err := s.lastOrder.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if lastID != order.ID {
		return nil, ErrAccessDenied
	}
	return order, nil
}

// GetByPaymentIntent returns the order bound to a payment intent
func (s *Service) GetByPaymentIntent(intentID string) (*Order, error) {
	var order Order
	if err := s.db.Preload("Items").Where("payment_intent_id = ?", intentID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (s *Service) getByID(orderID uint) (*Order, error) {
	var order Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// History returns the user's orders, newest first
func (s *Service) History(userID uint) ([]Order, error) {
	var orders []Order
	if err := s.db.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// AttachPaymentIntent records the payment intent created for an order
func (s *Service) AttachPaymentIntent(orderID uint, intentID string) error {
	if err := s.db.Model(&Order{}).
		Where("id = ?", orderID).
		Update("payment_intent_id", intentID).Error; err != nil {
		return fmt.Errorf("failed to attach payment intent: %w", err)
	}
	return nil
}

// MarkPaid marks an order as paid. Marking an already paid order is
// a no-op so webhook retries stay harmless.
func (s *Service) MarkPaid(orderID uint, intentID string) error {
	order, err := s.getByID(orderID)
	if err != nil {
		return err
	}
	if order.Paid {
		return nil
	}

	updates := map[string]interface{}{
		"paid":              true,
		"payment_intent_id": intentID,
	}
	if order.Status == StatusPending {
		updates["status"] = StatusProcessing
	}

	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	return nil
}

// UpdateStatus moves an order along its lifecycle
func (s *Service) UpdateStatus(orderID uint, newStatus Status) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("unknown status: %s", newStatus)
	}

	order, err := s.getByID(orderID)
	if err != nil {
		return err
	}

	if !isValidStatusTransition(order.Status, newStatus) {
		return ErrInvalidTransition
	}

	if err := s.db.Model(order).Update("status", newStatus).Error; err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

// isValidStatusTransition defines the allowed lifecycle moves
func isValidStatusTransition(from, to Status) bool {
	transitions := map[Status][]Status{
		StatusPending:    {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusDelivered},
		StatusDelivered:  {},
		StatusCancelled:  {},
	}

	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
