// internal/domain/order/address_service.go
package order

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrAddressNotFound is returned when the address does not exist or
// belongs to another user
var ErrAddressNotFound = errors.New("delivery address not found")

// AddressService handles saved delivery addresses
type AddressService struct {
	db *gorm.DB
}

// NewAddressService creates a new address service
func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

// Create saves a new delivery address. Making it the default clears
// the flag on the user's other addresses.
func (s *AddressService) Create(userID uint, req *AddressRequest) (*DeliveryAddress, error) {
	address := &DeliveryAddress{
		UserID:     userID,
		FullName:   req.FullName,
		Phone:      req.Phone,
		City:       req.City,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	}

	var count int64
	if err := s.db.Model(&DeliveryAddress{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count addresses: %w", err)
	}
	if count == 0 {
		address.IsDefault = true
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := clearDefault(tx, userID); err != nil {
				return err
			}
		}
		if err := tx.Create(address).Error; err != nil {
			return fmt.Errorf("failed to create address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

// Update modifies an existing delivery address
func (s *AddressService) Update(userID, addressID uint, req *AddressRequest) (*DeliveryAddress, error) {
	address, err := s.get(userID, addressID)
	if err != nil {
		return nil, err
	}

	address.FullName = req.FullName
	address.Phone = req.Phone
	address.City = req.City
	address.Address = req.Address
	address.PostalCode = req.PostalCode

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault && !address.IsDefault {
			if err := clearDefault(tx, userID); err != nil {
				return err
			}
			address.IsDefault = true
		}
		if err := tx.Save(address).Error; err != nil {
			return fmt.Errorf("failed to update address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

// SetDefault makes the address the user's default and clears the
// flag everywhere else
func (s *AddressService) SetDefault(userID, addressID uint) error {
	address, err := s.get(userID, addressID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := clearDefault(tx, userID); err != nil {
			return err
		}
		if err := tx.Model(address).Update("is_default", true).Error; err != nil {
			return fmt.Errorf("failed to set default address: %w", err)
		}
		return nil
	})
}

// Delete removes a delivery address
func (s *AddressService) Delete(userID, addressID uint) error {
	address, err := s.get(userID, addressID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(address).Error; err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	return nil
}

// List returns the user's addresses with the default first
func (s *AddressService) List(userID uint) ([]DeliveryAddress, error) {
	var addresses []DeliveryAddress
	if err := s.db.
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// GetDefault returns the user's default address when one exists
func (s *AddressService) GetDefault(userID uint) (*DeliveryAddress, error) {
	var address DeliveryAddress
	if err := s.db.Where("user_id = ? AND is_default = ?", userID, true).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("failed to get default address: %w", err)
	}
	return &address, nil
}

func (s *AddressService) get(userID, addressID uint) (*DeliveryAddress, error) {
	var address DeliveryAddress
	if err := s.db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	return &address, nil
}

func clearDefault(tx *gorm.DB, userID uint) error {
	if err := tx.Model(&DeliveryAddress{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error; err != nil {
		return fmt.Errorf("failed to clear default address: %w", err)
	}
	return nil
}
