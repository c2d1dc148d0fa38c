package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mealhut/mealhut/pkg/metrics"
	"github.com/mealhut/mealhut/pkg/models"
)

var (
	// ErrOrderNotFound is returned when no order exists for the given id
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidOrderDate is returned when a supplied order_date cannot be parsed
	ErrInvalidOrderDate = errors.New("invalid order_date")
)

// OrderService defines order persistence operations.
type OrderService interface {
	CreateOrder(ctx context.Context, identity *models.Identity, req *models.CreateOrderRequest) (*models.Order, *models.UserSummary, error)
	ListOrders(ctx context.Context, includeUser bool) ([]models.Order, error)
	GetOrder(ctx context.Context, id uint, includeUser bool) (*models.Order, error)
	UpdateOrder(ctx context.Context, id uint, req *models.UpdateOrderRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uint) error
}

// Service implements OrderService backed by gorm
type Service struct {
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new OrderService
func NewService(logger *zap.Logger, db *gorm.DB) (OrderService, error) {
	return &Service{logger: logger, db: db}, nil
}

// ParseOrderDate parses a caller-supplied order date, accepting RFC3339 or a
// bare YYYY-MM-DD day.
func ParseOrderDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidOrderDate, value)
	}
	return t, nil
}

// CreateOrder persists a new order bound to the authenticated caller and
// returns it with the owner's username/email projection.
func (s *Service) CreateOrder(ctx context.Context, identity *models.Identity, req *models.CreateOrderRequest) (*models.Order, *models.UserSummary, error) {
	orderDate, err := ParseOrderDate(req.OrderDate)
	if err != nil {
		return nil, nil, err
	}

	order := &models.Order{
		UserID:         identity.UserID,
		CustomerName:   req.CustomerName,
		PhoneNumber:    req.PhoneNumber,
		FoodItems:      req.FoodItems,
		Address:        req.Address,
		Message:        req.Message,
		AdditionalNote: req.AdditionalNote,
		Quantity:       req.Quantity,
		OrderDate:      orderDate,
	}
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}

	var owner models.UserSummary
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Select("username", "email").
		Where("id = ?", identity.UserID).
		Scan(&owner).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load order owner: %w", err)
	}

	metrics.OrdersCreated.Inc()
	s.logger.Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", identity.UserID),
		zap.Int("quantity", order.Quantity))

	return order, &owner, nil
}

// ListOrders returns every order, most recent order_date first
func (s *Service) ListOrders(ctx context.Context, includeUser bool) ([]models.Order, error) {
	q := s.db.WithContext(ctx).Order("order_date DESC")
	if includeUser {
		q = q.Preload("User")
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns the order with the given id
func (s *Service) GetOrder(ctx context.Context, id uint, includeUser bool) (*models.Order, error) {
	q := s.db.WithContext(ctx)
	if includeUser {
		q = q.Preload("User")
	}
	var order models.Order
	if err := q.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return &order, nil
}

// UpdateOrder applies the supplied fields to an existing order. Only non-nil
// request fields overwrite stored values; id and user_id are never altered.
func (s *Service) UpdateOrder(ctx context.Context, id uint, req *models.UpdateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	updates := map[string]interface{}{}
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.FoodItems != nil {
		updates["food_items"] = *req.FoodItems
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Message != nil {
		updates["message"] = *req.Message
	}
	if req.AdditionalNote != nil {
		updates["additional_note"] = *req.AdditionalNote
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.OrderDate != nil {
		orderDate, err := ParseOrderDate(*req.OrderDate)
		if err != nil {
			return nil, err
		}
		updates["order_date"] = orderDate
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&order).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
	}

	var updated models.Order
	if err := s.db.WithContext(ctx).Preload("User").First(&updated, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	s.logger.Info("Order updated", zap.Uint("order_id", id), zap.Int("fields", len(updates)))
	return &updated, nil
}

// DeleteOrder removes the order with the given id. Deleting a missing order
// reports ErrOrderNotFound via the affected-row count.
func (s *Service) DeleteOrder(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Order{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}

	s.logger.Info("Order deleted", zap.Uint("order_id", id))
	return nil
}
