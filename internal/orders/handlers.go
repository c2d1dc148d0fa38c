package orders

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mealhut/mealhut/internal/identities"
	"github.com/mealhut/mealhut/pkg/models"
)

// Handler provides HTTP handlers for order operations
type Handler struct {
	service OrderService
	logger  *zap.Logger
}

// NewHandler creates a new order handler
func NewHandler(service OrderService, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// orderWithOwner shapes a created order with the owner's minimal projection
// in place of the full user record.
type orderWithOwner struct {
	models.Order
	User models.UserSummary `json:"user"`
}

// CreateOrderHandler handles POST /orders
func (h *Handler) CreateOrderHandler(c *gin.Context) {
	logger := h.logger.With(zap.String("endpoint", "create_order"))

	identity, ok := identities.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: no user logged in"})
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("Rejected create request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	order, owner, err := h.service.CreateOrder(c.Request.Context(), identity, &req)
	if err != nil {
		h.writeServiceError(c, logger, err)
		return
	}

	order.User = nil
	c.JSON(http.StatusCreated, gin.H{
		"message": "order created successfully",
		"order":   orderWithOwner{Order: *order, User: *owner},
	})
}

// ListOrdersHandler handles GET /orders
func (h *Handler) ListOrdersHandler(c *gin.Context) {
	logger := h.logger.With(zap.String("endpoint", "list_orders"))

	orders, err := h.service.ListOrders(c.Request.Context(), true)
	if err != nil {
		h.writeServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrderHandler handles GET /orders/:id
func (h *Handler) GetOrderHandler(c *gin.Context) {
	logger := h.logger.With(zap.String("endpoint", "get_order"))

	id, ok := h.orderID(c)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), id, true)
	if err != nil {
		h.writeServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrderHandler handles PUT/PATCH /orders/:id
func (h *Handler) UpdateOrderHandler(c *gin.Context) {
	logger := h.logger.With(zap.String("endpoint", "update_order"))

	id, ok := h.orderID(c)
	if !ok {
		return
	}

	// An absent body is the empty subset: nothing to overwrite.
	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Debug("Rejected update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.service.UpdateOrder(c.Request.Context(), id, &req)
	if err != nil {
		h.writeServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "order updated successfully",
		"order":   order,
	})
}

// DeleteOrderHandler handles DELETE /orders/:id
func (h *Handler) DeleteOrderHandler(c *gin.Context) {
	logger := h.logger.With(zap.String("endpoint", "delete_order"))

	id, ok := h.orderID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteOrder(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order deleted successfully"})
}

// orderID parses the :id path parameter, writing a 400 when it is not an
// integer.
func (h *Handler) orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return 0, false
	}
	return uint(id), true
}

// writeServiceError maps service errors to the response contract: not-found
// 404, bad order_date 400, constraint violations 400 with the underlying
// message, everything else a generic 500 with no detail leaked.
func (h *Handler) writeServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	case errors.Is(err, ErrInvalidOrderDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order_date"})
	case isConstraintViolation(err):
		logger.Warn("Database rejected operation", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "database error: " + err.Error()})
	default:
		logger.Error("Order operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// isConstraintViolation reports whether err is a database-level rejection
// translated by gorm.
func isConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated)
}
