package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mealhut/mealhut/internal/database"
	"github.com/mealhut/mealhut/pkg/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewSQLiteDB(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestService(t *testing.T) (OrderService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc, err := NewService(zap.NewNop(), db)
	require.NoError(t, err)
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func validCreateRequest() *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		CustomerName: "Jane",
		PhoneNumber:  "555",
		FoodItems:    "Pizza",
		Address:      "1 Main St",
		Message:      "ring bell",
		Quantity:     2,
		OrderDate:    "2024-01-01",
	}
}

func TestCreateOrderPersistsForCaller(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, "jane", "jane@example.com")
	identity := &models.Identity{UserID: user.ID, Email: user.Email}

	order, owner, err := svc.CreateOrder(context.Background(), identity, validCreateRequest())
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, "jane", owner.Username)
	assert.Equal(t, "jane@example.com", owner.Email)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), order.OrderDate.UTC())

	fetched, err := svc.GetOrder(context.Background(), order.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "Jane", fetched.CustomerName)
	require.NotNil(t, fetched.User)
	assert.Equal(t, "jane@example.com", fetched.User.Email)
}

func TestCreateOrderInvalidDate(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, "jane", "jane@example.com")
	identity := &models.Identity{UserID: user.ID, Email: user.Email}

	req := validCreateRequest()
	req.OrderDate = "next tuesday"
	_, _, err := svc.CreateOrder(context.Background(), identity, req)
	assert.ErrorIs(t, err, ErrInvalidOrderDate)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderAcceptsRFC3339(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, "jane", "jane@example.com")
	identity := &models.Identity{UserID: user.ID, Email: user.Email}

	req := validCreateRequest()
	req.OrderDate = "2024-03-15T18:30:00Z"
	order, _, err := svc.CreateOrder(context.Background(), identity, req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC), order.OrderDate.UTC())
}

func TestListOrdersOrderedByDateDesc(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, "jane", "jane@example.com")
	identity := &models.Identity{UserID: user.ID, Email: user.Email}

	for _, date := range []string{"2024-02-01", "2024-05-01", "2024-01-01", "2024-03-01"} {
		req := validCreateRequest()
		req.OrderDate = date
		_, _, err := svc.CreateOrder(context.Background(), identity, req)
		require.NoError(t, err)
	}

	orders, err := svc.ListOrders(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, orders, 4)
	for i := 1; i < len(orders); i++ {
		assert.False(t, orders[i].OrderDate.After(orders[i-1].OrderDate),
			"orders must be sorted by order_date descending")
	}
	for _, o := range orders {
		require.NotNil(t, o.User)
		assert.Equal(t, "jane@example.com", o.User.Email)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetOrder(context.Background(), 9999, true)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateOrderPartial(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, "jane", "jane@example.com")
	identity := &models.Identity{UserID: user.ID, Email: user.Email}

	created, _, err := svc.CreateOrder(context.Background(), identity, validCreateRequest())
	require.NoError(t, err)

	quantity := 5
	updated, err := svc.UpdateOrder(context.Background(), created.ID, &models.UpdateOrderRequest{
		Quantity: &quantity,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, "Jane", updated.CustomerName)
	assert.Equal(t, "ring bell", updated.Message)
	assert.Equal(t, created.UserID, updated.UserID)
	assert.Equal(t, created.ID, updated.ID)
	require.NotNil(t, updated.User)
	assert.Equal(t, "jane", updated.User.Username)
}

func TestUpdateOrderEmptyStringOverwrites(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, "jane", "jane@example.com")
	identity := &models.Identity{UserID: user.ID, Email: user.Email}

	req := validCreateRequest()
	req.AdditionalNote = "no onions"
	created, _, err := svc.CreateOrder(context.Background(), identity, req)
	require.NoError(t, err)

	// A present empty value clears the note; absent fields stay put.
	empty := ""
	updated, err := svc.UpdateOrder(context.Background(), created.ID, &models.UpdateOrderRequest{
		AdditionalNote: &empty,
	})
	require.NoError(t, err)
	assert.Equal(t, "", updated.AdditionalNote)
	assert.Equal(t, "Jane", updated.CustomerName)
}

func TestUpdateOrderNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	name := "nobody"
	_, err := svc.UpdateOrder(context.Background(), 9999, &models.UpdateOrderRequest{CustomerName: &name})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateOrderInvalidDate(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, "jane", "jane@example.com")
	identity := &models.Identity{UserID: user.ID, Email: user.Email}

	created, _, err := svc.CreateOrder(context.Background(), identity, validCreateRequest())
	require.NoError(t, err)

	bad := "soon"
	_, err = svc.UpdateOrder(context.Background(), created.ID, &models.UpdateOrderRequest{OrderDate: &bad})
	assert.ErrorIs(t, err, ErrInvalidOrderDate)
}

func TestDeleteOrder(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, "jane", "jane@example.com")
	identity := &models.Identity{UserID: user.ID, Email: user.Email}

	created, _, err := svc.CreateOrder(context.Background(), identity, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(context.Background(), created.ID))

	_, err = svc.GetOrder(context.Background(), created.ID, true)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	err = svc.DeleteOrder(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestParseOrderDate(t *testing.T) {
	_, err := ParseOrderDate("2024-01-01")
	assert.NoError(t, err)
	_, err = ParseOrderDate("2024-01-01T10:00:00+02:00")
	assert.NoError(t, err)
	_, err = ParseOrderDate("")
	assert.ErrorIs(t, err, ErrInvalidOrderDate)
}
