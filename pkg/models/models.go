package models

import (
	"time"
)

// User represents an account in the system
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Order represents a customer's food order. UserID is bound to the
// authenticated creator at creation time and is never user-editable.
type Order struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"index;not null"`
	User           *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CustomerName   string    `json:"customer_name" gorm:"not null"`
	PhoneNumber    string    `json:"phone_number" gorm:"not null"`
	FoodItems      string    `json:"food_items" gorm:"not null"`
	Address        string    `json:"address" gorm:"not null"`
	Message        string    `json:"message" gorm:"not null"`
	AdditionalNote string    `json:"additional_note"`
	Quantity       int       `json:"quantity" gorm:"not null"`
	OrderDate      time.Time `json:"order_date" gorm:"index;not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Identity is the authenticated caller attached to a request by the auth
// middleware: the verified user id and email, not the full record.
type Identity struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

// UserSummary is the minimal owner projection returned with a newly
// created order.
type UserSummary struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CreateOrderRequest represents an order creation request. All fields except
// additional_note are required but only presence is checked, so any non-empty
// phone_number and any non-zero quantity are accepted; order_date is parsed
// as RFC3339 or YYYY-MM-DD.
type CreateOrderRequest struct {
	CustomerName   string `json:"customer_name" binding:"required"`
	PhoneNumber    string `json:"phone_number" binding:"required"`
	FoodItems      string `json:"food_items" binding:"required"`
	Address        string `json:"address" binding:"required"`
	Message        string `json:"message" binding:"required"`
	AdditionalNote string `json:"additional_note"`
	Quantity       int    `json:"quantity" binding:"required"`
	OrderDate      string `json:"order_date" binding:"required"`
}

// UpdateOrderRequest represents a partial order update. Pointer fields
// distinguish "absent" from "present with a zero value": a nil field leaves
// the stored value untouched, a non-nil field overwrites it as given.
type UpdateOrderRequest struct {
	CustomerName   *string `json:"customer_name"`
	PhoneNumber    *string `json:"phone_number"`
	FoodItems      *string `json:"food_items"`
	Address        *string `json:"address"`
	Message        *string `json:"message"`
	AdditionalNote *string `json:"additional_note"`
	Quantity       *int    `json:"quantity"`
	OrderDate      *string `json:"order_date"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}
