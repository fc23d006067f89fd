package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AdminOrderStatus string

const (
	StatusPending    AdminOrderStatus = "PENDING"
	StatusPreparing  AdminOrderStatus = "PREPARING"
	StatusDelivering AdminOrderStatus = "DELIVERING"
	StatusCompleted  AdminOrderStatus = "COMPLETED"
	StatusCancelled  AdminOrderStatus = "CANCELLED"
)

// AdminOrderStatuses lists the statuses an admin may set, in workflow order.
var AdminOrderStatuses = []AdminOrderStatus{
	StatusPending,
	StatusPreparing,
	StatusDelivering,
	StatusCompleted,
	StatusCancelled,
}

// ParseAdminOrderStatus accepts any casing.
func ParseAdminOrderStatus(s string) (AdminOrderStatus, error) {
	want := AdminOrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range AdminOrderStatuses {
		if st == want {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// AdminOrder is one row of the admin orders list.
type AdminOrder struct {
	ID            Identifier       `json:"id"`
	CustomerName  string           `json:"customer_name"`
	CustomerPhone string           `json:"customer_phone"`
	TotalPrice    decimal.Decimal  `json:"total_price"`
	Status        AdminOrderStatus `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Label formats the order ID the way the dashboard shows it.
func (o AdminOrder) Label() string {
	return "#" + o.ID.String()
}

// AdminCredentials is the token-auth request body.
type AdminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminToken is the token-auth response body.
type AdminToken struct {
	Token string `json:"token"`
}
