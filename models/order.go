package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderInProgress OrderStatus = "In Progress"
	OrderCompleted  OrderStatus = "Completed"
	OrderCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the four known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	TableID    uint        `gorm:"not null;index" json:"table_id"`
	Table      Table       `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"table"`
	CustomerID *uint       `gorm:"index" json:"customer_id,omitempty"`
	Customer   *Customer   `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"customer,omitempty"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	// TotalAmount is derived: always the sum of the order's item prices.
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	OrderItems  []OrderItem     `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}
