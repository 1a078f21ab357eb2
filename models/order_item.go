package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order      Order    `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint     `gorm:"not null;index" json:"menu_item_id"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"menu_item"`
	Quantity   int      `gorm:"not null" json:"quantity"`
	// Price is the line snapshot: quantity * MenuItem.Price at the time the
	// line was last mutated. Later menu price edits do not touch it.
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

// SnapshotPrice recomputes the line price from the given unit price.
func (oi *OrderItem) SnapshotPrice(unit decimal.Decimal) {
	oi.Price = unit.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
