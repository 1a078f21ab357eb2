package models

import "time"

type Table struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Number     int       `gorm:"not null;uniqueIndex" json:"number"`
	Capacity   int       `gorm:"not null" json:"capacity"`
	Occupied   bool      `gorm:"not null;default:false" json:"occupied"`
	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"customer,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// SyncOccupancy derives Occupied from the customer assignment. It must be
// called before every save of a Table; Occupied is never taken from input.
func (t *Table) SyncOccupancy() {
	t.Occupied = t.CustomerID != nil
}
