package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmployeeRole string

const (
	RoleWaiter  EmployeeRole = "Waiter"
	RoleChef    EmployeeRole = "Chef"
	RoleManager EmployeeRole = "Manager"
)

func (r EmployeeRole) Valid() bool {
	switch r {
	case RoleWaiter, RoleChef, RoleManager:
		return true
	}
	return false
}

type Employee struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(100);not null" json:"name"`
	Email     string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone     string          `gorm:"type:varchar(15);not null" json:"phone"`
	Salary    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"salary"`
	Role      EmployeeRole    `gorm:"type:varchar(50);not null" json:"role"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}
