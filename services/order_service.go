package services

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/restodesk/backoffice/models"
)

var (
	ErrTableWithoutCustomer = errors.New("table has no customer assigned")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
)

// OrderService owns every mutation of an order and its items. Each mutation
// runs inside one transaction and is serialized per order id, so the derived
// total can never observe a half-applied change.
type OrderService struct {
	DB *gorm.DB

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		DB:    db,
		locks: make(map[uint]*sync.Mutex),
	}
}

// lockOrder serializes mutations of one order. Returns the unlock func.
func (s *OrderService) lockOrder(orderID uint) func() {
	s.mu.Lock()
	l, ok := s.locks[orderID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[orderID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// CreateOrder opens an order on the given table, bound to the customer
// currently seated there. Tables without a customer cannot order.
func (s *OrderService) CreateOrder(tableID uint, status models.OrderStatus) (*models.Order, error) {
	if status == "" {
		status = models.OrderPending
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var table models.Table
	if err := s.DB.First(&table, tableID).Error; err != nil {
		return nil, err
	}
	if table.CustomerID == nil {
		return nil, ErrTableWithoutCustomer
	}

	order := models.Order{
		TableID:     table.ID,
		CustomerID:  table.CustomerID,
		Status:      status,
		TotalAmount: decimal.Zero,
	}
	if err := s.DB.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// AddItem appends a line to the order with the price snapshotted from the
// current menu price, then recomputes the order total.
func (s *OrderService) AddItem(orderID, menuItemID uint, quantity int) (*models.OrderItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	unlock := s.lockOrder(orderID)
	defer unlock()

	var item models.OrderItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}

		var menuItem models.MenuItem
		if err := tx.First(&menuItem, menuItemID).Error; err != nil {
			return err
		}

		item = models.OrderItem{
			OrderID:    order.ID,
			MenuItemID: menuItem.ID,
			Quantity:   quantity,
		}
		item.SnapshotPrice(menuItem.Price)

		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return s.recomputeTotal(tx, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem replaces the line's menu item and/or quantity and re-snapshots
// the price from the (possibly new) menu item.
func (s *OrderService) UpdateItem(orderID, itemID, menuItemID uint, quantity int) (*models.OrderItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	unlock := s.lockOrder(orderID)
	defer unlock()

	var item models.OrderItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).First(&item, itemID).Error; err != nil {
			return err
		}

		var menuItem models.MenuItem
		if err := tx.First(&menuItem, menuItemID).Error; err != nil {
			return err
		}

		item.MenuItemID = menuItem.ID
		item.Quantity = quantity
		item.SnapshotPrice(menuItem.Price)

		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		return s.recomputeTotal(tx, orderID)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// IncrementItem bumps the line quantity by one and re-snapshots its price.
func (s *OrderService) IncrementItem(orderID, itemID uint) (*models.OrderItem, error) {
	unlock := s.lockOrder(orderID)
	defer unlock()

	var item models.OrderItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).First(&item, itemID).Error; err != nil {
			return err
		}

		var menuItem models.MenuItem
		if err := tx.First(&menuItem, item.MenuItemID).Error; err != nil {
			return err
		}

		item.Quantity++
		item.SnapshotPrice(menuItem.Price)

		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		return s.recomputeTotal(tx, orderID)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DecrementItem lowers the line quantity by one. At quantity 1 the line is
// deleted instead of being saved with quantity 0; the second return value
// reports whether that happened.
func (s *OrderService) DecrementItem(orderID, itemID uint) (*models.OrderItem, bool, error) {
	unlock := s.lockOrder(orderID)
	defer unlock()

	var (
		item    models.OrderItem
		deleted bool
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).First(&item, itemID).Error; err != nil {
			return err
		}

		if item.Quantity > 1 {
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, item.MenuItemID).Error; err != nil {
				return err
			}
			item.Quantity--
			item.SnapshotPrice(menuItem.Price)
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		} else {
			deleted = true
			if err := tx.Delete(&models.OrderItem{}, item.ID).Error; err != nil {
				return err
			}
		}
		return s.recomputeTotal(tx, orderID)
	})
	if err != nil {
		return nil, false, err
	}
	return &item, deleted, nil
}

// DeleteItem removes a line and recomputes the parent order's total.
func (s *OrderService) DeleteItem(orderID, itemID uint) error {
	unlock := s.lockOrder(orderID)
	defer unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var item models.OrderItem
		if err := tx.Where("order_id = ?", orderID).First(&item, itemID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.OrderItem{}, item.ID).Error; err != nil {
			return err
		}
		return s.recomputeTotal(tx, orderID)
	})
}

// DeleteOrder removes the order together with all of its lines.
func (s *OrderService) DeleteOrder(orderID uint) error {
	unlock := s.lockOrder(orderID)
	defer unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, orderID).Error
	})
}

// ChangeStatus sets the order status. A value outside the enum is rejected
// with ErrInvalidStatus instead of being silently dropped.
func (s *OrderService) ChangeStatus(orderID uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		return nil, err
	}

	order.Status = status
	if err := s.DB.Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// RemoveMenuItem deletes a menu item, cascades to every order line that
// references it and recomputes the total of each affected order, all in one
// transaction.
func (s *OrderService) RemoveMenuItem(menuItemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var menuItem models.MenuItem
		if err := tx.First(&menuItem, menuItemID).Error; err != nil {
			return err
		}

		var orderIDs []uint
		if err := tx.Model(&models.OrderItem{}).
			Distinct().
			Where("menu_item_id = ?", menuItemID).
			Pluck("order_id", &orderIDs).Error; err != nil {
			return err
		}

		if err := tx.Where("menu_item_id = ?", menuItemID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.MenuItem{}, menuItemID).Error; err != nil {
			return err
		}

		for _, id := range orderIDs {
			if err := s.recomputeTotal(tx, id); err != nil {
				return err
			}
		}
		return nil
	})
}

// recomputeTotal re-derives Order.TotalAmount from the surviving lines.
func (s *OrderService) recomputeTotal(tx *gorm.DB, orderID uint) error {
	var items []models.OrderItem
	if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return err
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price)
	}

	return tx.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("total_amount", total).Error
}
