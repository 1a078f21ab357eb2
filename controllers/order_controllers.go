package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restodesk/backoffice/models"
	"github.com/restodesk/backoffice/services"
	"github.com/restodesk/backoffice/utils"
)

type OrderController struct {
	DB      *gorm.DB
	Service *services.OrderService
}

func NewOrderController(db *gorm.DB, svc *services.OrderService) *OrderController {
	return &OrderController{DB: db, Service: svc}
}

// GetAllOrders -> list orders with their items
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> one order with items and their menu entries
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.MenuItem").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder -> open an order on a table. The table must have a seated
// customer; the order is bound to that customer and starts at total 0.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	tableID, err := strconv.Atoi(c.Param("table_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	order, err := oc.Service.CreateOrder(uint(tableID), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %d created on table %d", order.ID, order.TableID)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// ChangeOrderStatus -> set the order status; unknown values are rejected
func (oc *OrderController) ChangeOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.ChangeStatus(uint(id), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %d status changed to %s", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder -> remove the order and all of its items
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.Service.DeleteOrder(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}

// AddOrderItem -> append a line to the order
func (oc *OrderController) AddOrderItem(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,gte=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := oc.Service.AddItem(uint(orderID), req.MenuItemID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order item added", item)
}

// UpdateOrderItem -> replace a line's menu item and/or quantity
func (oc *OrderController) UpdateOrderItem(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,gte=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := oc.Service.UpdateItem(uint(orderID), uint(itemID), req.MenuItemID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order item updated", item)
}

// IncrementOrderItem -> quantity +1
func (oc *OrderController) IncrementOrderItem(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := oc.Service.IncrementItem(uint(orderID), uint(itemID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order item incremented", item)
}

// DecrementOrderItem -> quantity -1; at quantity 1 the line is removed
func (oc *OrderController) DecrementOrderItem(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, removed, err := oc.Service.DecrementItem(uint(orderID), uint(itemID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if removed {
		utils.RespondJSON(c, http.StatusOK, "Order item removed", gin.H{"item_id": item.ID})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order item decremented", item)
}

// DeleteOrderItem -> remove a line outright
func (oc *OrderController) DeleteOrderItem(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.Service.DeleteItem(uint(orderID), uint(itemID)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order item deleted", gin.H{"item_id": itemID})
}
