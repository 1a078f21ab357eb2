package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restodesk/backoffice/models"
	"github.com/restodesk/backoffice/utils"
)

type ReceiptController struct {
	DB *gorm.DB
}

func NewReceiptController(db *gorm.DB) *ReceiptController {
	return &ReceiptController{DB: db}
}

type receiptLine struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

// GetOrderReceipt builds the printable projection of an order: a receipt
// number, one line per item and the formatted total.
func (rc *ReceiptController) GetOrderReceipt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := rc.DB.Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Preload("Customer").
		Preload("Table").
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	receiptNumber := fmt.Sprintf("RCP/%s/%06d", time.Now().Format("20060102"), order.ID)

	lines := make([]receiptLine, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		lines = append(lines, receiptLine{
			Name:      item.MenuItem.Name,
			Quantity:  item.Quantity,
			UnitPrice: utils.FormatCurrency(item.MenuItem.Price),
			Subtotal:  utils.FormatCurrency(item.Price),
		})
	}

	customerName := ""
	if order.Customer != nil {
		customerName = order.Customer.Name
	}

	utils.RespondJSON(c, http.StatusOK, "Order receipt", gin.H{
		"receipt_number": receiptNumber,
		"order_id":       order.ID,
		"table_number":   order.Table.Number,
		"customer":       customerName,
		"status":         order.Status,
		"items":          lines,
		"total":          utils.FormatCurrency(order.TotalAmount),
		"created_at":     order.CreatedAt,
	})
}
