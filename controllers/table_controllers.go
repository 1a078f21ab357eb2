package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restodesk/backoffice/models"
	"github.com/restodesk/backoffice/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> add a new table, optionally seating a customer right away.
// Occupied is never taken from the request; it is derived from the customer.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number     int   `json:"number" binding:"required"`
		Capacity   int   `json:"capacity" binding:"required,gte=1"`
		CustomerID *uint `json:"customer_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var count int64
	tc.DB.Model(&models.Table{}).Where("number = ?", req.Number).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, ErrDuplicateTable)
		return
	}

	if req.CustomerID != nil {
		var customer models.Customer
		if err := tc.DB.First(&customer, *req.CustomerID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
	}

	table := models.Table{
		Number:     req.Number,
		Capacity:   req.Capacity,
		CustomerID: req.CustomerID,
	}
	table.SyncOccupancy()

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table created: #%d (occupied=%t)", table.Number, table.Occupied)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> list every table with its seated customer
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Preload("Customer").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail of one table
func (tc *TableController) GetTableByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("table_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.Preload("Customer").First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTable -> edit number/capacity and seat or release a customer.
// ClearCustomer releases the table; occupancy is resynced either way.
func (tc *TableController) UpdateTable(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("table_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Number        *int  `json:"number"`
		Capacity      *int  `json:"capacity" binding:"omitempty,gte=1"`
		CustomerID    *uint `json:"customer_id"`
		ClearCustomer bool  `json:"clear_customer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Number != nil {
		var count int64
		tc.DB.Model(&models.Table{}).
			Where("number = ? AND id <> ?", *req.Number, table.ID).
			Count(&count)
		if count > 0 {
			utils.RespondError(c, http.StatusConflict, ErrDuplicateTable)
			return
		}
		table.Number = *req.Number
	}
	if req.Capacity != nil {
		table.Capacity = *req.Capacity
	}

	if req.ClearCustomer {
		table.CustomerID = nil
	} else if req.CustomerID != nil {
		var customer models.Customer
		if err := tc.DB.First(&customer, *req.CustomerID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		table.CustomerID = req.CustomerID
	}

	table.SyncOccupancy()
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d updated (occupied=%t)", table.ID, table.Occupied)
	utils.RespondJSON(c, http.StatusOK, "Table updated successfully", table)
}

// DeleteTable -> remove a table together with its orders and their items
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("table_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		var orderIDs []uint
		if err := tx.Model(&models.Order{}).
			Where("table_id = ?", table.ID).
			Pluck("id", &orderIDs).Error; err != nil {
			return err
		}

		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Order{}, orderIDs).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Table{}, table.ID).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted successfully", gin.H{"table_id": table.ID})
}
