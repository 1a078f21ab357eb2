package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/restodesk/backoffice/models"
	"github.com/restodesk/backoffice/services"
	"github.com/restodesk/backoffice/utils"
)

type MenuController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewMenuController(db *gorm.DB, orders *services.OrderService) *MenuController {
	return &MenuController{DB: db, Orders: orders}
}

// GetAllMenuItems -> the full catalog
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// GetMenuItemByID -> detail of one catalog entry
func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// CreateMenuItem -> add a dish to the catalog
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req struct {
		Name        string          `json:"name" binding:"required"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price" binding:"required"`
		Category    string          `json:"category" binding:"required"`
		Available   *bool           `json:"available"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Available:   true,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New menu item created: %s (price=%s)", item.Name, item.Price)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created successfully", item)
}

// UpdateMenuItem -> edit a catalog entry. Price or availability edits do not
// touch lines already ordered; the snapshot on those stays as it was.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name        *string          `json:"name"`
		Description *string          `json:"description"`
		Price       *decimal.Decimal `json:"price"`
		Category    *string          `json:"category"`
		Available   *bool            `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated successfully", item)
}

// DeleteMenuItem -> remove a dish. Order lines referencing it are removed
// and every affected order total is recomputed in the same transaction.
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := mc.Orders.RemoveMenuItem(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Menu item %d deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted successfully", gin.H{"item_id": id})
}
