package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restodesk/backoffice/models"
	"github.com/restodesk/backoffice/utils"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetAllCustomers -> list every customer
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := cc.DB.Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// GetCustomerByID -> detail of one customer
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

// CreateCustomer -> register a new customer record
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
		Phone string `json:"phone" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var count int64
	cc.DB.Model(&models.Customer{}).
		Where("email = ? OR phone = ?", req.Email, req.Phone).
		Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, ErrDuplicateCustomer)
		return
	}

	customer := models.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New customer created: %s (ID=%d)", customer.Name, customer.ID)
	utils.RespondJSON(c, http.StatusCreated, "Customer created successfully", customer)
}

// UpdateCustomer -> edit name/email/phone
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email" binding:"omitempty,email"`
		Phone *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}

	var count int64
	cc.DB.Model(&models.Customer{}).
		Where("(email = ? OR phone = ?) AND id <> ?", customer.Email, customer.Phone, customer.ID).
		Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, ErrDuplicateCustomer)
		return
	}

	if err := cc.DB.Save(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer updated successfully", customer)
}

// DeleteCustomer -> remove a customer. Tables seated by them are released
// (occupancy resynced) and their orders keep running with the customer
// reference cleared.
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		var tables []models.Table
		if err := tx.Where("customer_id = ?", customer.ID).Find(&tables).Error; err != nil {
			return err
		}
		for i := range tables {
			tables[i].CustomerID = nil
			tables[i].SyncOccupancy()
			if err := tx.Save(&tables[i]).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Order{}).
			Where("customer_id = ?", customer.ID).
			Update("customer_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Customer{}, customer.ID).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Customer %d deleted", customer.ID)
	utils.RespondJSON(c, http.StatusOK, "Customer deleted successfully", gin.H{"customer_id": customer.ID})
}
