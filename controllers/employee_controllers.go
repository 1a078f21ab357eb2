package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/restodesk/backoffice/models"
	"github.com/restodesk/backoffice/utils"
)

type EmployeeController struct {
	DB *gorm.DB
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db}
}

// GetAllEmployees -> list the staff roster
func (ec *EmployeeController) GetAllEmployees(c *gin.Context) {
	var employees []models.Employee
	if err := ec.DB.Find(&employees).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of employees", employees)
}

// GetEmployeeByID -> detail of one employee
func (ec *EmployeeController) GetEmployeeByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("employee_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee detail", employee)
}

// CreateEmployee -> hire someone; the role must be one of the known roles
func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	var req struct {
		Name   string              `json:"name" binding:"required"`
		Email  string              `json:"email" binding:"required,email"`
		Phone  string              `json:"phone" binding:"required"`
		Salary decimal.Decimal     `json:"salary" binding:"required"`
		Role   models.EmployeeRole `json:"role" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !req.Role.Valid() {
		utils.RespondError(c, http.StatusUnprocessableEntity, ErrInvalidRole)
		return
	}

	var count int64
	ec.DB.Model(&models.Employee{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, ErrDuplicateEmployee)
		return
	}

	employee := models.Employee{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Salary: req.Salary,
		Role:   req.Role,
	}
	if err := ec.DB.Create(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New employee created: %s (%s)", employee.Name, employee.Role)
	utils.RespondJSON(c, http.StatusCreated, "Employee created successfully", employee)
}

// UpdateEmployee -> edit roster fields
func (ec *EmployeeController) UpdateEmployee(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("employee_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name   *string              `json:"name"`
		Email  *string              `json:"email" binding:"omitempty,email"`
		Phone  *string              `json:"phone"`
		Salary *decimal.Decimal     `json:"salary"`
		Role   *models.EmployeeRole `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Role != nil && !req.Role.Valid() {
		utils.RespondError(c, http.StatusUnprocessableEntity, ErrInvalidRole)
		return
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Email != nil {
		var count int64
		ec.DB.Model(&models.Employee{}).
			Where("email = ? AND id <> ?", *req.Email, employee.ID).
			Count(&count)
		if count > 0 {
			utils.RespondError(c, http.StatusConflict, ErrDuplicateEmployee)
			return
		}
		employee.Email = *req.Email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Salary != nil {
		employee.Salary = *req.Salary
	}
	if req.Role != nil {
		employee.Role = *req.Role
	}

	if err := ec.DB.Save(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee updated successfully", employee)
}

// DeleteEmployee -> remove someone from the roster
func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("employee_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := ec.DB.Delete(&models.Employee{}, employee.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Employee %d deleted", employee.ID)
	utils.RespondJSON(c, http.StatusOK, "Employee deleted successfully", gin.H{"employee_id": employee.ID})
}
