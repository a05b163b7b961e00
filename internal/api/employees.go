package api

import (
	"net/http"                    // HTTP status codes
	"obra_system/internal/cep"    // Postal code lookup
	"obra_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact decimal arithmetic for money
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// EmployeeRequest carries the employee form fields
type EmployeeRequest struct {
	Name    string `json:"name" binding:"required"` // Name must be provided
	Cpf     string `json:"cpf"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Role    string `json:"role"`
	Salary  string `json:"salary"` // Decimal string, empty means unset
	Notes   string `json:"notes"`
}

// parseSalary converts the optional salary string into a decimal
func parseSalary(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListEmployeesHandler returns the user's registered employees ordered by name
func ListEmployeesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var employees []domain.Employee // Slice to hold employees
		if err := db.Where("user_id = ?", userID).Order("name asc").Find(&employees).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"employees": employees})
	}
}

// CreateEmployeeHandler inserts an employee, autofilling the address from the
// postal code when those fields come in blank
func CreateEmployeeHandler(db *gorm.DB, lookup *cep.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req EmployeeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		salary, err := parseSalary(req.Salary)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid salary"})
			return
		}
		autofillAddress(lookup, req.ZipCode, &req.Address, &req.City, &req.State)
		employee := domain.Employee{
			UserID:  userID,
			Name:    req.Name,
			Cpf:     req.Cpf,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
			City:    req.City,
			State:   req.State,
			ZipCode: req.ZipCode,
			Role:    req.Role,
			Salary:  salary,
			Notes:   req.Notes,
		}
		if err := db.Create(&employee).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to create employee")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"employee": employee})
	}
}

// UpdateEmployeeHandler overwrites an employee owned by the user
func UpdateEmployeeHandler(db *gorm.DB, lookup *cep.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var employee domain.Employee // Fetch the row, owner-checked
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&employee).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		var req EmployeeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		salary, err := parseSalary(req.Salary)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid salary"})
			return
		}
		autofillAddress(lookup, req.ZipCode, &req.Address, &req.City, &req.State)
		employee.Name = req.Name
		employee.Cpf = req.Cpf
		employee.Email = req.Email
		employee.Phone = req.Phone
		employee.Address = req.Address
		employee.City = req.City
		employee.State = req.State
		employee.ZipCode = req.ZipCode
		employee.Role = req.Role
		employee.Salary = salary
		employee.Notes = req.Notes
		if err := db.Save(&employee).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"employee": employee})
	}
}

// DeleteEmployeeHandler hard-deletes an employee owned by the user
func DeleteEmployeeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		res := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&domain.Employee{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employee"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,
			"employee_id": c.Param("id"),
		}).Info("Employee deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
	}
}
