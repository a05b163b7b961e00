package api

import (
	"net/http"                    // HTTP status codes
	"obra_system/internal/cep"    // Postal code lookup
	"obra_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CustomerRequest carries the customer form fields
type CustomerRequest struct {
	Name    string `json:"name" binding:"required"` // Name must be provided
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	CpfCnpj string `json:"cpf_cnpj"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Notes   string `json:"notes"`
}

// ListCustomersHandler returns the user's customers ordered by name
func ListCustomersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var customers []domain.Customer // Slice to hold customers
		// Every list query is scoped by the owning user
		if err := db.Where("user_id = ?", userID).Order("name asc").Find(&customers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customers": customers})
	}
}

// CreateCustomerHandler inserts a customer, back-filling empty address fields
// from the postal code when one is present
func CreateCustomerHandler(db *gorm.DB, lookup *cep.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req CustomerRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		// Fill-empty-only autofill from the postal code
		autofillAddress(lookup, req.ZipCode, &req.Address, &req.City, &req.State)
		customer := domain.Customer{
			UserID:  userID,
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			CpfCnpj: req.CpfCnpj,
			Address: req.Address,
			City:    req.City,
			State:   req.State,
			ZipCode: req.ZipCode,
			Notes:   req.Notes,
		}
		if err := db.Create(&customer).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to create customer")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"customer": customer})
	}
}

// UpdateCustomerHandler overwrites a customer owned by the user
func UpdateCustomerHandler(db *gorm.DB, lookup *cep.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var customer domain.Customer // Fetch the row, owner-checked
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&customer).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		var req CustomerRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		autofillAddress(lookup, req.ZipCode, &req.Address, &req.City, &req.State)
		// Full-row overwrite of the form fields
		customer.Name = req.Name
		customer.Email = req.Email
		customer.Phone = req.Phone
		customer.CpfCnpj = req.CpfCnpj
		customer.Address = req.Address
		customer.City = req.City
		customer.State = req.State
		customer.ZipCode = req.ZipCode
		customer.Notes = req.Notes
		if err := db.Save(&customer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": customer})
	}
}

// DeleteCustomerHandler hard-deletes a customer owned by the user. References
// from transactions or projects are not cascaded.
func DeleteCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		// Delete only within the owner's rows
		res := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&domain.Customer{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,
			"customer_id": c.Param("id"),
		}).Info("Customer deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
	}
}
