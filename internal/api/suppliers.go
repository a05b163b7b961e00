package api

import (
	"net/http"                    // HTTP status codes
	"obra_system/internal/cep"    // Postal code lookup
	"obra_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// SupplierRequest carries the supplier form fields
type SupplierRequest struct {
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

// ListSuppliersHandler returns the user's registered suppliers ordered by name
func ListSuppliersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var suppliers []domain.Supplier // Slice to hold suppliers
		if err := db.Where("user_id = ?", userID).Order("name asc").Find(&suppliers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suppliers"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"suppliers": suppliers})
	}
}

// CreateSupplierHandler inserts a supplier with the same fill-empty-only
// postal code autofill the other registries use
func CreateSupplierHandler(db *gorm.DB, lookup *cep.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req SupplierRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		autofillAddress(lookup, req.ZipCode, &req.Address, &req.City, &req.State)
		supplier := domain.Supplier{
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
		if err := db.Create(&supplier).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to create supplier")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"supplier": supplier})
	}
}

// UpdateSupplierHandler overwrites a supplier owned by the user
func UpdateSupplierHandler(db *gorm.DB, lookup *cep.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var supplier domain.Supplier // Fetch the row, owner-checked
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&supplier).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
			return
		}
		var req SupplierRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		autofillAddress(lookup, req.ZipCode, &req.Address, &req.City, &req.State)
		supplier.Name = req.Name
		supplier.Email = req.Email
		supplier.Phone = req.Phone
		supplier.CpfCnpj = req.CpfCnpj
		supplier.Address = req.Address
		supplier.City = req.City
		supplier.State = req.State
		supplier.ZipCode = req.ZipCode
		supplier.Notes = req.Notes
		if err := db.Save(&supplier).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplier"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"supplier": supplier})
	}
}

// DeleteSupplierHandler hard-deletes a supplier owned by the user
func DeleteSupplierHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		res := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&domain.Supplier{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete supplier"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,
			"supplier_id": c.Param("id"),
		}).Info("Supplier deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted"})
	}
}
