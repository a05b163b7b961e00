package api

import (
	"fmt"                         // Address snapshot formatting
	"net/http"                    // HTTP status codes
	"obra_system/internal/domain" // Importing domain models
	"strings"                     // Address snapshot assembly

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// ProjectRequest carries the project form fields
type ProjectRequest struct {
	Name            string `json:"name" binding:"required"` // Name must be provided
	Description     string `json:"description"`
	StartDate       string `json:"start_date"`        // yyyy-mm-dd, optional
	ExpectedEndDate string `json:"expected_end_date"` // yyyy-mm-dd, optional
	Status          string `json:"status"`
	CustomerID      *uint  `json:"customer_id"`
}

// customerAddressSnapshot builds the "address, city - state" snapshot from the
// linked customer. Missing pieces are simply left out.
func customerAddressSnapshot(db *gorm.DB, userID uint, customerID *uint) string {
	if customerID == nil {
		return ""
	}
	var customer domain.Customer // Owner-checked customer fetch
	if err := db.Where("id = ? AND user_id = ?", *customerID, userID).First(&customer).Error; err != nil {
		return ""
	}
	parts := []string{}
	if customer.Address != "" {
		parts = append(parts, customer.Address)
	}
	if customer.City != "" {
		parts = append(parts, customer.City)
	}
	snapshot := strings.Join(parts, ", ")
	if customer.State != "" {
		if snapshot == "" {
			return customer.State
		}
		snapshot = fmt.Sprintf("%s - %s", snapshot, customer.State)
	}
	return snapshot
}

// ListProjectsHandler returns the user's projects, newest first
func ListProjectsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var projects []domain.Project // Slice to hold projects
		if err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&projects).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"projects": projects})
	}
}

// GetProjectHandler returns one project with its tasks preloaded
func GetProjectHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var project domain.Project // Fetch the row, owner-checked
		if err := db.Preload("Tasks", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index asc")
		}).Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&project).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"project": project})
	}
}

// CreateProjectHandler inserts a project, snapshotting the linked customer's
// address at write time
func CreateProjectHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req ProjectRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		if req.Status == "" {
			req.Status = domain.ProjectStatusOrcamento // Default status
		}
		if !domain.ValidProjectStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		startDate, err := parseDatePtr(req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
			return
		}
		endDate, err := parseDatePtr(req.ExpectedEndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expected end date"})
			return
		}
		project := domain.Project{
			UserID:          userID,
			Name:            req.Name,
			Description:     req.Description,
			Address:         customerAddressSnapshot(db, userID, req.CustomerID),
			StartDate:       startDate,
			ExpectedEndDate: endDate,
			Status:          req.Status,
			CustomerID:      req.CustomerID,
		}
		if err := db.Create(&project).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to create project")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
			return
		}
		invalidateDashboardCache(rdb, userID) // Project distribution changed
		c.JSON(http.StatusCreated, gin.H{"project": project})
	}
}

// UpdateProjectHandler overwrites a project owned by the user, recomputing the
// customer address snapshot
func UpdateProjectHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var project domain.Project // Fetch the row, owner-checked
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&project).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		var req ProjectRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		if req.Status == "" {
			req.Status = project.Status // Keep the current status
		}
		if !domain.ValidProjectStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		startDate, err := parseDatePtr(req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
			return
		}
		endDate, err := parseDatePtr(req.ExpectedEndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expected end date"})
			return
		}
		project.Name = req.Name
		project.Description = req.Description
		project.Address = customerAddressSnapshot(db, userID, req.CustomerID)
		project.StartDate = startDate
		project.ExpectedEndDate = endDate
		project.Status = req.Status
		project.CustomerID = req.CustomerID
		if err := db.Save(&project).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
			return
		}
		invalidateDashboardCache(rdb, userID) // Project distribution changed
		c.JSON(http.StatusOK, gin.H{"project": project})
	}
}

// DeleteProjectHandler hard-deletes a project; tasks go with it via the
// cascading foreign key
func DeleteProjectHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		res := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&domain.Project{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"project_id": c.Param("id"),
		}).Info("Project deleted")
		invalidateDashboardCache(rdb, userID) // Project distribution changed
		c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
	}
}
