package api

import (
	"fmt"                          // Avatar object naming
	"net/http"                     // HTTP status codes
	"obra_system/internal/domain"  // Importing domain models
	"obra_system/internal/storage" // Avatar object storage
	"path/filepath"                // File extension extraction
	"strings"                      // Email normalization

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Unique avatar object names
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// ProfileRequest carries the editable profile fields
type ProfileRequest struct {
	DisplayName string `json:"display_name"`
}

// EmailChangeRequest carries an email change
type EmailChangeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordChangeRequest carries a password change guarded by the current one
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// userProfile fetches the authenticated user's profile row
func userProfile(c *gin.Context, db *gorm.DB, userID uint) (*domain.Profile, bool) {
	var profile domain.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return nil, false
	}
	return &profile, true
}

// GetProfileHandler returns the authenticated user's profile and email
func GetProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var user domain.User // Fetch user with profile preloaded
		if err := db.Preload("Profile").First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"email":   user.Email,
			"profile": user.Profile,
		})
	}
}

// UpdateProfileHandler updates the display name
func UpdateProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		profile, ok := userProfile(c, db, userID)
		if !ok {
			return
		}
		var req ProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		profile.DisplayName = req.DisplayName
		if err := db.Save(profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": profile})
	}
}

// UploadAvatarHandler stores an avatar image and records its URL on the
// profile. The previous avatar object is removed after the write.
func UploadAvatarHandler(db *gorm.DB, store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		profile, ok := userProfile(c, db, userID)
		if !ok {
			return
		}
		header, err := c.FormFile("avatar")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar file is required"})
			return
		}
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read avatar"})
			return
		}
		defer f.Close()
		ext := strings.ToLower(filepath.Ext(header.Filename))
		name := fmt.Sprintf("avatars/%s%s", uuid.NewString(), ext)
		url, err := store.Upload(name, f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
			return
		}
		previous := profile.AvatarURL
		profile.AvatarURL = url
		if err := db.Save(profile).Error; err != nil {
			unstagePhotos(store, []string{url}) // Compensate the upload
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		if previous != "" {
			unstagePhotos(store, []string{previous}) // Drop the replaced object
		}
		c.JSON(http.StatusOK, gin.H{"profile": profile})
	}
}

// UpdateEmailHandler changes the account email
func UpdateEmailHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req EmailChangeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		user.Email = strings.ToLower(req.Email)
		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		logrus.WithField("user_id", userID).Info("Email updated")
		c.JSON(http.StatusOK, gin.H{"message": "Email updated"})
	}
}

// UpdatePasswordHandler changes the account password after checking the
// current one
func UpdatePasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req PasswordChangeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Current and new passwords are required"})
			return
		}
		if !isValidPassword(req.NewPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-72 characters"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user.Password = string(hash)
		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
			return
		}
		logrus.WithField("user_id", userID).Info("Password updated")
		c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
	}
}
