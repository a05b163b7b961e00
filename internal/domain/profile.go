package domain

// Profile Model
type Profile struct {
	ID          uint   `gorm:"primaryKey" json:"id"`        // Primary key
	UserID      uint   `gorm:"uniqueIndex" json:"user_id"`  // Foreign key to User
	DisplayName string `json:"display_name"`                // Display name shown in the app
	AvatarURL   string `gorm:"type:text" json:"avatar_url"` // Public URL of the uploaded avatar
}
