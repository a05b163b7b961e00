package domain

// User Model
type User struct {
	ID       uint    `gorm:"primaryKey"`                                    // Primary key
	Email    string  `gorm:"unique;not null"`                               // Unique login email
	Password string  `gorm:"not null"`                                      // Hashed password
	Profile  Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // One-to-one relationship with Profile
}
