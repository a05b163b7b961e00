package domain

import (
	"time"

	"github.com/shopspring/decimal" // Exact decimal arithmetic for money
)

// Employee Model
type Employee struct {
	ID        uint             `gorm:"primaryKey" json:"id"`             // Primary key
	UserID    uint             `gorm:"index;not null" json:"user_id"`    // Owning user
	Name      string           `gorm:"not null" json:"name"`             // Full name, required
	Cpf       string           `json:"cpf"`                              // Tax id (CPF)
	Email     string           `json:"email"`                            // Contact email
	Phone     string           `json:"phone"`                            // Contact phone
	Address   string           `json:"address"`                          // Street address
	City      string           `json:"city"`                             // City
	State     string           `gorm:"type:varchar(2)" json:"state"`     // State (UF)
	ZipCode   string           `json:"zip_code"`                         // Postal code (CEP)
	Role      string           `json:"role"`                             // Job title
	Salary    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"salary"` // Monthly salary, nullable
	Notes     string           `gorm:"type:text" json:"notes"`           // Free-text notes
	CreatedAt time.Time        `json:"created_at"`                       // Timestamp of creation
	UpdatedAt time.Time        `json:"updated_at"`                       // Timestamp of last update
}
