package domain

import "time"

// Supplier Model
type Supplier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`            // Primary key
	UserID    uint      `gorm:"index;not null" json:"user_id"`   // Owning user
	Name      string    `gorm:"not null" json:"name"`            // Name / company name, required
	Email     string    `json:"email"`                           // Contact email
	Phone     string    `json:"phone"`                           // Contact phone
	CpfCnpj   string    `gorm:"column:cpf_cnpj" json:"cpf_cnpj"` // Tax id (CPF or CNPJ)
	Address   string    `json:"address"`                         // Street address
	City      string    `json:"city"`                            // City
	State     string    `gorm:"type:varchar(2)" json:"state"`    // State (UF)
	ZipCode   string    `json:"zip_code"`                        // Postal code (CEP)
	Notes     string    `gorm:"type:text" json:"notes"`          // Free-text notes
	CreatedAt time.Time `json:"created_at"`                      // Timestamp of creation
	UpdatedAt time.Time `json:"updated_at"`                      // Timestamp of last update
}
