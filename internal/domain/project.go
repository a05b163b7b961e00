package domain

import "time"

// Project status values
const (
	ProjectStatusOrcamento   = "orcamento"    // Budgeting
	ProjectStatusEmAndamento = "em_andamento" // In progress
	ProjectStatusConcluida   = "concluida"    // Completed
)

// Project Model
type Project struct {
	ID              uint       `gorm:"primaryKey" json:"id"`                                                 // Primary key
	UserID          uint       `gorm:"index;not null" json:"user_id"`                                        // Owning user
	Name            string     `gorm:"not null" json:"name"`                                                 // Project name, required
	Description     string     `gorm:"type:text" json:"description"`                                         // Free-text description
	Address         string     `json:"address"`                                                              // Snapshot copied from the linked customer at write time
	StartDate       *time.Time `gorm:"type:date" json:"start_date"`                                          // Start date
	ExpectedEndDate *time.Time `gorm:"type:date" json:"expected_end_date"`                                   // Expected delivery date
	Status          string     `gorm:"default:orcamento" json:"status"`                                      // orcamento, em_andamento or concluida
	CustomerID      *uint      `json:"customer_id"`                                                          // Optional customer reference
	Tasks           []Task     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tasks,omitempty"` // Kanban tasks
	CreatedAt       time.Time  `json:"created_at"`                                                           // Timestamp of creation
	UpdatedAt       time.Time  `json:"updated_at"`                                                           // Timestamp of last update
}

// ValidProjectStatus reports whether s is a known project status
func ValidProjectStatus(s string) bool {
	return s == ProjectStatusOrcamento || s == ProjectStatusEmAndamento || s == ProjectStatusConcluida
}
