package domain

import (
	"database/sql/driver" // Valuer/Scanner interfaces
	"encoding/json"       // JSON encoding for the photo URL list
	"errors"              // Error values
	"time"

	"github.com/shopspring/decimal" // Exact decimal arithmetic for money
)

// Task status values (kanban columns)
const (
	TaskStatusTodo  = "todo"  // To do
	TaskStatusDoing = "doing" // In progress
	TaskStatusDone  = "done"  // Done
)

// MaxTaskPhotos is the photo attachment limit per task
const MaxTaskPhotos = 5

// StringList stores a JSON array of strings in a single column
type StringList []string

// Value marshals the list for storage
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil // Empty list stored as empty JSON array
	}
	b, err := json.Marshal(l)
	return string(b), err
}

// Scan unmarshals the stored JSON back into the list
func (l *StringList) Scan(v any) error {
	switch data := v.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(data, l)
	case string:
		return json.Unmarshal([]byte(data), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// Task Model
type Task struct {
	ID           uint            `gorm:"primaryKey" json:"id"`                     // Primary key
	ProjectID    uint            `gorm:"index;not null" json:"project_id"`         // Owning project
	Title        string          `gorm:"not null" json:"title"`                    // Task title, required
	Description  string          `gorm:"type:text" json:"description"`             // Free-text description
	Status       string          `gorm:"default:todo" json:"status"`               // todo, doing or done
	ExpectedDate *time.Time      `gorm:"type:date" json:"expected_date"`           // Expected completion date
	ActualDate   *time.Time      `gorm:"type:date" json:"actual_date"`             // Actual completion date
	Cost         decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"cost"` // Monetary cost
	OrderIndex   int             `gorm:"default:0" json:"order_index"`             // Ordering index within the board
	PhotoURLs    StringList      `gorm:"type:json" json:"photo_urls"`              // Up to MaxTaskPhotos uploaded photo URLs
	CreatedAt    time.Time       `json:"created_at"`                               // Timestamp of creation
	UpdatedAt    time.Time       `json:"updated_at"`                               // Timestamp of last update
}

// ValidTaskStatus reports whether s is a known task status
func ValidTaskStatus(s string) bool {
	return s == TaskStatusTodo || s == TaskStatusDoing || s == TaskStatusDone
}
