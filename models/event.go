package models

import "time"

// Event representa um evento da agenda da igreja (culto, conferência, célula).
type Event struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	BranchID    int64      `gorm:"not null;index" json:"branch_id" form:"branch_id"`
	Title       string     `gorm:"not null" json:"title" form:"title"`
	Description string     `gorm:"type:text" json:"description" form:"description"`
	Location    string     `gorm:"default:''" json:"location" form:"location"`
	StartsAt    *time.Time `gorm:"index" json:"starts_at" form:"starts_at"`
	EndsAt      *time.Time `json:"ends_at" form:"ends_at"`
	CreatedBy   int64      `gorm:"not null;default:0" json:"created_by"` // member id
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
