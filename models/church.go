package models

import "time"

// Church representa a organização (igreja). É a raiz da hierarquia de tenant:
// User -> Member -> Branch -> Church.
type Church struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name      string     `gorm:"not null" json:"name" form:"name"`
	Document  string     `gorm:"default:''" json:"document" form:"document"` // CNPJ
	City      string     `gorm:"default:''" json:"city" form:"city"`
	State     string     `gorm:"default:''" json:"state" form:"state"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
