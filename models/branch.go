package models

import "time"

// Branch representa uma filial/congregação de uma igreja.
type Branch struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ChurchID  int64      `gorm:"not null;index" json:"church_id" form:"church_id"`
	Name      string     `gorm:"not null" json:"name" form:"name"`
	Address   string     `gorm:"default:''" json:"address" form:"address"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
