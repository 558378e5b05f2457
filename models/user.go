package models

import (
	"ecclesia/tools"
	"time"
)

/************************************************
/**** MARK: USER STATUS ****/
/************************************************/
const USER_STATUS_AVAILABLE = 0
const USER_STATUS_PENDING = 1
const USER_STATUS_BLOCKED = 2

// User representa uma conta de acesso no sistema.
// A assinatura (Subscription) é ancorada no User, não no Member:
// quem paga é o dono da conta, os benefícios chegam aos membros via fallback.
type User struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name      string     `gorm:"not null" json:"name" form:"name"`
	Email     string     `gorm:"not null;unique" json:"email" form:"email"`
	Password  string     `gorm:"not null" json:"password" form:"password"`
	Phone     string     `gorm:"default:''" json:"phone" form:"phone"`
	Status    int        `gorm:"default:0" json:"status" form:"status"`
	CreatedAt *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" form:"updated_at"`

	// Carregado sob demanda pelo resolver de entitlements.
	Subscriptions []Subscription `gorm:"foreignkey:UserID" json:"subscriptions,omitempty"`
}

func (user User) MissingFields() string {
	if user.Name == "" {
		return "name"
	} else if user.Email == "" {
		return "email"
	} else if user.Password == "" {
		return "password"
	} else if tools.CheckPassword(user.Password) != "" {
		return tools.CheckPassword(user.Password)
	}
	return ""
}
