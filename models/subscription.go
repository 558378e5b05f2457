package models

import "time"

/************************************************
/**** MARK: SUBSCRIPTION STATUS ****/
/************************************************/
const SUBSCRIPTION_STATUS_ACTIVE = "active"
const SUBSCRIPTION_STATUS_CANCELED = "canceled"
const SUBSCRIPTION_STATUS_EXPIRED = "expired"

// Subscription representa o vínculo "usuário -> plano" com ciclo de vida.
// Um usuário pode acumular assinaturas ao longo do tempo; para efeito de
// entitlements só interessa a mais recente com status "active".
type Subscription struct {
	ID         int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID     int64      `gorm:"not null;index" json:"user_id"`
	PlanID     int64      `gorm:"not null;index" json:"plan_id"`
	Status     string     `gorm:"not null;default:'active';index" json:"status"`
	StartedAt  time.Time  `gorm:"not null;index" json:"started_at"`
	CanceledAt *time.Time `json:"canceled_at"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}
