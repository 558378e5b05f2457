package models

import "time"

// Plan representa um plano comercial que habilita um conjunto de features.
// As features ficam em plan_features (N:N com o catálogo fixo do pacote
// entitlements); limites nulos significam "sem limite".
type Plan struct {
	ID          int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name        string `gorm:"not null;unique" json:"name" form:"name"`
	Code        string `gorm:"default:''" json:"code" form:"code"` // ex: basico, crescimento, catedral
	Description string `gorm:"type:text" json:"description" form:"description"`
	PriceCents  int64  `gorm:"not null;default:0" json:"price_cents" form:"price_cents"`

	// Limites numéricos do plano. Ponteiro nulo = ilimitado.
	MaxMembers  *int64 `json:"max_members" form:"max_members"`
	MaxBranches *int64 `json:"max_branches" form:"max_branches"`

	Currency  string     `gorm:"not null;default:'BRL'" json:"currency" form:"currency"`
	Interval  string     `gorm:"not null;default:'monthly'" json:"interval" form:"interval"` // monthly|yearly|one_time
	IsActive  bool       `gorm:"not null;default:true" json:"is_active" form:"is_active"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
