package models

import "time"

// PlanFeature liga features a planos (N:N com o catálogo do pacote entitlements).
// A criação/edição de plano só grava ids reconhecidos pelo catálogo; linhas legadas
// fora do catálogo podem existir via migração e são filtradas na leitura.
type PlanFeature struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	PlanID    int64      `gorm:"not null;index;unique_index:ux_plan_feature" json:"plan_id"`
	Feature   string     `gorm:"not null;unique_index:ux_plan_feature" json:"feature"`
	CreatedAt *time.Time `json:"created_at"`
}
