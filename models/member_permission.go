package models

import "time"

// MemberPermission liga um Member a uma permissão pontual (string aberta).
// Diferente das features de plano, permissões não passam por um registro fechado:
// o conjunto é extensível sem migração. Os call sites usam as constantes do
// pacote authz para não espalhar strings soltas.
type MemberPermission struct {
	ID         int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	MemberID   int64      `gorm:"not null;index;unique_index:ux_member_permission" json:"member_id"`
	Permission string     `gorm:"not null;unique_index:ux_member_permission" json:"permission"`
	CreatedAt  *time.Time `json:"created_at"`
}
