package models

import "time"

/************************************************
/**** MARK: MEMBER ROLES ****/
/************************************************/
const MEMBER_ROLE_ADMINGERAL = "ADMINGERAL"
const MEMBER_ROLE_ADMINFILIAL = "ADMINFILIAL"
const MEMBER_ROLE_COORDENADOR = "COORDENADOR"
const MEMBER_ROLE_MEMBRO = "MEMBRO"

// Member representa o vínculo de um User com uma filial (Branch) e o papel
// organizacional dele ali. Um usuário sem Member é uma conta sem vínculo
// com nenhuma igreja (ex: conta recém-criada).
type Member struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID    int64      `gorm:"not null;unique_index" json:"user_id" form:"user_id"`
	BranchID  int64      `gorm:"not null;index" json:"branch_id" form:"branch_id"`
	Role      string     `gorm:"not null;default:'MEMBRO';index" json:"role" form:"role"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`

	// Carregado sob demanda (resolver de entitlements).
	Branch *Branch `gorm:"foreignkey:BranchID" json:"branch,omitempty"`
}

func IsValidMemberRole(role string) bool {
	switch role {
	case MEMBER_ROLE_ADMINGERAL, MEMBER_ROLE_ADMINFILIAL, MEMBER_ROLE_COORDENADOR, MEMBER_ROLE_MEMBRO:
		return true
	}
	return false
}
