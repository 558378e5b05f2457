package authz

import "github.com/golang-jwt/jwt/v5"

// Principal é o ator autenticado da requisição corrente. É montado uma vez
// pelo AuthRequired (controllers) e só lido daqui pra frente.
//
// TokenPermissions é o snapshot de permissões embutido no token no momento
// da emissão. Pode estar defasado em relação ao banco; os gates preferem o
// dado vivo e só caem para esse snapshot em falha de infraestrutura.
// Um snapshot nil (claim ausente/malformada) é diferente de um snapshot
// vazio: nil indica token fora do contrato e vira ConfigurationError.
type Principal struct {
	UserID           int64
	Role             string
	MemberID         *int64
	TokenPermissions []string
	Claims           jwt.MapClaims
}

// HasMember indica se o principal tem vínculo com uma igreja.
func (p Principal) HasMember() bool {
	return p.MemberID != nil && *p.MemberID > 0
}
