package authz

import "ecclesia/models"

// IsElevated é a definição única da regra "papel administrativo dispensa
// checagem de permissão". Qualquer gate futuro que precise do bypass deve
// consultar esta função, nunca comparar strings inline.
func IsElevated(role string) bool {
	return role == models.MEMBER_ROLE_ADMINGERAL || role == models.MEMBER_ROLE_ADMINFILIAL
}
