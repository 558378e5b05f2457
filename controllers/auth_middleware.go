package controllers

import (
	"net/http"
	"strings"

	"ecclesia/authz"
	dbpkg "ecclesia/db"
	"ecclesia/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ctxUserKey = "auth_user"
const ctxPrincipalKey = "auth_principal"

// AuthRequired valida o Bearer token, carrega o usuário do banco e monta o
// Principal no contexto. Todos os gates (papel, permissão, feature) assumem
// que este middleware já rodou; sem principal eles negam com
// AuthenticationRequired.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			RespondDenial(c, http.StatusUnauthorized, authz.AuthenticationRequired())
			c.Abort()
			return
		}
		raw := strings.TrimSpace(h[len("Bearer "):])
		claims, err := parseAuthToken(raw)
		if err != nil {
			RespondDenial(c, http.StatusUnauthorized, authz.AuthenticationRequired())
			c.Abort()
			return
		}

		userID := int64FromClaim(claims, "sub")
		if userID <= 0 {
			RespondDenial(c, http.StatusUnauthorized, authz.AuthenticationRequired())
			c.Abort()
			return
		}

		db := dbpkg.DBInstance(c)
		if db == nil {
			RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
			c.Abort()
			return
		}
		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			RespondDenial(c, http.StatusUnauthorized, authz.AuthenticationRequired())
			c.Abort()
			return
		}

		principal := authz.Principal{
			UserID:           user.ID,
			Role:             stringFromClaim(claims, "role"),
			MemberID:         optionalInt64FromClaim(claims, "member_id"),
			TokenPermissions: permsFromClaims(claims),
			Claims:           claims,
		}
		if principal.Role == "" {
			principal.Role = models.MEMBER_ROLE_MEMBRO
		}

		c.Set(ctxUserKey, user)
		SetPrincipal(c, principal)
		c.Next()
	}
}

// GetUserLogged returns the user loaded by AuthRequired.
func GetUserLogged(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// GetPrincipal returns the principal built by AuthRequired.
func GetPrincipal(c *gin.Context) (authz.Principal, bool) {
	v, ok := c.Get(ctxPrincipalKey)
	if !ok {
		return authz.Principal{}, false
	}
	p, ok := v.(authz.Principal)
	return p, ok
}

// SetPrincipal attaches a principal to the request context. Exposto também
// para os testes dos gates montarem cenários sem passar pelo token.
func SetPrincipal(c *gin.Context, p authz.Principal) {
	c.Set(ctxPrincipalKey, p)
}

// int64FromClaim lê números vindos do JSON (float64) ou re-assinados em teste (int64).
func int64FromClaim(claims jwt.MapClaims, key string) int64 {
	switch v := claims[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

func optionalInt64FromClaim(claims jwt.MapClaims, key string) *int64 {
	if _, ok := claims[key]; !ok {
		return nil
	}
	n := int64FromClaim(claims, key)
	if n <= 0 {
		return nil
	}
	return &n
}

func stringFromClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

// permsFromClaims extrai o snapshot de permissões do token. Claim ausente ou
// malformada devolve nil (conjunto inutilizável -> ConfigurationError no
// gate); claim presente e vazia devolve slice vazio (conjunto válido sem
// nenhuma permissão).
func permsFromClaims(claims jwt.MapClaims) []string {
	raw, ok := claims["perms"]
	if !ok {
		return nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}
