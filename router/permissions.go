package router

import (
	"net/http"

	"ecclesia/authz"
	"ecclesia/controllers"
	dbpkg "ecclesia/db"
	"ecclesia/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequirePermissions blocks access unless the principal holds ALL of the
// required permissions (AND, não any-of).
//
// Ordem de resolução do conjunto efetivo:
//  1. papel elevado (authz.IsElevated) concede direto, sem olhar grants;
//  2. membro com store saudável: grants vivos mandam, MESMO vazios —
//     revogação vale já, sem esperar re-login;
//  3. falha de store: degrada para o snapshot do token (logado, não nega
//     por si só) — ver authz.PermissionResolutionDegradesToToken;
//  4. sem member_id: snapshot do token direto.
//
// Snapshot nil (token fora do contrato) nega com ConfigurationError, que é
// diferente de negar por permissão insuficiente.
func RequirePermissions(perms ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := controllers.GetPrincipal(c)
		if !ok {
			controllers.RespondDenial(c, http.StatusUnauthorized, authz.AuthenticationRequired())
			c.Abort()
			return
		}

		if authz.IsElevated(p.Role) {
			c.Next()
			return
		}

		held := resolveHeldPermissions(c, p)
		if held == nil {
			controllers.RespondDenial(c, http.StatusInternalServerError,
				authz.ConfigurationError("conjunto de permissões do principal é inutilizável"))
			c.Abort()
			return
		}

		missing := []string{}
		for _, required := range perms {
			found := false
			for _, h := range held {
				if h == required {
					found = true
					break
				}
			}
			if !found {
				missing = append(missing, required)
			}
		}

		if len(missing) > 0 {
			controllers.RespondDenial(c, http.StatusForbidden, authz.InsufficientPermission(perms, held))
			c.Abort()
			return
		}

		c.Next()
	}
}

// resolveHeldPermissions devolve o conjunto efetivo de permissões do
// principal, preferindo o dado vivo do banco e caindo para o snapshot do
// token só em falha de infraestrutura. Devolve nil quando não há conjunto
// utilizável nenhum.
func resolveHeldPermissions(c *gin.Context, p authz.Principal) []string {
	if !p.HasMember() {
		return p.TokenPermissions
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		logrus.WithFields(logrus.Fields{
			"user_id":   p.UserID,
			"member_id": *p.MemberID,
		}).Warn("db indisponível no contexto; usando snapshot de permissões do token")
		return p.TokenPermissions
	}

	var grants []models.MemberPermission
	if err := db.Where("member_id = ?", *p.MemberID).Find(&grants).Error; err != nil {
		// Modo degradado: store falhou, snapshot defasado é melhor que
		// indisponibilidade total. A falha fica registrada para auditoria.
		logrus.WithFields(logrus.Fields{
			"user_id":   p.UserID,
			"member_id": *p.MemberID,
			"error":     err.Error(),
		}).Warn("falha ao carregar grants vivos; usando snapshot de permissões do token")
		return p.TokenPermissions
	}

	held := make([]string, 0, len(grants))
	for _, g := range grants {
		held = append(held, g.Permission)
	}
	return held
}
