package router

import (
	"net/http"

	"ecclesia/authz"
	"ecclesia/controllers"
	dbpkg "ecclesia/db"
	"ecclesia/entitlements"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequireFeature blocks access unless the principal's resolved entitlements
// include the feature. Fail-closed: qualquer incerteza na resolução nega
// (authz.FeatureResolutionFailsClosed). Em sucesso, os entitlements ficam
// anexados ao contexto para o handler não re-resolver.
//
// Deve rodar depois do AuthRequired e, quando a feature condiciona a rota
// inteira, antes dos gates finos (não faz sentido checar permissão de algo
// que o plano nem cobre).
func RequireFeature(feature string) gin.HandlerFunc {
	return requireFeatures(feature)
}

// RequireAnyFeature é a variante any-of: basta uma das features estar no plano.
func RequireAnyFeature(features ...string) gin.HandlerFunc {
	return requireFeatures(features...)
}

func requireFeatures(features ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := controllers.GetPrincipal(c)
		if !ok {
			controllers.RespondDenial(c, http.StatusUnauthorized, authz.AuthenticationRequired())
			c.Abort()
			return
		}

		db := dbpkg.DBInstance(c)
		if db == nil {
			controllers.RespondDenial(c, http.StatusForbidden, authz.FeatureResolutionDenied(features))
			c.Abort()
			return
		}

		ent, err := entitlements.NewResolver(db).GetEntitlements(p.UserID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": p.UserID,
				"error":   err.Error(),
			}).Warn("falha ao resolver entitlements; negando acesso")
			controllers.RespondDenial(c, http.StatusForbidden, authz.FeatureResolutionDenied(features))
			c.Abort()
			return
		}

		if !ent.HasAnyFeature(features...) {
			controllers.RespondDenial(c, http.StatusForbidden, authz.FeatureUnavailable(features))
			c.Abort()
			return
		}

		controllers.SetEntitlements(c, ent)
		c.Next()
	}
}
