package controllers

import (
	"ecclesia/entitlements"

	"github.com/gin-gonic/gin"
)

const ctxEntitlementsKey = "entitlements"

// SetEntitlements anexa os entitlements resolvidos pelo FeatureGate ao
// contexto da requisição, para o handler não re-resolver.
func SetEntitlements(c *gin.Context, ent entitlements.Entitlements) {
	c.Set(ctxEntitlementsKey, ent)
}

// GetEntitlements devolve os entitlements anexados pelo FeatureGate, se houver.
func GetEntitlements(c *gin.Context) (entitlements.Entitlements, bool) {
	v, ok := c.Get(ctxEntitlementsKey)
	if !ok {
		return entitlements.Entitlements{}, false
	}
	ent, ok := v.(entitlements.Entitlements)
	return ent, ok
}
