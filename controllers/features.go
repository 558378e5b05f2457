package controllers

import (
	"errors"
	"net/http"

	dbpkg "ecclesia/db"
	"ecclesia/entitlements"

	"github.com/gin-gonic/gin"
)

// GET /api/features
// Catálogo de features reconhecidas (id + label), na ordem canônica.
func GetFeatures(c *gin.Context) {
	RespondSuccess(c, gin.H{"features": entitlements.Features()})
}

// GET /api/me/entitlements
// Resolve os entitlements efetivos do usuário logado (plano próprio ou
// herdado do ADMINGERAL da igreja). Sempre recalculado, nunca cacheado.
func GetMyEntitlements(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	ent, err := entitlements.NewResolver(db).GetEntitlements(p.UserID)
	if err != nil {
		if errors.Is(err, entitlements.ErrUserNotFound) {
			RespondError(c, err.Error(), http.StatusNotFound)
			return
		}
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"entitlements": ent})
}
