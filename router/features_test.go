package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecclesia/authz"
	"ecclesia/controllers"
	dbpkg "ecclesia/db"
	"ecclesia/entitlements"
	"ecclesia/models"
	"ecclesia/router"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSubscriber cria usuário com assinatura ativa num plano com as features
// informadas e devolve o id do usuário.
func seedSubscriber(t *testing.T, db *gorm.DB, features ...string) int64 {
	t.Helper()
	u := &models.User{Name: "assinante", Email: "assinante@igreja.com", Password: "x", Status: models.USER_STATUS_AVAILABLE}
	require.NoError(t, db.Create(u).Error)
	p := &models.Plan{Name: "plano-teste", Code: "plano-teste", Currency: "BRL", Interval: "month", IsActive: true}
	require.NoError(t, db.Create(p).Error)
	for _, f := range features {
		require.NoError(t, db.Create(&models.PlanFeature{PlanID: p.ID, Feature: f}).Error)
	}
	s := &models.Subscription{UserID: u.ID, PlanID: p.ID, Status: models.SUBSCRIPTION_STATUS_ACTIVE, StartedAt: time.Now()}
	require.NoError(t, db.Create(s).Error)
	return u.ID
}

func TestRequireFeatureAllowsAndAttachesEntitlements(t *testing.T) {
	db := openGateDB(t)
	userID := seedSubscriber(t, db, "finances", "events")

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(db))
	r.Use(func(c *gin.Context) {
		controllers.SetPrincipal(c, authz.Principal{UserID: userID, Role: models.MEMBER_ROLE_MEMBRO})
		c.Next()
	})
	r.GET("/guarded", router.RequireFeature("finances"), func(c *gin.Context) {
		ent, ok := controllers.GetEntitlements(c)
		require.True(t, ok, "gate deve anexar entitlements ao contexto")
		c.JSON(http.StatusOK, gin.H{"resolved_from": ent.ResolvedFrom, "features": ent.Features})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		ResolvedFrom string   `json:"resolved_from"`
		Features     []string `json:"features"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, entitlements.RESOLVED_FROM_SELF, body.ResolvedFrom)
	assert.Equal(t, []string{"events", "finances"}, body.Features)
}

func TestRequireFeatureDeniesWhenPlanLacksIt(t *testing.T) {
	db := openGateDB(t)
	userID := seedSubscriber(t, db, "events")
	p := &authz.Principal{UserID: userID, Role: models.MEMBER_ROLE_MEMBRO}

	w := performGate(t, db, p, router.RequireFeature("devotionals"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	d := decodeDenial(t, w)
	assert.Equal(t, authz.DenialFeatureUnavailable, d.Kind)
	assert.Equal(t, []interface{}{"devotionals"}, d.Detail["required"])
	assert.NotContains(t, d.Detail, "cause")
}

func TestRequireFeatureDeniesWithoutAnyPlan(t *testing.T) {
	db := openGateDB(t)
	u := &models.User{Name: "sem plano", Email: "semplano@igreja.com", Password: "x", Status: models.USER_STATUS_AVAILABLE}
	require.NoError(t, db.Create(u).Error)
	p := &authz.Principal{UserID: u.ID, Role: models.MEMBER_ROLE_MEMBRO}

	w := performGate(t, db, p, router.RequireFeature("events"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, authz.DenialFeatureUnavailable, decodeDenial(t, w).Kind)
}

func TestRequireAnyFeature(t *testing.T) {
	db := openGateDB(t)
	userID := seedSubscriber(t, db, "events")
	p := &authz.Principal{UserID: userID, Role: models.MEMBER_ROLE_MEMBRO}

	w := performGate(t, db, p, router.RequireAnyFeature("devotionals", "events"))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireFeatureFailsClosedOnResolverError(t *testing.T) {
	db := openGateDB(t)
	// Principal apontando para usuário inexistente: resolução falha e o gate
	// nega em vez de deixar passar.
	p := &authz.Principal{UserID: 99999, Role: models.MEMBER_ROLE_MEMBRO}

	w := performGate(t, db, p, router.RequireFeature("events"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	d := decodeDenial(t, w)
	assert.Equal(t, authz.DenialFeatureUnavailable, d.Kind)
	assert.Equal(t, authz.DenialResolutionFailed, d.Detail["cause"])
}

func TestRequireFeatureFailsClosedWithoutDB(t *testing.T) {
	p := &authz.Principal{UserID: 1, Role: models.MEMBER_ROLE_MEMBRO}

	w := performGate(t, nil, p, router.RequireFeature("events"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, authz.DenialResolutionFailed, decodeDenial(t, w).Detail["cause"])
}

func TestRequireFeatureWithoutPrincipal(t *testing.T) {
	db := openGateDB(t)

	w := performGate(t, db, nil, router.RequireFeature("events"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, authz.DenialAuthenticationRequired, decodeDenial(t, w).Kind)
}
