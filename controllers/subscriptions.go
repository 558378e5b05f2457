package controllers

import (
	"net/http"
	"time"

	dbpkg "ecclesia/db"
	"ecclesia/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type PurchaseSubscriptionRequest struct {
	PlanID int64 `json:"plan_id" form:"plan_id"`
}

// POST /api/subscriptions/purchase (validated)
// Cria uma assinatura ativa do usuário logado para o plano. A cobrança em si
// é externa; aqui só registramos o vínculo com started_at = agora.
func PurchaseSubscription(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req PurchaseSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PlanID <= 0 {
		RespondError(c, "plan_id é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var plan models.Plan
	if err := db.First(&plan, req.PlanID).Error; err != nil {
		RespondError(c, "plano não encontrado", http.StatusNotFound)
		return
	}
	if !plan.IsActive {
		RespondError(c, "plano não está disponível para contratação", http.StatusBadRequest)
		return
	}

	var existing models.Subscription
	err := db.
		Where("user_id = ? AND status = ?", user.ID, models.SUBSCRIPTION_STATUS_ACTIVE).
		First(&existing).Error
	if err == nil {
		RespondError(c, "usuário já possui assinatura ativa", http.StatusBadRequest)
		return
	}
	if !gorm.IsRecordNotFoundError(err) {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	sub := models.Subscription{
		UserID:    user.ID,
		PlanID:    plan.ID,
		Status:    models.SUBSCRIPTION_STATUS_ACTIVE,
		StartedAt: time.Now(),
	}
	if err := db.Create(&sub).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"subscription": sub})
}

// POST /api/subscriptions/cancel (validated)
// Cancela a assinatura ativa do usuário logado. A revogação de entitlements é
// imediata na próxima resolução (não há cache).
func CancelSubscription(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var sub models.Subscription
	err := db.
		Where("user_id = ? AND status = ?", user.ID, models.SUBSCRIPTION_STATUS_ACTIVE).
		Order("started_at desc").
		First(&sub).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondError(c, "usuário não possui assinatura ativa", http.StatusNotFound)
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	sub.Status = models.SUBSCRIPTION_STATUS_CANCELED
	sub.CanceledAt = &now
	if err := db.Save(&sub).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, true)
}

// GET /api/subscriptions (validated)
// Histórico de assinaturas do usuário logado, mais recente primeiro.
func GetMySubscriptions(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var subs []models.Subscription
	if err := db.Where("user_id = ?", user.ID).Order("started_at desc").Find(&subs).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"subscriptions": subs})
}
