package controllers

import (
	"net/http"

	"ecclesia/authz"
	dbpkg "ecclesia/db"
	"ecclesia/entitlements"
	"ecclesia/models"

	"github.com/gin-gonic/gin"
)

type PlanPayload struct {
	Name        string   `json:"name" form:"name"`
	Code        string   `json:"code" form:"code"`
	Description string   `json:"description" form:"description"`
	PriceCents  int64    `json:"price_cents" form:"price_cents"`
	Currency    string   `json:"currency" form:"currency"`
	Interval    string   `json:"interval" form:"interval"`
	MaxMembers  *int64   `json:"max_members" form:"max_members"`
	MaxBranches *int64   `json:"max_branches" form:"max_branches"`
	Features    []string `json:"features" form:"features"`
}

// respondInvalidFeatures nega a criação/edição com erro de configuração,
// nomeando os ids ofensores e listando os válidos. Contrato duro: plano
// nunca persiste feature fora do catálogo por esta API.
func respondInvalidFeatures(c *gin.Context, invalid []string) {
	denial := authz.ConfigurationError("features não reconhecidas no catálogo")
	denial.Detail = map[string]interface{}{
		"invalid_features": invalid,
		"valid_features":   entitlements.FeatureIDs(),
	}
	RespondDenial(c, http.StatusUnprocessableEntity, denial)
}

// GET /api/plans
func GetPlans(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var plans []models.Plan
	if err := db.Order("id asc").Find(&plans).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"plans": plans})
}

// GET /api/plans/:id
func GetPlanByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var plan models.Plan
	if err := db.First(&plan, id).Error; err != nil {
		RespondError(c, "plano não encontrado", http.StatusNotFound)
		return
	}

	var links []models.PlanFeature
	if err := db.Where("plan_id = ?", plan.ID).Order("id asc").Find(&links).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	features := make([]string, 0, len(links))
	for _, l := range links {
		features = append(features, l.Feature)
	}

	RespondSuccess(c, gin.H{"plan": plan, "features": features})
}

// POST /api/plans (admin)
func CreatePlan(c *gin.Context) {
	var payload PlanPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Name == "" {
		RespondError(c, "name é obrigatório", http.StatusBadRequest)
		return
	}

	valid, invalid := entitlements.ValidateAndNormalize(payload.Features)
	if len(invalid) > 0 {
		respondInvalidFeatures(c, invalid)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	plan := models.Plan{
		Name:        payload.Name,
		Code:        payload.Code,
		Description: payload.Description,
		PriceCents:  payload.PriceCents,
		MaxMembers:  payload.MaxMembers,
		MaxBranches: payload.MaxBranches,
		IsActive:    true,
	}
	if payload.Currency != "" {
		plan.Currency = payload.Currency
	}
	if payload.Interval != "" {
		plan.Interval = payload.Interval
	}

	tx := db.Begin()
	if err := tx.Create(&plan).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	for _, feature := range valid {
		link := models.PlanFeature{PlanID: plan.ID, Feature: feature}
		if err := tx.Create(&link).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"plan": plan, "features": valid})
}

// PUT /api/plans/:id (admin)
func UpdatePlan(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var payload PlanPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var plan models.Plan
	if err := db.First(&plan, id).Error; err != nil {
		RespondError(c, "plano não encontrado", http.StatusNotFound)
		return
	}

	// Features só são tocadas quando o payload manda a lista; lista enviada
	// substitui o conjunto inteiro (e passa pela mesma validação da criação).
	var newFeatures []string
	replaceFeatures := payload.Features != nil
	if replaceFeatures {
		valid, invalid := entitlements.ValidateAndNormalize(payload.Features)
		if len(invalid) > 0 {
			respondInvalidFeatures(c, invalid)
			return
		}
		newFeatures = valid
	}

	if payload.Name != "" {
		plan.Name = payload.Name
	}
	if payload.Code != "" {
		plan.Code = payload.Code
	}
	plan.Description = payload.Description
	if payload.PriceCents >= 0 {
		plan.PriceCents = payload.PriceCents
	}
	if payload.Currency != "" {
		plan.Currency = payload.Currency
	}
	if payload.Interval != "" {
		plan.Interval = payload.Interval
	}
	if payload.MaxMembers != nil {
		plan.MaxMembers = payload.MaxMembers
	}
	if payload.MaxBranches != nil {
		plan.MaxBranches = payload.MaxBranches
	}

	tx := db.Begin()
	if err := tx.Save(&plan).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if replaceFeatures {
		if err := tx.Delete(&models.PlanFeature{}, "plan_id = ?", plan.ID).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
		for _, feature := range newFeatures {
			link := models.PlanFeature{PlanID: plan.ID, Feature: feature}
			if err := tx.Create(&link).Error; err != nil {
				tx.Rollback()
				RespondError(c, err.Error(), http.StatusBadRequest)
				return
			}
		}
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"plan": plan})
}

// DELETE /api/plans/:id (admin)
func DeletePlan(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	tx := db.Begin()
	if err := tx.Delete(&models.PlanFeature{}, "plan_id = ?", id).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Delete(&models.Plan{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}
