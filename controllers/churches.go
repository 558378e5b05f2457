package controllers

import (
	"net/http"

	dbpkg "ecclesia/db"
	"ecclesia/models"

	"github.com/gin-gonic/gin"
)

type CreateChurchRequest struct {
	Name     string `json:"name" form:"name"`
	Document string `json:"document" form:"document"`
	City     string `json:"city" form:"city"`
	State    string `json:"state" form:"state"`
}

// POST /api/churches (validated)
// Onboarding: cria a igreja, a filial sede e o vínculo ADMINGERAL do usuário
// logado, tudo na mesma transação. Quem cria a igreja é o admin geral dela.
func CreateChurch(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateChurchRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		RespondError(c, "name é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	// Um usuário só administra uma igreja: se já é membro de alguma, bloqueia.
	var existing models.Member
	if err := db.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
		RespondError(c, "usuário já vinculado a uma igreja", http.StatusBadRequest)
		return
	}

	church := models.Church{
		Name:     req.Name,
		Document: req.Document,
		City:     req.City,
		State:    req.State,
	}

	tx := db.Begin()
	if err := tx.Create(&church).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	branch := models.Branch{ChurchID: church.ID, Name: "Sede"}
	if err := tx.Create(&branch).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	member := models.Member{
		UserID:   user.ID,
		BranchID: branch.ID,
		Role:     models.MEMBER_ROLE_ADMINGERAL,
	}
	if err := tx.Create(&member).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"church": church, "branch": branch, "member": member})
}

// GET /api/churches/:id (admin)
func GetChurchByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var church models.Church
	if err := db.First(&church, id).Error; err != nil {
		RespondError(c, "igreja não encontrada", http.StatusNotFound)
		return
	}

	var branches []models.Branch
	if err := db.Where("church_id = ?", church.ID).Order("id asc").Find(&branches).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"church": church, "branches": branches})
}

type CreateBranchRequest struct {
	ChurchID int64  `json:"church_id" form:"church_id"`
	Name     string `json:"name" form:"name"`
	Address  string `json:"address" form:"address"`
}

// POST /api/branches (admin, feature "branches")
// Respeita o limite max_branches do plano efetivo (anexado pelo FeatureGate).
func CreateBranch(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ChurchID <= 0 || req.Name == "" {
		RespondError(c, "church_id e name são obrigatórios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := db.First(&models.Church{}, req.ChurchID).Error; err != nil {
		RespondError(c, "igreja não encontrada", http.StatusNotFound)
		return
	}

	// Limite do plano: nulo = ilimitado.
	if ent, ok := GetEntitlements(c); ok && ent.MaxBranches != nil {
		var count int64
		if err := db.Model(&models.Branch{}).Where("church_id = ?", req.ChurchID).Count(&count).Error; err != nil {
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
		if count >= *ent.MaxBranches {
			RespondError(c, "limite de filiais do plano atingido", http.StatusForbidden)
			return
		}
	}

	branch := models.Branch{ChurchID: req.ChurchID, Name: req.Name, Address: req.Address}
	if err := db.Create(&branch).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"branch": branch})
}
