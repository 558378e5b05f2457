package controllers

import (
	"net/http"

	dbpkg "ecclesia/db"
	"ecclesia/models"

	"github.com/gin-gonic/gin"
)

type CreateMemberRequest struct {
	UserID   int64  `json:"user_id" form:"user_id"`
	BranchID int64  `json:"branch_id" form:"branch_id"`
	Role     string `json:"role" form:"role"`
}

// POST /api/members (admin, feature "members")
// Vincula um usuário a uma filial. Respeita o limite max_members do plano
// efetivo, contado sobre a igreja inteira (todas as filiais).
func CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID <= 0 || req.BranchID <= 0 {
		RespondError(c, "user_id e branch_id são obrigatórios", http.StatusBadRequest)
		return
	}
	if req.Role == "" {
		req.Role = models.MEMBER_ROLE_MEMBRO
	}
	if !models.IsValidMemberRole(req.Role) {
		RespondError(c, "role inválido", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := db.First(&models.User{}, req.UserID).Error; err != nil {
		RespondError(c, "usuário não encontrado", http.StatusNotFound)
		return
	}
	var branch models.Branch
	if err := db.First(&branch, req.BranchID).Error; err != nil {
		RespondError(c, "filial não encontrada", http.StatusNotFound)
		return
	}

	var existing models.Member
	if err := db.Where("user_id = ?", req.UserID).First(&existing).Error; err == nil {
		RespondError(c, "usuário já vinculado a uma igreja", http.StatusBadRequest)
		return
	}

	// Limite do plano: nulo = ilimitado. Conta membros da igreja toda.
	if ent, ok := GetEntitlements(c); ok && ent.MaxMembers != nil {
		var count int64
		err := db.Model(&models.Member{}).
			Joins("JOIN branches ON branches.id = members.branch_id").
			Where("branches.church_id = ?", branch.ChurchID).
			Count(&count).Error
		if err != nil {
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
		if count >= *ent.MaxMembers {
			RespondError(c, "limite de membros do plano atingido", http.StatusForbidden)
			return
		}
	}

	member := models.Member{UserID: req.UserID, BranchID: req.BranchID, Role: req.Role}
	if err := db.Create(&member).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"member": member})
}

// GET /api/members?branch_id=123 (admin, feature "members")
func GetMembers(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var members []models.Member
	q := db.Order("id asc")
	if v := c.Query("branch_id"); v != "" {
		q = q.Where("branch_id = ?", v)
	}
	if err := q.Find(&members).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"members": members})
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" form:"role"`
}

// PUT /api/members/:id/role (admin, feature "members")
func UpdateMemberRole(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdateMemberRoleRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if !models.IsValidMemberRole(req.Role) {
		RespondError(c, "role inválido", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var member models.Member
	if err := db.First(&member, id).Error; err != nil {
		RespondError(c, "membro não encontrado", http.StatusNotFound)
		return
	}

	member.Role = req.Role
	if err := db.Save(&member).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"member": member})
}

// DELETE /api/members/:id (admin, feature "members")
func DeleteMember(c *gin.Context) {
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
	// Grants caem junto com o vínculo.
	if err := tx.Delete(&models.MemberPermission{}, "member_id = ?", id).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Delete(&models.Member{}, "id = ?", id).Error; err != nil {
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
