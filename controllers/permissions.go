package controllers

import (
	"net/http"

	dbpkg "ecclesia/db"
	"ecclesia/models"

	"github.com/gin-gonic/gin"
)

type MemberPermissionPayload struct {
	MemberID   int64  `json:"member_id" form:"member_id"`
	Permission string `json:"permission" form:"permission"`
}

// POST /api/member-permissions (admin)
// Concede uma permissão pontual a um membro. O efeito é imediato para o gate
// de permissões (dado vivo manda); o snapshot do token só muda no próximo login.
func AddPermissionToMember(c *gin.Context) {
	var payload MemberPermissionPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if payload.MemberID <= 0 || payload.Permission == "" {
		RespondError(c, "member_id e permission são obrigatórios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := db.First(&models.Member{}, payload.MemberID).Error; err != nil {
		RespondError(c, "membro não encontrado", http.StatusNotFound)
		return
	}

	var existing models.MemberPermission
	if err := db.
		Where("member_id = ? AND permission = ?", payload.MemberID, payload.Permission).
		First(&existing).Error; err == nil {
		RespondSuccess(c, gin.H{"status": "already_granted"})
		return
	}

	grant := models.MemberPermission{
		MemberID:   payload.MemberID,
		Permission: payload.Permission,
	}

	if err := db.Create(&grant).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"status": "granted", "grant": grant})
}

// DELETE /api/member-permissions (admin)
// Revoga a permissão. Revogação vale já na próxima requisição do membro,
// sem esperar re-autenticação.
func RemovePermissionFromMember(c *gin.Context) {
	var payload MemberPermissionPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if payload.MemberID <= 0 || payload.Permission == "" {
		RespondError(c, "member_id e permission são obrigatórios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := db.
		Delete(&models.MemberPermission{}, "member_id = ? AND permission = ?", payload.MemberID, payload.Permission).
		Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"status": "revoked"})
}

// GET /api/member-permissions/:id (admin)
// Lista as permissões vivas de um membro.
func GetMemberPermissions(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := db.First(&models.Member{}, id).Error; err != nil {
		RespondError(c, "membro não encontrado", http.StatusNotFound)
		return
	}

	var grants []models.MemberPermission
	if err := db.Where("member_id = ?", id).Order("id asc").Find(&grants).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	permissions := make([]string, 0, len(grants))
	for _, g := range grants {
		permissions = append(permissions, g.Permission)
	}

	RespondSuccess(c, gin.H{"member_id": id, "permissions": permissions})
}
