package controllers

import (
	"net/http"

	dbpkg "ecclesia/db"
	"ecclesia/models"
	"ecclesia/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		RespondError(c, "email e password são obrigatórios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		RespondError(c, "usuário ou senha inválidos", http.StatusUnauthorized)
		return
	}

	// valida senha (mesma regra usada no CreateUser)
	if user.Password != tools.HashPassword(user.Email, req.Password) {
		RespondError(c, "usuário ou senha inválidos", http.StatusUnauthorized)
		return
	}

	if user.Status == models.USER_STATUS_PENDING {
		RespondError(c, "usuário pendente de ativação", http.StatusForbidden)
		return
	}
	if user.Status == models.USER_STATUS_BLOCKED {
		RespondError(c, "usuário bloqueado", http.StatusForbidden)
		return
	}

	// Papel e snapshot de permissões entram no token. Conta sem Member é
	// MEMBRO sem permissão nenhuma (snapshot vazio, não ausente).
	role := models.MEMBER_ROLE_MEMBRO
	var memberID *int64
	perms := []string{}

	var member models.Member
	err := db.Where("user_id = ?", user.ID).First(&member).Error
	if err == nil {
		role = member.Role
		memberID = &member.ID

		var grants []models.MemberPermission
		if err := db.Where("member_id = ?", member.ID).Find(&grants).Error; err != nil {
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}
		for _, g := range grants {
			perms = append(perms, g.Permission)
		}
	} else if !gorm.IsRecordNotFoundError(err) {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	signed, err := signAuthToken(user, role, memberID, perms)
	if err != nil {
		RespondError(c, "erro ao assinar token", http.StatusInternalServerError)
		return
	}

	user.Password = ""
	RespondSuccess(c, LoginResponse{Token: signed, User: user})
}
