package controllers

import (
	dbpkg "ecclesia/db"
	"ecclesia/models"
	"ecclesia/tools"

	"github.com/gin-gonic/gin"
)

func CheckUserExists(c *gin.Context, email string) (bool, error, *models.User) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		return false, nil, nil
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return false, nil, nil
	}
	return true, nil, &user
}

func CreateUser(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	user := models.User{}
	if err := c.Bind(&user); err != nil {
		RespondError(c, err.Error(), 400)
		return
	}

	missing := user.MissingFields()
	if missing != "" {
		RespondError(c, "Faltando campo "+missing, 400)
		return
	}

	if !tools.ValidateEmail(user.Email) {
		RespondError(c, "E-mail inválido!", 400)
		return
	}

	if user.Phone != "" {
		phone, err := tools.NormalizePhoneBR(user.Phone)
		if err != nil {
			RespondError(c, "Telefone inválido!", 400)
			return
		}
		user.Phone = phone
	}

	exists, err, _ := CheckUserExists(c, user.Email)
	if err != nil {
		RespondError(c, err.Error(), 400)
		return
	} else if exists {
		RespondError(c, "Usuário já existe", 400)
		return
	}

	if user.Password != "" {
		user.Password = tools.HashPassword(user.Email, user.Password)
	}

	user.Status = models.USER_STATUS_AVAILABLE

	if err := db.Create(&user).Error; err != nil {
		RespondError(c, err.Error(), 400)
		return
	}

	user.Password = ""
	RespondSuccess(c, user)
}
