package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Me(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	p, _ := GetPrincipal(c)
	user.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"role":      p.Role,
		"member_id": p.MemberID,
	})
}
