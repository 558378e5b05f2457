package controllers

import (
	"ecclesia/authz"

	"github.com/gin-gonic/gin"
)

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(200, payload)
}

// RespondDenial serializa a negação estruturada dos gates no formato que o
// front consome: { kind, message, detail }.
func RespondDenial(c *gin.Context, code int, denial authz.Denial) {
	c.JSON(code, denial)
}
