package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID lê um id numérico positivo do path. Em caso de valor ausente ou
// inválido já responde 400 e devolve ok=false; o handler só segue com id bom.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, name+" inválido", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
