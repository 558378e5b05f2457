package db

import (
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

const ctxDBKey = "database"

// SetDBtoContext anexa a conexão ao contexto de cada requisição. Vai no setup
// do engine, antes de qualquer rota; controllers e gates leem via DBInstance.
func SetDBtoContext(database *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxDBKey, database)
		c.Next()
	}
}

// DBInstance devolve a conexão anexada, ou nil quando o middleware não rodou.
// Quem chama decide o que fazer com nil (os gates tratam como falha de infra).
func DBInstance(c *gin.Context) *gorm.DB {
	v, ok := c.Get(ctxDBKey)
	if !ok {
		return nil
	}
	db, _ := v.(*gorm.DB)
	return db
}
