package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxRequestIDKey = "request_id"

// RequestIDMiddleware garante um id por requisição: aproveita o X-Request-ID
// do cliente quando vier, senão gera um uuid. O id volta no header da
// resposta e entra nas linhas de log.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// RequestID devolve o id da requisição corrente, se houver.
func RequestID(c *gin.Context) string {
	v, ok := c.Get(ctxRequestIDKey)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}
