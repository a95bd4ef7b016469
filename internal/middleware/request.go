package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/audit-mgmt-api/internal/service"
)

// RequestMeta collects the actor and client details recorded with every mutation.
func RequestMeta(c *gin.Context) service.RequestMeta {
	meta := service.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
	if claims := Claims(c); claims != nil {
		meta.ActorID = claims.UserID
	}
	return meta
}
