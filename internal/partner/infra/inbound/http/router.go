package http

import "github.com/gin-gonic/gin"

func RegisterPartnerRoutes(r *gin.Engine, handler *PartnerHandler) {
	partners := r.Group("/partners")
	{
		partners.POST("", handler.Register)
		partners.GET("", handler.List)
		partners.GET("/:id", handler.Get)
		partners.PATCH("/:id", handler.Rename)
		partners.POST("/:id/suspend", handler.Suspend)
		partners.POST("/:id/restore", handler.Reinstate)
		partners.DELETE("/:id", handler.Remove)
	}
}
