package survey

import (
	"plugohris/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	surveys := r.Group("/surveys")
	surveys.Use(middleware.AuthMiddleware())
	{
		surveys.GET("", middleware.Authorize(enforcer, "survey", "read"), handler.GetAll)
		surveys.GET("/:id", middleware.Authorize(enforcer, "survey", "read"), handler.GetById)
		surveys.POST("", middleware.Authorize(enforcer, "survey", "write"), handler.Create)
		surveys.DELETE("/:id", middleware.Authorize(enforcer, "survey", "write"), handler.Delete)
		surveys.POST("/:id/responses", middleware.Authorize(enforcer, "survey", "respond"), handler.SubmitResponse)
		surveys.GET("/:id/aggregates", middleware.Authorize(enforcer, "survey", "read_all"), handler.GetAggregates)
	}
}
