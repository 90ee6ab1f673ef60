package leavetype

import (
	"plugohris/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", middleware.Authorize(enforcer, "leave_type", "read"), handler.GetAll)
		types.GET("/:id", middleware.Authorize(enforcer, "leave_type", "read"), handler.GetById)
		types.POST("", middleware.Authorize(enforcer, "leave_type", "write"), handler.Create)
		types.PUT("/:id", middleware.Authorize(enforcer, "leave_type", "write"), handler.Update)
		types.DELETE("/:id", middleware.Authorize(enforcer, "leave_type", "write"), handler.Delete)
	}
}
