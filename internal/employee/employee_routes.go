package employee

import (
	"plugohris/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.Authorize(enforcer, "employee", "read"), handler.GetAll)
		employees.GET("/:id", middleware.Authorize(enforcer, "employee", "read"), handler.GetById)
		employees.POST("", middleware.Authorize(enforcer, "employee", "write"), handler.Create)
		employees.PUT("/:id", middleware.Authorize(enforcer, "employee", "write"), handler.Update)
		employees.DELETE("/:id", middleware.Authorize(enforcer, "employee", "write"), handler.Delete)
	}
}
