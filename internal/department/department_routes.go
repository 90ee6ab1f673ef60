package department

import (
	"plugohris/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", middleware.Authorize(enforcer, "employee", "read"), handler.GetAll)
		departments.GET("/:id", middleware.Authorize(enforcer, "employee", "read"), handler.GetById)
		departments.POST("", middleware.Authorize(enforcer, "department", "write"), handler.Create)
		departments.PUT("/:id", middleware.Authorize(enforcer, "department", "write"), handler.Update)
		departments.DELETE("/:id", middleware.Authorize(enforcer, "department", "write"), handler.Delete)
		departments.POST("/:id/employees", middleware.Authorize(enforcer, "department", "write"), handler.AssignEmployee)
	}
}
