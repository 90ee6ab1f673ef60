package accrual

import (
	"plugohris/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	accruals := r.Group("/accruals")
	accruals.Use(middleware.AuthMiddleware())
	{
		accruals.POST("/run", middleware.Authorize(enforcer, "accrual", "run"), handler.Run)
	}
}
