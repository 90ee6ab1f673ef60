package trip

import (
	"plugohris/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	trips := r.Group("/trips")
	trips.Use(middleware.AuthMiddleware())
	{
		trips.POST("", middleware.Authorize(enforcer, "trip", "create"), handler.Create)
		trips.GET("", middleware.Authorize(enforcer, "trip", "read"), handler.GetOwn)
		trips.GET("/pending", middleware.Authorize(enforcer, "trip", "approve"), handler.GetPending)
		trips.GET("/all", middleware.Authorize(enforcer, "trip", "read_all"), handler.GetAll)
		trips.POST("/:id/approve", middleware.Authorize(enforcer, "trip", "approve"), handler.Approve)
		trips.POST("/:id/reject", middleware.Authorize(enforcer, "trip", "approve"), handler.Reject)
	}
}
