package leave

import (
	"plugohris/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", middleware.Authorize(enforcer, "leave", "create"), middleware.Idempotency(rdb), handler.Create)
		leaves.GET("", middleware.Authorize(enforcer, "leave", "read"), handler.GetOwn)
		leaves.GET("/pending", middleware.Authorize(enforcer, "leave", "approve"), handler.GetPending)
		leaves.GET("/all", middleware.Authorize(enforcer, "leave", "read_all"), handler.GetAll)
		leaves.POST("/:id/approve", middleware.Authorize(enforcer, "leave", "approve"), handler.Approve)
		leaves.POST("/:id/reject", middleware.Authorize(enforcer, "leave", "approve"), handler.Reject)
		leaves.GET("/balance", middleware.Authorize(enforcer, "balance", "read"), handler.GetBalanceReport)
	}
}
