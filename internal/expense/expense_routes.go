package expense

import (
	"plugohris/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer, rdb *redis.Client) {
	expenses := r.Group("/grab-codes")
	expenses.Use(middleware.AuthMiddleware())
	{
		expenses.POST("", middleware.Authorize(enforcer, "expense", "create"), middleware.Idempotency(rdb), handler.Create)
		expenses.GET("", middleware.Authorize(enforcer, "expense", "read"), handler.GetOwn)
		expenses.GET("/pending", middleware.Authorize(enforcer, "expense", "approve"), handler.GetPending)
		expenses.GET("/all", middleware.Authorize(enforcer, "expense", "read_all"), handler.GetAll)
		expenses.POST("/:id/approve", middleware.Authorize(enforcer, "expense", "approve"), handler.Approve)
		expenses.POST("/:id/reject", middleware.Authorize(enforcer, "expense", "approve"), handler.Reject)
	}
}
