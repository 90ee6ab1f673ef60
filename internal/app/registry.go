package app

import (
	"database/sql"

	"plugohris/internal/accrual"
	"plugohris/internal/auth"
	"plugohris/internal/department"
	"plugohris/internal/employee"
	"plugohris/internal/expense"
	"plugohris/internal/leave"
	"plugohris/internal/leavetype"
	"plugohris/internal/messaging/kafka"
	"plugohris/internal/middleware"
	"plugohris/internal/rbac"
	"plugohris/internal/survey"
	"plugohris/internal/trip"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	accrualRepo := accrual.NewRepository(gormDB)
	expenseRepo := expense.NewRepository(gormDB)
	tripRepo := trip.NewRepository(gormDB)
	surveyRepo := survey.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo, employeeRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo)
	departmentService := department.NewService(departmentRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, outboxRepo)
	accrualService := accrual.NewService(accrualRepo, outboxRepo)
	expenseService := expense.NewService(expenseRepo)
	tripService := trip.NewService(tripRepo)
	surveyService := survey.NewService(surveyRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	departmentHandler := department.NewHandler(departmentService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	leaveHandler := leave.NewHandler(leaveService, rdb)
	accrualHandler := accrual.NewHandler(accrualService)
	expenseHandler := expense.NewHandler(expenseService)
	tripHandler := trip.NewHandler(tripService)
	surveyHandler := survey.NewHandler(surveyService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID())
	api.Use(middleware.RateLimitByIP(rate.Limit(20), 40))
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, enforcer)
		department.RegisterRoutes(api, departmentHandler, enforcer)
		leavetype.RegisterRoutes(api, leaveTypeHandler, enforcer)
		leave.RegisterRoutes(api, leaveHandler, enforcer, rdb)
		accrual.RegisterRoutes(api, accrualHandler, enforcer)
		expense.RegisterRoutes(api, expenseHandler, enforcer, rdb)
		trip.RegisterRoutes(api, tripHandler, enforcer)
		survey.RegisterRoutes(api, surveyHandler, enforcer)
	}

	return nil
}
