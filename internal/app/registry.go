package app

import (
	"context"
	"fmt"
	"net/http"

	"go-leave/internal/balance"
	"go-leave/internal/bootstrap"
	"go-leave/internal/config"
	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/leaveevent"
	"go-leave/internal/leavetype"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/middleware"
	"go-leave/internal/notification"
	"go-leave/internal/rbac"
	"go-leave/internal/rbac/infra"
	"go-leave/internal/shared/dateutil"
	"go-leave/internal/shared/response"
	"go-leave/internal/sweep"
	"go-leave/internal/workday"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Modules is the wired service graph shared by the api, worker, consumer
// and leavectl entry points.
type Modules struct {
	DB    *gorm.DB
	Redis *redis.Client
	Clock dateutil.Clock

	Outbox     kafka.OutboxRepository
	Holidays   workday.Repository
	RBACRepo   rbac.Repository
	RBAC       rbac.Service
	LeaveTypes leavetype.Service
	Employees  employee.Directory
	Workdays   workday.Service
	Ledger     *balance.Ledger
	Balances   balance.Service
	Leaves     leave.Service
	Sweeper    sweep.Service
}

// NewModules builds every repository and service. rdb may be nil, in which
// case the leave-type cache is bypassed.
func NewModules(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) (*Modules, error) {
	clock := dateutil.SystemClock{}

	// --- Repositories ---
	balanceRepo := balance.NewRepository(db)
	leaveRepo := leave.NewRepository(db)
	leaveTypeRepo := leavetype.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	eventRepo := leaveevent.NewRepository(db)
	holidayRepo := workday.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)
	rbacRepo := rbac.NewRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, fmt.Errorf("build rbac enforcer: %w", err)
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Services ---
	notifier := notification.NewOutboxNotifier(outboxRepo, logger)
	ledger := balance.NewLedger(cfg.Accrual.Calculator(), notifier, logger)
	directory := employee.NewDirectory(employeeRepo, logger)
	leaveTypes := leavetype.NewService(
		db,
		leaveTypeRepo,
		rdb,
		leavetype.NewResolver(cfg.Classification),
		cfg.Redis.CacheTTL,
		logger,
	)
	workdays := workday.NewService(holidayRepo, cfg.Workday.RestWeekdays(), logger)
	registry := leaveevent.NewRegistry(eventRepo, logger)

	balances := balance.NewService(db, balanceRepo, ledger, directory, leaveTypes, clock, logger)
	leaves := leave.NewService(leave.Deps{
		DB:         db,
		Repo:       leaveRepo,
		Balances:   balanceRepo,
		Ledger:     ledger,
		Registry:   registry,
		Employees:  directory,
		LeaveTypes: leaveTypes,
		Workdays:   workdays,
		Notifier:   notifier,
		Clock:      clock,
	}, logger)
	sweeper := sweep.NewService(db, balanceRepo, ledger, directory, leaveTypes, cfg.Sweep.Concurrency, logger)

	return &Modules{
		DB:         db,
		Redis:      rdb,
		Clock:      clock,
		Outbox:     outboxRepo,
		Holidays:   holidayRepo,
		RBACRepo:   rbacRepo,
		RBAC:       rbacService,
		LeaveTypes: leaveTypes,
		Employees:  directory,
		Workdays:   workdays,
		Ledger:     ledger,
		Balances:   balances,
		Leaves:     leaves,
		Sweeper:    sweeper,
	}, nil
}

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg *config.Config,
	m *Modules,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) error {
	if err := m.RBAC.LoadPolicy(ctx); err != nil {
		return fmt.Errorf("load rbac policy: %w", err)
	}

	// --- Handlers ---
	balanceHandler := balance.NewHandler(m.Balances, logger)
	leaveHandler := leave.NewHandler(m.Leaves, logger)
	leaveTypeHandler := leavetype.NewHandler(m.LeaveTypes, logger)
	sweepHandler := sweep.NewHandler(m.Sweeper, m.Clock, auditLogger, logger)
	rbacHandler := rbac.NewHandler(m.RBAC, logger)

	router.Use(
		middleware.RequestID(),
		middleware.RateLimitByIP(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst),
	)
	router.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "up"}, nil)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.ActorFromHeaders(), middleware.ContextLogger(logger))
	{
		balance.RegisterRoutes(api, balanceHandler, m.RBAC)
		leave.RegisterRoutes(api, leaveHandler, m.RBAC, m.Redis)
		leavetype.RegisterRoutes(api, leaveTypeHandler, m.RBAC)
		sweep.RegisterRoutes(api, sweepHandler, m.RBAC)
		rbac.RegisterRoutes(api, rbacHandler, m.RBAC)
	}

	return nil
}
