// Package server assembles services, handlers and routes into one gin engine.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"autoshop/internal/config"
	"autoshop/internal/database"
	"autoshop/internal/domain/auth"
	"autoshop/internal/domain/bundle"
	"autoshop/internal/domain/catalog"
	"autoshop/internal/domain/document"
	"autoshop/internal/domain/inventory"
	"autoshop/internal/domain/refund"
	"autoshop/internal/middleware"
	jwtsvc "autoshop/internal/pkg/jwt"
	"autoshop/internal/realtime"
)

type App struct {
	Router *gin.Engine
	Hub    *realtime.Hub
	JWT    *jwtsvc.Service

	Auth      *auth.Service
	Catalog   *catalog.Service
	Packages  *bundle.Service
	Inventory *inventory.Service
	Documents *document.Service
	Refunds   *refund.Service
}

// New wires every domain package against db. The schema must already exist.
func New(cfg *config.Config, db *gorm.DB, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	statsDB := sqlx.NewDb(sqlDB, database.DriverName(db))

	a := &App{
		Hub: realtime.NewHub(cfg.CORSAllowedOrigins, log.Named("realtime")),
		JWT: jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL),
	}

	a.Auth = auth.NewService(auth.NewUserRepository(db), a.JWT, log.Named("auth"))
	a.Catalog = catalog.NewService(catalog.NewRepository(db), log.Named("catalog"), cfg.ListPageSize)
	a.Packages = bundle.NewService(bundle.NewRepository(db), a.Catalog, a.Hub, log.Named("bundle"), cfg.ListPageSize)
	a.Inventory = inventory.NewService(inventory.NewRepository(db), a.Hub, log.Named("inventory"), cfg.ListPageSize)
	a.Documents = document.NewService(document.NewRepository(db), log.Named("document"), cfg.ListPageSize)
	a.Refunds = refund.NewService(
		refund.NewRepository(db),
		refund.NewStatsRepository(statsDB),
		a.Hub,
		log.Named("refund"),
		refund.Config{Location: cfg.ShopLocation, PageSize: cfg.ListPageSize},
	)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger(log))
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMW := middleware.JWTAuth(a.JWT)
	staff := middleware.RequireRole(string(auth.RoleAdmin), string(auth.RoleServiceCenter))

	r.GET("/ws", authMW, staff, a.Hub.Handle)

	v1 := r.Group("/api/v1")
	{
		auth.RegisterRoutes(v1, auth.NewHandler(a.Auth, log), authMW)
		refundHandler := refund.NewHandler(a.Refunds, log)
		refund.RegisterPublicRoutes(v1, refundHandler)

		protected := v1.Group("")
		protected.Use(authMW, staff)
		{
			catalog.RegisterRoutes(protected, catalog.NewHandler(a.Catalog, log))
			bundle.RegisterRoutes(protected, bundle.NewHandler(a.Packages, log))
			inventory.RegisterRoutes(protected, inventory.NewHandler(a.Inventory, log))
			document.RegisterRoutes(protected, document.NewHandler(a.Documents, log))
		}

		admin := v1.Group("/admin")
		admin.Use(authMW, middleware.AdminOnly())
		{
			refund.RegisterAdminRoutes(admin, refundHandler)
		}
	}

	a.Router = r
	return a, nil
}
