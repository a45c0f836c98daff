package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	biztypedomain "github.com/haixin886/recharge-hub-system-sub001/internal/biztype/domain"
	"github.com/haixin886/recharge-hub-system-sub001/internal/config"
	"github.com/haixin886/recharge-hub-system-sub001/internal/events"
	orderdomain "github.com/haixin886/recharge-hub-system-sub001/internal/order/domain"
	statsdomain "github.com/haixin886/recharge-hub-system-sub001/internal/stats/domain"
	userdomain "github.com/haixin886/recharge-hub-system-sub001/internal/user/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServerParam struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
	DB     *gorm.DB
	Events *events.Bus

	StatsSvc   statsdomain.Service
	OrderSvc   orderdomain.Service
	UserSvc    userdomain.Service
	BiztypeSvc biztypedomain.Service
}

// Server owns the HTTP surface of the back office.
type Server struct {
	cfg    config.Config
	log    *zap.Logger
	db     *gorm.DB
	events *events.Bus

	statsSvc   statsdomain.Service
	orderSvc   orderdomain.Service
	userSvc    userdomain.Service
	biztypeSvc biztypedomain.Service

	limiter *rateLimiter
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:        p.Config,
		log:        p.Log.Named("server"),
		db:         p.DB,
		events:     p.Events,
		statsSvc:   p.StatsSvc,
		orderSvc:   p.OrderSvc,
		userSvc:    p.UserSvc,
		biztypeSvc: p.BiztypeSvc,
		limiter:    newRateLimiter(p.Config.RateLimitPerMinute, time.Minute),
	}
}

// NewEngine builds the gin engine in the mode matching the
// environment.
func NewEngine(cfg config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	return engine
}

// RegisterRoutes wires every admin endpoint onto the engine.
func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", s.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	api.Use(s.RateLimited(), s.AdminKeyRequired())

	api.GET("/stats/dashboard", s.GetDashboardStats)
	api.GET("/stats/agents/:id", s.GetAgentStats)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	api.DELETE("/orders/:id", s.DeleteOrder)

	api.POST("/users", s.CreateUser)
	api.GET("/users", s.ListUsers)
	api.GET("/users/:id", s.GetUser)
	api.PATCH("/users/:id", s.UpdateUser)
	api.DELETE("/users/:id", s.DeleteUser)

	api.POST("/business-types", s.CreateBusinessType)
	api.GET("/business-types", s.ListBusinessTypes)
	api.GET("/business-types/:id", s.GetBusinessType)
	api.PATCH("/business-types/:id", s.UpdateBusinessType)
	api.DELETE("/business-types/:id", s.DeleteBusinessType)
}

// Health reports liveness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, s *Server, cfg config.Config, log *zap.Logger) {
	s.RegisterRoutes(engine)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)
