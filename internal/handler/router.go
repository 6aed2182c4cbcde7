package handler

import (
	"net/http"

	"worldtax/internal/logger"
	"worldtax/internal/middleware"
	"worldtax/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig collects what NewRouter wires together.
type RouterConfig struct {
	Logger           *logger.Logger
	JWTSecret        []byte
	AllowOrigins     []string
	Gatherer         prometheus.Gatherer
	TaxService       service.TaxService
	ReferenceService service.ReferenceService
	AuditService     service.AuditService // nil without a database
}

// NewRouter builds the gin engine with middleware and every route registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(cfg.Logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", middleware.HeaderRequestID}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{middleware.HeaderRequestID}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	router.GET("/health", func(c *gin.Context) {
		countries, agreements := cfg.ReferenceService.Current().Len()
		c.JSON(http.StatusOK, gin.H{
			"status":           "OK",
			"countries":        countries,
			"trade_agreements": agreements,
		})
	})

	auth := middleware.NewAuth(cfg.JWTSecret)
	api := router.Group("")
	NewTaxHandler(cfg.TaxService).RegisterRoutes(api)
	NewReferenceHandler(cfg.ReferenceService, auth).RegisterRoutes(api)
	if cfg.AuditService != nil {
		NewAuditHandler(cfg.AuditService, auth).RegisterRoutes(api)
	}

	return router
}
