package handlers

import (
	"device_inventory/internal/logger"
	"device_inventory/internal/metrics"
	"device_inventory/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{services: services, log: log, metrics: m}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Snapshot stream for one session, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.operatorIdMiddleware)
	{
		h.registerSessionRoutes(api)
		h.registerExportRoutes(api)
	}
}

func (h *Handler) registerSessionRoutes(api *gin.RouterGroup) {
	sessions := api.Group("/sessions")
	{
		// Body example: {"type":"deviceByRoom","label":"P.101"}
		sessions.POST("", h.openSession)
		sessions.GET("/:id", h.getSession)
		sessions.DELETE("/:id", h.closeSession)
		sessions.PUT("/:id/search", h.searchSession)
		sessions.POST("/:id/refresh", h.refreshSession)
		// Body example: {"event":"range_chosen","window":"last_7_days"}
		sessions.POST("/:id/dialog", h.dispatchDialog)
	}
}

func (h *Handler) registerExportRoutes(api *gin.RouterGroup) {
	exports := api.Group("/exports")
	{
		exports.GET("", h.getExports)
		exports.GET("/files/:name", h.downloadExport)
	}
}
