// Package rest wires the REST surface: the flat vendor CRUD endpoints, the
// connection-style vendor view, credential exchange, and the operational
// endpoints.
package rest

import (
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/perkhub/loyalty/internal/config"
	"github.com/perkhub/loyalty/internal/database"
	"github.com/perkhub/loyalty/internal/service"
)

// NewRouter builds the HTTP engine serving every surface. The GraphQL
// handler is mounted as-is under POST /graphql.
func NewRouter(cfg *config.Config, svcs *service.Registry, db *database.DB, graphqlHandler http.Handler) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger())
	engine.Use(RateLimit(rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"}
	engine.Use(cors.New(corsConfig))

	auth := &authHandler{auth: svcs.Auth}
	engine.POST("/auth", auth.login)

	vendors := &vendorHandler{vendors: svcs.Vendors}
	engine.POST("/vendors", vendors.create)
	engine.GET("/vendors", vendors.list)
	engine.GET("/vendors/view", vendors.view)
	engine.GET("/vendors/:id", vendors.get)
	engine.PUT("/vendors/:id", vendors.update)
	engine.DELETE("/vendors/:id", vendors.remove)

	engine.POST("/graphql", gin.WrapH(graphqlHandler))

	engine.GET("/health", func(c *gin.Context) {
		hostname, _ := os.Hostname()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "loyalty", "hostname": hostname})
	})
	engine.GET("/health/db", func(c *gin.Context) {
		if err := db.Postgres.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "postgres unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "postgres": "connected"})
	})

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return engine
}
