package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/api/handlers"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/api/middleware"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/auth"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/service"
)

func NewRouter(stockService *service.StockService, authenticator *auth.Authenticator, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(authenticator)
	apiGroup.POST("/auth/login", authHandler.Login)

	stockHandler := handlers.NewStockHandler(stockService)
	stockGroup := apiGroup.Group("/stock")
	stockGroup.Use(middleware.RequireToken(authenticator))
	{
		stockGroup.GET("/items", stockHandler.GetItems)
		stockGroup.GET("/options", stockHandler.GetOptions)
		stockGroup.GET("/summary", stockHandler.GetSummary)
		stockGroup.GET("/treemap", stockHandler.GetTreemap)
		stockGroup.POST("/reload", stockHandler.Reload)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
