package server

import (
	"time"

	"github.com/gin-gonic/gin"
)

// sessionTTL drops sessions idle for longer than this.
const sessionTTL = 2 * time.Hour

// RegisterRoutes mounts the API under rg.
//
//	GET    /api/cities
//	POST   /api/cities
//	DELETE /api/cities/:name
//	GET    /api/scenarios
//	POST   /api/scenario/:id
//	POST   /api/solve
//	POST   /api/compare
//	POST   /api/reset
//	GET    /api/cache/stats
//	POST   /api/cache/clear
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	api := rg.Group("/api")
	{
		api.GET("/cities", h.HandleListCities)
		api.POST("/cities", h.HandleAddCity)
		api.DELETE("/cities/:name", h.HandleDeleteCity)
		api.GET("/scenarios", h.HandleListScenarios)
		api.POST("/scenario/:id", h.HandleSwitchScenario)
		api.POST("/solve", h.HandleSolve)
		api.POST("/compare", h.HandleCompare)
		api.POST("/reset", h.HandleReset)
		api.GET("/cache/stats", h.HandleCacheStats)
		api.POST("/cache/clear", h.HandleCacheClear)
	}
}
