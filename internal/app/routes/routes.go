package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ekindev/coursesearch/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, searchController *controllers.SearchController) {
	// The search endpoint accepts both GET (query params) and POST (JSON).
	router.GET("/search", searchController.Search)
	router.POST("/search", searchController.Search)

	// Health check endpoint
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
