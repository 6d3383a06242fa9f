package routes

import (
	"inventory/internal/core/container"
	"inventory/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterAPIRoutes(router *gin.Engine, container *container.Container) {
	api := router.Group("/api")

	container.ItemHandler.RegisterRoutes(api)
	container.UserHandler.RegisterRoutes(api)
	container.CheckoutHandler.RegisterRoutes(api)
	container.AuditHandler.RegisterRoutes(api)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckHandler())
	router.GET("/", describeAPI)
}

// describeAPI answers the root path with an endpoint map, handy when poking
// at the service with curl.
func describeAPI(c *gin.Context) {
	c.JSON(200, gin.H{
		"name":        "Inventory Management API",
		"version":     "1.0.0",
		"description": "RESTful API for equipment inventory checkout system",
		"endpoints": gin.H{
			"inventory": gin.H{
				"get_inventory": "GET /api/inventory?location={location}&ldap={ldap}",
				"search":        "GET /api/inventory/search?q={query}&location={location}",
				"get_item":      "GET /api/inventory/{item_id}",
			},
			"checkout": gin.H{
				"checkout":     "POST /api/checkout",
				"checkin":      "POST /api/checkout/checkin",
				"active":       "GET /api/checkout/active",
				"overdue":      "GET /api/checkout/overdue",
				"user_history": "GET /api/checkout/user/{ldap}",
				"item_history": "GET /api/checkout/item/{item_id}/history",
			},
			"users": gin.H{
				"list": "GET /api/users",
			},
			"audit": gin.H{
				"resource_log": "GET /api/audit/{resource_type}/{resource_id}",
			},
		},
	})
}
