package items

import (
	"net/http"

	"inventory/internal/config"
	"inventory/internal/users"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	itemRepository ItemRepository
	userRepository users.UserRepository
	cfg            *config.Config
}

func NewItemHandler(ir ItemRepository, ur users.UserRepository, cfg *config.Config) *ItemHandler {
	return &ItemHandler{
		itemRepository: ir,
		userRepository: ur,
		cfg:            cfg,
	}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/inventory", h.GetInventory)
	router.GET("/inventory/search", h.SearchInventory)
	router.GET("/inventory/:item_id", h.GetItem)
}

// GetInventory lists all items at a location, each annotated with its derived
// availability label. The optional ldap parameter resolves the acting user
// for display; an unknown handle is rejected.
func (h *ItemHandler) GetInventory(c *gin.Context) {
	var query InventoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing required parameter: location"})
		return
	}

	if !h.cfg.KnownLocation(query.Location) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":           "Invalid location",
			"valid_locations": h.cfg.Inventory.Locations,
		})
		return
	}

	var user *models.User
	if query.LDAP != "" {
		var err error
		user, err = h.userRepository.GetByLDAP(query.LDAP)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid LDAP username"})
			return
		}
	}

	items, err := h.itemRepository.GetByLocation(query.Location)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	views := make([]models.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, item.View())
	}

	response := gin.H{
		"success":     true,
		"location":    query.Location,
		"total_items": len(views),
		"items":       views,
	}
	if user != nil {
		response["user"] = gin.H{
			"ldap":      user.LDAP,
			"full_name": user.FullName,
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *ItemHandler) SearchInventory(c *gin.Context) {
	var query SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing required parameter: q (search query)"})
		return
	}

	items, err := h.itemRepository.Search(query.Q, query.Location)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	views := make([]models.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, item.View())
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"query":         query.Q,
		"location":      query.Location,
		"total_results": len(views),
		"items":         views,
	})
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	var uri ItemURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid URI parameters"})
		return
	}

	item, err := h.itemRepository.GetItem(uri.ItemID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"item":    item.View(),
	})
}
