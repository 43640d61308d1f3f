package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
)

type AddCartItemRequest struct {
	MenuItemID uint `json:"menuitem_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// GetCart returns the caller's own cart lines
func GetCart(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var items []models.CartItem
	config.DB.Preload("MenuItem").Where("user_id = ?", userID).Find(&items)
	c.JSON(http.StatusOK, gin.H{"count": len(items), "cart": items})
}

// AddCartItem adds one line to the caller's cart. The unit price comes
// from the catalog at add time; client-supplied prices are ignored.
func AddCartItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var menuItem models.MenuItem
	if err := config.DB.First(&menuItem, req.MenuItemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Menu item not found"})
		return
	}

	// One line per (user, menu item); no quantity merge on re-add
	var existing models.CartItem
	if result := config.DB.Where("user_id = ? AND menu_item_id = ?", userID, req.MenuItemID).First(&existing); result.Error == nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "This menu item is already in your cart"})
		return
	}

	item := models.CartItem{
		UserID:     userID,
		MenuItemID: menuItem.ID,
		Quantity:   req.Quantity,
		UnitPrice:  menuItem.Price,
		Price:      menuItem.Price * float64(req.Quantity),
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to add cart item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"cart_item": item})
}

// ClearCart deletes all of the caller's cart lines. Idempotent.
func ClearCart(c *gin.Context) {
	userID := middleware.GetUserID(c)
	config.DB.Where("user_id = ?", userID).Delete(&models.CartItem{})
	c.Status(http.StatusNoContent)
}
