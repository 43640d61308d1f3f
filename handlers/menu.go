package handlers

import (
	"net/http"
	"strings"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/policy"

	"github.com/gin-gonic/gin"
)

// ── Categories ──────────────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	Slug  string `json:"slug"`
	Title string `json:"title" binding:"required"`
}

// ListCategories returns all categories (public)
func ListCategories(c *gin.Context) {
	var categories []models.Category
	config.DB.Find(&categories)
	c.JSON(http.StatusOK, gin.H{"count": len(categories), "categories": categories})
}

// CreateCategory adds a category (manager only)
func CreateCategory(c *gin.Context) {
	if err := policy.Allow(middleware.GetRoles(c), policy.ResourceCategory, policy.ActionCreate); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if req.Slug == "" {
		req.Slug = strings.ToLower(strings.ReplaceAll(req.Title, " ", "-"))
	}

	category := models.Category{Slug: req.Slug, Title: req.Title}
	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// ── Menu items ──────────────────────────────────────────────────────────────

type MenuItemRequest struct {
	Title       string   `json:"title" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Description string   `json:"description"`
	Featured    bool     `json:"featured"`
	CategoryID  uint     `json:"category_id" binding:"required"`
}

// ListMenuItems returns the catalog (public), with optional filters
func ListMenuItems(c *gin.Context) {
	var items []models.MenuItem
	query := config.DB.Preload("Category")

	if category := c.Query("category"); category != "" {
		query = query.Joins("JOIN categories ON categories.id = menu_items.category_id").
			Where("categories.title = ?", category)
	}
	if featured := c.Query("featured"); featured == "true" {
		query = query.Where("featured = ?", true)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("menu_items.title LIKE ?", "%"+search+"%")
	}
	switch c.Query("ordering") {
	case "price":
		query = query.Order("price asc")
	case "-price":
		query = query.Order("price desc")
	case "title":
		query = query.Order("menu_items.title asc")
	}

	query.Find(&items)
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu_items": items})
}

// CreateMenuItem adds a catalog entry (manager only)
func CreateMenuItem(c *gin.Context) {
	if err := policy.Allow(middleware.GetRoles(c), policy.ResourceMenuItem, policy.ActionCreate); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Category not found"})
		return
	}

	// Title is unique across the catalog
	var existing models.MenuItem
	if result := config.DB.Where("title = ?", req.Title).First(&existing); result.Error == nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "A menu item with this title already exists"})
		return
	}

	item := models.MenuItem{
		Title:       req.Title,
		Price:       *req.Price,
		Description: req.Description,
		Featured:    req.Featured,
		CategoryID:  req.CategoryID,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"menu_item": item})
}

// GetMenuItem returns a single catalog entry (public)
func GetMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.Preload("Category").First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu_item": item})
}

// ReplaceMenuItem fully updates a catalog entry (manager only)
func ReplaceMenuItem(c *gin.Context) {
	if err := policy.Allow(middleware.GetRoles(c), policy.ResourceMenuItem, policy.ActionReplace); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Menu item not found"})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	// Title stays unique when renaming
	var existing models.MenuItem
	if result := config.DB.Where("title = ? AND id <> ?", req.Title, item.ID).First(&existing); result.Error == nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "A menu item with this title already exists"})
		return
	}
	if err := config.DB.First(&models.Category{}, req.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Category not found"})
		return
	}

	item.Title = req.Title
	item.Price = *req.Price
	item.Description = req.Description
	item.Featured = req.Featured
	item.CategoryID = req.CategoryID
	config.DB.Save(&item)

	c.JSON(http.StatusOK, gin.H{"menu_item": item})
}

// UpdateMenuItem partially updates a catalog entry (manager only)
func UpdateMenuItem(c *gin.Context) {
	if err := policy.Allow(middleware.GetRoles(c), policy.ResourceMenuItem, policy.ActionUpdate); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Menu item not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if price, ok := req["price"]; ok {
		p, ok := price.(float64)
		if !ok || p < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Price must be a non-negative number"})
			return
		}
	}
	if title, ok := req["title"].(string); ok && title != item.Title {
		var existing models.MenuItem
		if result := config.DB.Where("title = ?", title).First(&existing); result.Error == nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "A menu item with this title already exists"})
			return
		}
	}

	allowed := map[string]bool{"title": true, "price": true, "description": true, "featured": true, "category_id": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&item).Updates(update)

	c.JSON(http.StatusOK, gin.H{"menu_item": item})
}

// DeleteMenuItem removes a catalog entry (manager only)
func DeleteMenuItem(c *gin.Context) {
	if err := policy.Allow(middleware.GetRoles(c), policy.ResourceMenuItem, policy.ActionDelete); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Menu item not found"})
		return
	}
	config.DB.Delete(&item)
	c.JSON(http.StatusOK, gin.H{"detail": "Menu item deleted"})
}
