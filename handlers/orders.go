package handlers

import (
	"net/http"
	"time"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/policy"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// accessibleOrders scopes an order query to what the caller may see:
// managers see everything, delivery crew their assignments, customers
// their own orders.
func accessibleOrders(db *gorm.DB, roles policy.Roles, userID uint) *gorm.DB {
	if roles.Manager {
		return db
	}
	if roles.DeliveryCrew {
		return db.Where("delivery_crew_id = ?", userID)
	}
	return db.Where("user_id = ?", userID)
}

// ListOrders returns the caller's accessible orders
func ListOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	roles := middleware.GetRoles(c)

	query := accessibleOrders(config.DB, roles, userID).
		Preload("Items.MenuItem").Preload("DeliveryCrew")

	if status := c.Query("status"); status == "true" || status == "false" {
		query = query.Where("status = ?", status == "true")
	}
	switch c.Query("ordering") {
	case "date":
		query = query.Order("date asc")
	case "-date":
		query = query.Order("date desc")
	case "total":
		query = query.Order("total asc")
	case "-total":
		query = query.Order("total desc")
	default:
		query = query.Order("created_at desc")
	}

	var orders []models.Order
	query.Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// CreateOrder converts the caller's cart into an order. Customer only.
// The header insert, line-item inserts and cart wipe run in a single
// transaction so a mid-sequence failure leaves nothing behind.
func CreateOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	roles := middleware.GetRoles(c)

	if err := policy.Allow(roles, policy.ResourceOrder, policy.ActionCreate); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
		return
	}

	var cartItems []models.CartItem
	if err := config.DB.Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to read cart"})
		return
	}
	if len(cartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Cart is empty"})
		return
	}

	now := time.Now().UTC()
	order := models.Order{
		UserID: userID,
		Status: false,
		Total:  0,
		Date:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, cartItem := range cartItems {
			orderItem := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: cartItem.MenuItemID,
				Quantity:   cartItem.Quantity,
				UnitPrice:  cartItem.UnitPrice,
				Price:      cartItem.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			order.Total += cartItem.Price
		}
		if err := tx.Model(&order).Update("total", order.Total).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create order"})
		return
	}

	config.DB.Preload("Items.MenuItem").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{"detail": "Order created successfully", "order": order})
}

// GetOrder returns the line items of one accessible order
func GetOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	roles := middleware.GetRoles(c)

	var order models.Order
	if err := accessibleOrders(config.DB, roles, userID).First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Order not found"})
		return
	}

	// The scope above already excludes foreign orders for customers;
	// kept as an explicit guard on the ownership invariant.
	if roles.IsCustomer() && order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Permission denied. This order does not belong to the current user"})
		return
	}

	var items []models.OrderItem
	config.DB.Preload("MenuItem").Where("order_id = ?", order.ID).Find(&items)
	c.JSON(http.StatusOK, gin.H{"count": len(items), "order_items": items})
}

type OrderRequest struct {
	UserID         uint     `json:"user_id" binding:"required"`
	DeliveryCrewID *uint    `json:"delivery_crew_id"`
	Status         *bool    `json:"status" binding:"required"`
	Total          *float64 `json:"total" binding:"required"`
	Date           string   `json:"date" binding:"required"`
}

// ReplaceOrder fully updates an order. Manager only.
func ReplaceOrder(c *gin.Context) {
	roles := middleware.GetRoles(c)
	if err := policy.Allow(roles, policy.ResourceOrder, policy.ActionReplace); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Order not found"})
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date, expected YYYY-MM-DD"})
		return
	}
	if req.DeliveryCrewID != nil {
		ok, err := isDeliveryCrewMember(*req.DeliveryCrewID)
		if err != nil || !ok {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "User must belong to the 'Delivery crew' group"})
			return
		}
	}

	order.UserID = req.UserID
	order.DeliveryCrewID = req.DeliveryCrewID
	order.Status = *req.Status
	order.Total = *req.Total
	order.Date = date
	if err := config.DB.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateOrder partially updates an order. Delivery crew may flip the
// delivery status of their own assignments; managers may change any field.
func UpdateOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	roles := middleware.GetRoles(c)

	if err := policy.Allow(roles, policy.ResourceOrder, policy.ActionUpdate); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Order not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	// Delivery crew path: only the status of an assigned order
	if !roles.Manager {
		if order.DeliveryCrewID == nil || *order.DeliveryCrewID != userID {
			c.JSON(http.StatusForbidden, gin.H{"detail": "Permission denied. This order is not assigned to the current delivery crew member"})
			return
		}
		raw, ok := req["status"]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Missing 'status' field in the request"})
			return
		}
		status, ok := raw.(bool)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid value for 'status'. Must be a boolean value"})
			return
		}
		config.DB.Model(&order).Update("status", status)
		c.JSON(http.StatusOK, gin.H{"order": order})
		return
	}

	// Manager path: any field
	update := map[string]interface{}{}
	if raw, ok := req["status"]; ok {
		status, ok := raw.(bool)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid value for 'status'. Must be a boolean value"})
			return
		}
		update["status"] = status
	}
	if raw, ok := req["delivery_crew_id"]; ok {
		if raw == nil {
			update["delivery_crew_id"] = nil
		} else {
			id, ok := raw.(float64)
			if !ok || id < 1 || id != float64(uint(id)) {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid value for 'delivery_crew_id'"})
				return
			}
			member, err := isDeliveryCrewMember(uint(id))
			if err != nil || !member {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "User must belong to the 'Delivery crew' group"})
				return
			}
			update["delivery_crew_id"] = uint(id)
		}
	}
	if raw, ok := req["user_id"]; ok {
		id, ok := raw.(float64)
		if !ok || id < 1 || id != float64(uint(id)) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid value for 'user_id'"})
			return
		}
		update["user_id"] = uint(id)
	}
	if raw, ok := req["total"]; ok {
		total, ok := raw.(float64)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid value for 'total'"})
			return
		}
		update["total"] = total
	}
	if raw, ok := req["date"]; ok {
		s, ok := raw.(string)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		update["date"] = date
	}

	if len(update) > 0 {
		if err := config.DB.Model(&order).Updates(update).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update order"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// DeleteOrder removes an order and its line items. Manager only.
func DeleteOrder(c *gin.Context) {
	roles := middleware.GetRoles(c)
	if err := policy.Allow(roles, policy.ResourceOrder, policy.ActionDelete); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Order not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete order"})
		return
	}
	c.Status(http.StatusNoContent)
}

// isDeliveryCrewMember reports whether the user holds the delivery crew role.
func isDeliveryCrewMember(userID uint) (bool, error) {
	roles, err := policy.RolesFor(config.DB, userID)
	if err != nil {
		return false, err
	}
	return roles.DeliveryCrew, nil
}
