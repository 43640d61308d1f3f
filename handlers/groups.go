package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/policy"

	"github.com/gin-gonic/gin"
)

type AddGroupUserRequest struct {
	Username string `json:"username" binding:"required"`
}

// groupUser is the member representation returned by the group endpoints
type groupUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ListGroupUsers returns the members of a role group. Manager only.
func ListGroupUsers(groupName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := policy.Allow(middleware.GetRoles(c), policy.ResourceGroup, policy.ActionManage); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
			return
		}

		group, ok := findGroup(c, groupName)
		if !ok {
			return
		}

		var users []models.User
		if err := config.DB.Model(&group).Association("Users").Find(&users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to list group members"})
			return
		}
		members := make([]groupUser, 0, len(users))
		for _, u := range users {
			members = append(members, groupUser{ID: u.ID, Username: u.Username, Email: u.Email})
		}
		c.JSON(http.StatusOK, gin.H{"count": len(members), "users": members})
	}
}

// AddGroupUser adds a user to a role group by username. Manager only.
// Adding an existing member succeeds without duplicating the row.
func AddGroupUser(groupName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := policy.Allow(middleware.GetRoles(c), policy.ResourceGroup, policy.ActionManage); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
			return
		}

		var req AddGroupUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}

		var user models.User
		if err := config.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "There is no user with username " + req.Username})
			return
		}

		group, ok := findGroup(c, groupName)
		if !ok {
			return
		}

		if err := config.DB.Model(&group).Association("Users").Append(&user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to add group member"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"detail": req.Username + " added to " + groupName + " group successfully"})
	}
}

// RemoveGroupUser removes a user from a role group by id. Manager only.
// 404 when the user is not currently a member.
func RemoveGroupUser(groupName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := policy.Allow(middleware.GetRoles(c), policy.ResourceGroup, policy.ActionManage); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
			return
		}

		group, ok := findGroup(c, groupName)
		if !ok {
			return
		}

		var members []models.User
		err := config.DB.Model(&group).Association("Users").Find(&members, "users.id = ?", c.Param("id"))
		if err != nil || len(members) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"detail": "User is not a member of the " + groupName + " group"})
			return
		}

		if err := config.DB.Model(&group).Association("Users").Delete(&members[0]); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to remove group member"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": members[0].Username + " removed from " + groupName + " group successfully"})
	}
}

// findGroup loads a role group row. A missing row is a deployment fault,
// reported as 501 so it is distinguishable from user errors.
func findGroup(c *gin.Context, groupName string) (models.Group, bool) {
	var group models.Group
	if err := config.DB.Where("name = ?", groupName).First(&group).Error; err != nil {
		c.JSON(http.StatusNotImplemented, gin.H{"detail": "Server configuration error: no group named " + groupName})
		return group, false
	}
	return group, true
}
