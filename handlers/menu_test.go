package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"restaurant-api/config"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMenuItemsAnonymous(t *testing.T) {
	r := setupRouter(t)
	seedMenu(t)

	w := perform(r, "GET", "/api/menu-items", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["count"])
}

func TestListMenuItemsSearchFilter(t *testing.T) {
	r := setupRouter(t)
	seedMenu(t)

	w := perform(r, "GET", "/api/menu-items?search=Pas", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])
}

func TestCreateMenuItemManagerOnly(t *testing.T) {
	r := setupRouter(t)
	_, customerToken := createUser(t, "alice")
	_, managerToken := createUser(t, "mary", models.GroupManager)

	category := models.Category{Slug: "desserts", Title: "Desserts"}
	require.NoError(t, config.DB.Create(&category).Error)

	body := gin.H{"title": "Lemon Tart", "price": 6.50, "category_id": category.ID}

	w := perform(r, "POST", "/api/menu-items", body, customerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(r, "POST", "/api/menu-items", body, managerToken)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreateMenuItemDuplicateTitle(t *testing.T) {
	r := setupRouter(t)
	pasta, _ := seedMenu(t)
	_, managerToken := createUser(t, "mary", models.GroupManager)

	body := gin.H{"title": pasta.Title, "price": 12.00, "category_id": pasta.CategoryID}
	w := perform(r, "POST", "/api/menu-items", body, managerToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateMenuItemNegativePrice(t *testing.T) {
	r := setupRouter(t)
	pasta, _ := seedMenu(t)
	_, managerToken := createUser(t, "mary", models.GroupManager)

	body := gin.H{"title": "Free Lunch", "price": -1.00, "category_id": pasta.CategoryID}
	w := perform(r, "POST", "/api/menu-items", body, managerToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMenuItemManagerOnly(t *testing.T) {
	r := setupRouter(t)
	pasta, _ := seedMenu(t)
	_, customerToken := createUser(t, "alice")
	_, managerToken := createUser(t, "mary", models.GroupManager)
	path := fmt.Sprintf("/api/menu-items/%d", pasta.ID)

	w := perform(r, "PATCH", path, gin.H{"price": 11.00}, customerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(r, "PATCH", path, gin.H{"price": 11.00}, managerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.MenuItem
	require.NoError(t, config.DB.First(&updated, pasta.ID).Error)
	assert.Equal(t, 11.00, updated.Price)
}

func TestDeleteMenuItem(t *testing.T) {
	r := setupRouter(t)
	pasta, _ := seedMenu(t)
	_, customerToken := createUser(t, "alice")
	_, managerToken := createUser(t, "mary", models.GroupManager)
	path := fmt.Sprintf("/api/menu-items/%d", pasta.ID)

	w := perform(r, "DELETE", path, nil, customerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(r, "DELETE", path, nil, managerToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, "GET", path, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCategoryManagerOnly(t *testing.T) {
	r := setupRouter(t)
	_, customerToken := createUser(t, "alice")
	_, managerToken := createUser(t, "mary", models.GroupManager)

	w := perform(r, "POST", "/api/categories", gin.H{"title": "Starters"}, customerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(r, "POST", "/api/categories", gin.H{"title": "Starters"}, managerToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = perform(r, "GET", "/api/categories", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])
}
