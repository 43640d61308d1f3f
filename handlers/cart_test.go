package handlers_test

import (
	"net/http"
	"testing"

	"restaurant-api/config"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCartItemSnapshotsPrice(t *testing.T) {
	r := setupRouter(t)
	pasta, _ := seedMenu(t)
	_, token := createUser(t, "alice")

	w := perform(r, "POST", "/api/cart/menu-items", gin.H{"menuitem_id": pasta.ID, "quantity": 2}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Catalog price changes after the line was added
	require.NoError(t, config.DB.Model(&models.MenuItem{}).Where("id = ?", pasta.ID).Update("price", 99.0).Error)

	var line models.CartItem
	require.NoError(t, config.DB.Where("menu_item_id = ?", pasta.ID).First(&line).Error)
	assert.Equal(t, 10.00, line.UnitPrice)
	assert.Equal(t, 20.00, line.Price)
}

func TestAddCartItemDuplicateRejected(t *testing.T) {
	r := setupRouter(t)
	pasta, _ := seedMenu(t)
	_, token := createUser(t, "alice")

	addToCart(t, r, token, pasta.ID, 1)

	w := perform(r, "POST", "/api/cart/menu-items", gin.H{"menuitem_id": pasta.ID, "quantity": 3}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddCartItemUnknownMenuItem(t *testing.T) {
	r := setupRouter(t)
	seedMenu(t)
	_, token := createUser(t, "alice")

	w := perform(r, "POST", "/api/cart/menu-items", gin.H{"menuitem_id": 9999, "quantity": 1}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddCartItemMissingFields(t *testing.T) {
	r := setupRouter(t)
	pasta, _ := seedMenu(t)
	_, token := createUser(t, "alice")

	w := perform(r, "POST", "/api/cart/menu-items", gin.H{"menuitem_id": pasta.ID}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartListsOwnLinesOnly(t *testing.T) {
	r := setupRouter(t)
	pasta, soup := seedMenu(t)
	_, aliceToken := createUser(t, "alice")
	_, bobToken := createUser(t, "bob")

	addToCart(t, r, aliceToken, pasta.ID, 1)
	addToCart(t, r, bobToken, soup.ID, 2)

	w := perform(r, "GET", "/api/cart/menu-items", nil, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
}

func TestClearCartIdempotent(t *testing.T) {
	r := setupRouter(t)
	pasta, _ := seedMenu(t)
	_, token := createUser(t, "alice")
	addToCart(t, r, token, pasta.ID, 1)

	w := perform(r, "DELETE", "/api/cart/menu-items", nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Clearing an already-empty cart still succeeds
	w = perform(r, "DELETE", "/api/cart/menu-items", nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	config.DB.Model(&models.CartItem{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCartRequiresAuth(t *testing.T) {
	r := setupRouter(t)
	w := perform(r, "GET", "/api/cart/menu-items", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
