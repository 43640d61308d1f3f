package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupRouter gives each test a fresh in-memory database and router.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	config.DB = db
	config.JWTSecret = []byte("test_secret")

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

// createUser stores a user, adds it to the named groups and returns the
// user with a valid token.
func createUser(t *testing.T, username string, groups ...string) (models.User, string) {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-checked-in-tests",
	}
	require.NoError(t, config.DB.Create(&user).Error)

	for _, name := range groups {
		var group models.Group
		require.NoError(t, config.DB.Where("name = ?", name).First(&group).Error)
		require.NoError(t, config.DB.Model(&group).Association("Users").Append(&user))
	}

	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return user, token
}

// seedMenu creates a category with two priced items
func seedMenu(t *testing.T) (models.MenuItem, models.MenuItem) {
	t.Helper()
	category := models.Category{Slug: "mains", Title: "Mains"}
	require.NoError(t, config.DB.Create(&category).Error)

	pasta := models.MenuItem{Title: "Pasta", Price: 10.00, CategoryID: category.ID}
	soup := models.MenuItem{Title: "Soup", Price: 5.00, CategoryID: category.ID}
	require.NoError(t, config.DB.Create(&pasta).Error)
	require.NoError(t, config.DB.Create(&soup).Error)
	return pasta, soup
}

// perform runs one request against the router, JSON-encoding the body
// and attaching the bearer token when given.
func perform(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// addToCart puts a line in the user's cart through the API
func addToCart(t *testing.T, r *gin.Engine, token string, menuItemID uint, quantity int) {
	t.Helper()
	w := perform(r, "POST", "/api/cart/menu-items", gin.H{"menuitem_id": menuItemID, "quantity": quantity}, token)
	require.Equal(t, 201, w.Code, w.Body.String())
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return date
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
