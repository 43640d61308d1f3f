package middleware

import (
	"net/http"
	"strings"
	"time"

	"restaurant-api/config"
	"restaurant-api/models"
	"restaurant-api/policy"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carry identity only. Roles are looked up from group membership
// on each request, never baked into the token.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a given user
func GenerateToken(user *models.User) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

func parseToken(c *gin.Context) (*Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return config.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}

// AuthRequired validates the JWT, injects identity into the context and
// resolves the caller's roles from group membership.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}

		roles, err := policy.RolesFor(config.DB, claims.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to resolve caller roles"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("roles", roles)
		c.Next()
	}
}

// AuthOptional resolves identity when a valid token is present but lets
// anonymous requests through. Used on public catalog reads.
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseToken(c); ok {
			c.Set("userID", claims.UserID)
			c.Set("username", claims.Username)
		}
		c.Next()
	}
}

// GetUserID extracts caller user ID from context
func GetUserID(c *gin.Context) uint {
	val, _ := c.Get("userID")
	return val.(uint)
}

// GetRoles extracts the caller's resolved roles from context
func GetRoles(c *gin.Context) policy.Roles {
	val, ok := c.Get("roles")
	if !ok {
		return policy.Roles{}
	}
	return val.(policy.Roles)
}
