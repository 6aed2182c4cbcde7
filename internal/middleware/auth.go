package middleware

import (
	"net/http"
	"os"
	"strings"

	"worldtax/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/lo"
)

const (
	ctxUserID   = "userID"
	ctxUserRole = "userRole"
)

// GetJWTSecret resolves the HMAC secret: configured value first, then JWT_SECRET.
func GetJWTSecret(configured string) []byte {
	secret := configured
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only, DO NOT use in production
	}
	return []byte(secret)
}

// Auth validates HS256 bearer tokens issued for admin operations.
type Auth struct {
	secret []byte
	parser *jwt.Parser
}

func NewAuth(secret []byte) *Auth {
	return &Auth{
		secret: secret,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()),
	}
}

// RequireRole aborts unless the bearer token is valid and its role claim is one of allowedRoles
func (a *Auth) RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
			return
		}

		claims := jwt.MapClaims{}
		token, err := a.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}

		userRole, ok := claims["role"].(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Role not found in token"))
			return
		}

		if !lo.Contains(allowedRoles, userRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		subject, _ := claims.GetSubject()
		c.Set(ctxUserID, subject)
		c.Set(ctxUserRole, userRole)

		c.Next()
	}
}

// UserID returns the subject of the validated token, or "" outside RequireRole.
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}
