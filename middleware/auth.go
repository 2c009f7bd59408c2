package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"realty/response"
	"realty/services"
)

// AuthMiddleware requires a bearer token and, when roles are given,
// one of those role claims. The raw token is kept in the context so
// handlers can attach it to backend calls.
func AuthMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, userRole, err := services.GetUserFromToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == userRole {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		c.Set("userID", userID)
		c.Set("userRole", userRole)
		c.Set("token", tokenString)
		c.Next()
	}
}

// ErrorHandler converts accumulated gin errors into the envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			response.Error(c, 0, err.Error())
		}
	}
}
