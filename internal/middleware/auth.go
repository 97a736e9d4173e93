package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"anoa.com/ecoinsight/pkg/apperror"
	"anoa.com/ecoinsight/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthMiddleware struct {
	secret string
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.secret == "" {
			response.ResponseError(c, apperror.New(http.StatusInternalServerError,
				"Server configuration error. Please contact administrator.", apperror.ErrConfiguration))
			c.Abort()
			return
		}

		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenString = parts[1]
			}
		}

		// Fallback to query parameter "token" (image links opened in a new tab)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			unauthorized(c, "No token, authorization denied")
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})

		if err != nil || !token.Valid {
			unauthorized(c, "Token is not valid")
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok || claims.Subject == "" {
			unauthorized(c, "Token is not valid")
			return
		}

		c.Set("user_id", claims.Subject)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	response.ResponseError(c, apperror.New(http.StatusUnauthorized, message, apperror.ErrUnauthorized))
	c.Abort()
}
