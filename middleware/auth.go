package middleware

import (
	"strings"

	"github.com/Julie983186/DynamicPricing/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware(jwtKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(401, gin.H{"error": "未登录"})
			c.Abort()
			return
		}

		tokenString := authHeader[7:] // 去掉 "Bearer "
		claims := &utils.Claims{}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtKey), nil
		})

		if err != nil || !token.Valid {
			c.JSON(401, gin.H{"error": "无效的Token"})
			c.Abort()
			return
		}

		// 将 UserID 存入上下文，方便后续 Handler 直接使用
		c.Set("current_user_id", claims.UserID)
		c.Next()
	}
}

// OptionalAuth 可选登录：带了合法 Token 就记录用户，没带也放行。
// 扫描接口给访客模式用。
func OptionalAuth(jwtKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		claims := &utils.Claims{}
		token, err := jwt.ParseWithClaims(authHeader[7:], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtKey), nil
		})
		if err == nil && token.Valid {
			c.Set("current_user_id", claims.UserID)
		}
		c.Next()
	}
}
