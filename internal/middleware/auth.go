package middleware

import (
	"net/http"
	"strings"

	"moodlist-svc/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims JWT载荷
type UserClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Auth JWT认证中间件，校验通过后把user_id写入上下文
func Auth(jwtSecret string, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从Header获取Token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Missing authorization header")
			return
		}

		// 解析Bearer Token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		// 验证Token
		claims := &UserClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid || claims.UserID == "" {
			log.Warn("JWT validation failed",
				logger.String("request_id", GetRequestID(c)),
				logger.Error(err))
			unauthorized(c, "Invalid or expired token")
			return
		}

		// 将用户信息存储到上下文
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
		"request_id": GetRequestID(c),
	})
	c.Abort()
}
