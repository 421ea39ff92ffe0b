package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Identity returns a Gin middleware that resolves the caller's user id.
//
// Authorization ヘッダーが無い場合は defaultUser を設定して通過させます。
// Bearer トークンがある場合は署名と有効期限を検証し、sub クレームをユーザーIDとします。
// 不正なトークンは401、secret 未設定は500で中断します。
func Identity(secret, defaultUser string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.Set(ContextUserID, defaultUser)
			c.Next()
			return
		}
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Server misconfiguration (JWT_SECRET not set)
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 3. Parse and verify JWT signature (only HMAC allowed)
		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 4. Pass control to the next handler
		c.Set(ContextUserID, claims.Subject)
		c.Next()
	}
}

// UserID は Identity が設定したユーザーIDを返します。未設定なら空文字列です。
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
