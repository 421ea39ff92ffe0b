// Package middleware はすべてのルートに共通する gin ミドルウェアです。
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header name for request ID
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestID"

// maxRequestIDLen を超える受信IDは信用せず採番し直す
const maxRequestIDLen = 128

// RequestID はリクエストごとにIDを付与します。
// X-Request-ID ヘッダーがあればそれを使い、無ければ UUID を生成してレスポンスにも返します。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID はコンテキストに保存されたリクエストIDを返します。無ければ空文字列です。
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
