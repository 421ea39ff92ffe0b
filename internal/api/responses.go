// Package api はHTTPレスポンスで共通に使う型を定義します。
package api

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は処理結果のメッセージのみを返すレスポンスボディです。
type MessageResponse struct {
	Message string `json:"message"`
}
