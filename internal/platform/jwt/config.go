package jwtmw

// EnvKeyJWTSecret はHMAC署名鍵を保持する環境変数名です。
const EnvKeyJWTSecret = "JWT_SECRET"

// ContextUserID はミドルウェアが解決したユーザーIDを gin.Context に格納するキーです。
const ContextUserID = "userID"
