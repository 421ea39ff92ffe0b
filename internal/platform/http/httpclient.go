// Package http は外部価格APIの呼び出しに使うHTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 価格ソースごとに1つ作り、接続プールをソース間で共有しません。
//   - Dialer.Timeout / TLSHandshakeTimeout: 5秒
//   - MaxIdleConnsPerHost: 1ホストしか呼ばないため MaxIdleConns と同じ値にする
//   - Client.Timeout: リクエスト全体のタイムアウト（0以下なら10秒）
//
// http.DefaultClientにはタイムアウトがないため使わないこと。
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          16,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
