package domain

import "errors"

var (
	// ErrUnknownSource は登録されていない外部価格ソース名が指定されたことを示します。
	ErrUnknownSource = errors.New("unknown price source")
	// ErrMalformedResponse はプロバイダのレスポンス構造が想定と異なることを示します。
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrProviderError はプロバイダがエラーオブジェクトを返したことを示します。
	ErrProviderError = errors.New("provider returned an error")
	// ErrRateLimited はプロバイダのレート制限に達したことを示します。
	ErrRateLimited = errors.New("provider rate limit reached")
	// ErrSourceUnavailable はネットワークエラーや非2xxステータスを示します。
	ErrSourceUnavailable = errors.New("price source unavailable")
)
