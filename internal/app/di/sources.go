package di

import (
	"stockboard_backend/internal/feature/prices/usecase"
	"stockboard_backend/internal/platform/externalapi/alphavantage"
	"stockboard_backend/internal/platform/externalapi/twelvedata"
	"stockboard_backend/internal/platform/externalapi/yahoo"
	infrahttp "stockboard_backend/internal/platform/http"
	"stockboard_backend/internal/shared/ratelimiter"
)

// RegisterPriceSources は外部価格ソースを設定から組み立て、専用のHTTPクライアントとレートリミッターを付けて登録します。
func RegisterPriceSources(uc *usecase.PriceUsecase) error {
	yc, err := yahoo.LoadConfig()
	if err != nil {
		return err
	}
	uc.RegisterSource(
		yahoo.NewYahooFinance(yc, infrahttp.NewHTTPClient(yc.Timeout)),
		ratelimiter.NewRateLimiter(yahoo.SourceName, yc.RateLimit, yc.RateInterval),
	)

	ac, err := alphavantage.LoadConfig()
	if err != nil {
		return err
	}
	uc.RegisterSource(
		alphavantage.NewAlphaVantage(ac, infrahttp.NewHTTPClient(ac.Timeout)),
		ratelimiter.NewRateLimiter(alphavantage.SourceName, ac.RateLimit, ac.RateInterval),
	)

	tc, err := twelvedata.LoadConfig()
	if err != nil {
		return err
	}
	uc.RegisterSource(
		twelvedata.NewTwelveData(tc, infrahttp.NewHTTPClient(tc.Timeout)),
		ratelimiter.NewRateLimiter(twelvedata.SourceName, tc.RateLimit, tc.RateInterval),
	)
	return nil
}
