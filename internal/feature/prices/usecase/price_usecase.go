// Package usecase は株価履歴の取得・モック生成・外部ソース取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"time"

	instrumentdomain "stockboard_backend/internal/feature/instruments/domain"
	instrument "stockboard_backend/internal/feature/instruments/domain/entity"
	"stockboard_backend/internal/feature/prices/domain"
	"stockboard_backend/internal/feature/prices/domain/entity"
	"stockboard_backend/internal/shared/ratelimiter"
)

// PriceRepository は保存済み株価履歴の永続化を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceRepository interface {
	// FindByInstrument は銘柄の全履歴を日付昇順で返します。
	FindByInstrument(ctx context.Context, instrumentID uint) ([]entity.PricePoint, error)
	// FindByInstrumentBetween は [start, end] の履歴を日付昇順で返します。
	FindByInstrumentBetween(ctx context.Context, instrumentID uint, start, end time.Time) ([]entity.PricePoint, error)
	Create(ctx context.Context, p *entity.PricePoint) error
	ExistsByInstrument(ctx context.Context, instrumentID uint) (bool, error)
	DeleteByInstrument(ctx context.Context, instrumentID uint) error
}

// InstrumentFinder はモック生成の基準価格を得るために銘柄を参照します。
type InstrumentFinder interface {
	FindByID(ctx context.Context, id uint) (*instrument.Instrument, error)
}

// PriceSource は外部の日足データ提供元です。
// 新しいプロバイダは RegisterSource で追加し、呼び出し側は変更不要です。
type PriceSource interface {
	Name() string
	FetchDaily(ctx context.Context, req entity.SourceRequest) ([]entity.PricePoint, error)
}

// FetchResult は外部ソース取得の結果です。
// Err が nil で Points が空なら「データなし」、Err が非nilなら「障害による空」です。
type FetchResult struct {
	Source string
	Points []entity.PricePoint
	Err    error
}

type registeredSource struct {
	src     PriceSource
	limiter ratelimiter.RateLimiterInterface
}

// PriceUsecase は株価履歴に関するユースケースです。
type PriceUsecase struct {
	prices      PriceRepository
	instruments InstrumentFinder
	sources     map[string]registeredSource
	random      func() float64
}

// NewPriceUsecase は新しい PriceUsecase を作成します。
func NewPriceUsecase(prices PriceRepository, instruments InstrumentFinder) *PriceUsecase {
	return &PriceUsecase{
		prices:      prices,
		instruments: instruments,
		sources:     map[string]registeredSource{},
		random:      rand.Float64,
	}
}

// WithRandom はモック生成に使う [0,1) の乱数源を差し替えます。
func (u *PriceUsecase) WithRandom(r func() float64) *PriceUsecase {
	u.random = r
	return u
}

// RegisterSource は外部価格ソースを登録します。limiter が nil の場合は待機しません。
func (u *PriceUsecase) RegisterSource(src PriceSource, limiter ratelimiter.RateLimiterInterface) {
	u.sources[src.Name()] = registeredSource{src: src, limiter: limiter}
}

// SourceNames は登録済みの外部ソース名を昇順で返します。
func (u *PriceUsecase) SourceNames() []string {
	names := make([]string, 0, len(u.sources))
	for n := range u.sources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SupportedPeriods は GetSeriesForPeriod が受け付ける期間トークンを返します。
func (u *PriceUsecase) SupportedPeriods() []string {
	out := make([]string, len(supportedPeriods))
	copy(out, supportedPeriods)
	return out
}

// GetSeries は銘柄の保存済み履歴を日付昇順で返します。未知の銘柄は空です。
func (u *PriceUsecase) GetSeries(ctx context.Context, instrumentID uint) ([]entity.PricePoint, error) {
	return u.prices.FindByInstrument(ctx, instrumentID)
}

// GetSeriesForPeriod は [PeriodStart(today, period), today] の履歴を返します。
func (u *PriceUsecase) GetSeriesForPeriod(ctx context.Context, instrumentID uint, period string, today time.Time) ([]entity.PricePoint, error) {
	end := entity.CivilDate(today)
	start := PeriodStart(end, period)
	return u.prices.FindByInstrumentBetween(ctx, instrumentID, start, end)
}

// HasSeries は保存済み履歴が1件以上あるかを返します。
func (u *PriceUsecase) HasSeries(ctx context.Context, instrumentID uint) (bool, error) {
	return u.prices.ExistsByInstrument(ctx, instrumentID)
}

// DeleteSeries は銘柄の履歴を全件削除します。存在しなくてもエラーにはなりません。
func (u *PriceUsecase) DeleteSeries(ctx context.Context, instrumentID uint) error {
	return u.prices.DeleteByInstrument(ctx, instrumentID)
}

// GenerateMockSeries は today-days から today-1 までの平日について、
// 銘柄の現在価格を起点としたランダムウォークの日足を1件ずつ保存します。
//
// 銘柄が存在しない場合はログを出して 0, nil を返します。
// 途中で保存に失敗した場合はそれまでの件数とエラーを返します（保存済みの行は残ります）。
func (u *PriceUsecase) GenerateMockSeries(ctx context.Context, instrumentID uint, days int, today time.Time) (int, error) {
	inst, err := u.instruments.FindByID(ctx, instrumentID)
	if errors.Is(err, instrumentdomain.ErrInstrumentNotFound) {
		slog.Warn("mock generation skipped: instrument not found", "instrument_id", instrumentID)
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	end := entity.CivilDate(today)
	base := inst.Price
	generated := 0
	for i := days; i >= 1; i-- {
		date := end.AddDate(0, 0, -i)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		p := u.nextPoint(base)
		p.InstrumentID = inst.ID
		p.Symbol = inst.Symbol
		p.Date = date
		if err := u.prices.Create(ctx, &p); err != nil {
			return generated, fmt.Errorf("persist mock price %s: %w", date.Format("2006-01-02"), err)
		}
		generated++
		base = p.Close
	}
	slog.Info("mock price series generated", "instrument_id", instrumentID, "symbol", inst.Symbol, "days", days, "generated", generated)
	return generated, nil
}

// nextPoint は base から1日分の値動きを生成します。
func (u *PriceUsecase) nextPoint(base float64) entity.PricePoint {
	closePrice := base * (1 + (u.random()-0.5)*0.02)
	openPrice := closePrice * (1 + (u.random()-0.5)*0.01)
	high := math.Max(openPrice, closePrice) * (1 + u.random()*0.005)
	low := math.Min(openPrice, closePrice) * (1 - u.random()*0.005)
	volume := int64(u.random()*1_000_000) + 100_000
	return entity.PricePoint{
		Open:   openPrice,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}
}

// FetchExternal は登録済みの外部ソースから日足を取得します。結果は保存しません。
// 失敗はエラーとして返さず、ログを出した上で FetchResult.Err に格納します。
func (u *PriceUsecase) FetchExternal(ctx context.Context, source string, req entity.SourceRequest) FetchResult {
	res := FetchResult{Source: source, Points: []entity.PricePoint{}}

	rs, ok := u.sources[source]
	if !ok {
		res.Err = fmt.Errorf("%w: %q", domain.ErrUnknownSource, source)
		slog.Warn("external price fetch rejected", "source", source, "error", res.Err)
		return res
	}

	if rs.limiter != nil {
		if err := rs.limiter.Wait(ctx); err != nil {
			res.Err = fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
			slog.Error("external price fetch aborted while rate limited", "source", source, "symbol", req.Symbol, "error", err)
			return res
		}
	}

	points, err := rs.src.FetchDaily(ctx, req)
	if err != nil {
		res.Err = err
		slog.Error("external price fetch failed", "source", source, "symbol", req.Symbol, "range", req.Range, "error", err)
		return res
	}
	if points != nil {
		res.Points = points
	}
	slog.Info("external price fetch succeeded", "source", source, "symbol", req.Symbol, "points", len(res.Points))
	return res
}
