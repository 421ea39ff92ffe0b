package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"stockboard_backend/internal/feature/prices/domain"
	"stockboard_backend/internal/feature/prices/domain/entity"
	"stockboard_backend/internal/feature/prices/usecase"
	"stockboard_backend/internal/platform/externalapi/yahoo/dto"
)

// SourceName は価格ソースとしての登録名です。
const SourceName = "yahoo"

const secondsPerDay = 86400

// YahooFinance は Yahoo Finance chart API を PriceSource として提供します。
type YahooFinance struct {
	cfg    Config
	client *http.Client
}

var _ usecase.PriceSource = (*YahooFinance)(nil)

// NewYahooFinance は指定された設定とHTTPクライアントで YahooFinance を生成します。
func NewYahooFinance(cfg Config, client *http.Client) *YahooFinance {
	return &YahooFinance{cfg: cfg, client: client}
}

func (y *YahooFinance) Name() string { return SourceName }

// FetchDaily は req.Symbol の日足を req.Range（1d,5d,1mo,3mo,6mo,1y,2y,5y,10y,ytd,max）分取得します。
func (y *YahooFinance) FetchDaily(ctx context.Context, req entity.SourceRequest) ([]entity.PricePoint, error) {
	q := url.Values{}
	q.Set("interval", "1d")
	q.Set("range", req.Range)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(req.Symbol), q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if y.cfg.UserAgent != "" {
		httpReq.Header.Set("User-Agent", y.cfg.UserAgent)
	}
	httpReq.Header.Set("Accept", "application/json")

	res, err := y.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo: %v", domain.ErrSourceUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: yahoo http %d", domain.ErrSourceUnavailable, res.StatusCode)
	}

	var body dto.ChartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: yahoo: %v", domain.ErrMalformedResponse, err)
	}
	return ParseChart(body, req.Symbol)
}

// ParseChart は chart レスポンスを日足に変換します。
//
// chart / result[0] / timestamp / indicators.quote[0] が無い場合は domain.ErrMalformedResponse を返します。
// 5つの価格配列すべてに値があるインデックスだけを採用し、null や不正な要素は警告を出して読み飛ばします。
// 日付はUnix秒を86400で割った通算日（日中の時刻は切り捨て）です。
func ParseChart(body dto.ChartResponse, symbol string) ([]entity.PricePoint, error) {
	if body.Chart == nil {
		return nil, fmt.Errorf("%w: yahoo: missing chart node", domain.ErrMalformedResponse)
	}
	if len(body.Chart.Result) == 0 {
		if e := body.Chart.Error; e != nil {
			return nil, fmt.Errorf("%w: yahoo: %s: %s", domain.ErrProviderError, e.Code, e.Description)
		}
		return nil, fmt.Errorf("%w: yahoo: missing result node", domain.ErrMalformedResponse)
	}
	result := body.Chart.Result[0]
	if result.Timestamp == nil || result.Indicators == nil || len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: yahoo: missing timestamp or quote node", domain.ErrMalformedResponse)
	}
	quote := result.Indicators.Quote[0]

	points := make([]entity.PricePoint, 0, len(result.Timestamp))
	for i := range result.Timestamp {
		p, err := parseElement(result.Timestamp, quote, i)
		if errors.Is(err, errSkip) {
			continue
		}
		if err != nil {
			slog.Warn("skipping malformed yahoo element", "symbol", symbol, "index", i, "error", err)
			continue
		}
		p.ID = uint(i)
		p.Symbol = symbol
		points = append(points, p)
	}
	slog.Info("parsed yahoo chart", "symbol", symbol, "points", len(points))
	return points, nil
}

// errSkip は値が欠けている（範囲外・null）要素を示します。警告は出しません。
var errSkip = errors.New("missing element")

var jsonNull = []byte("null")

func parseElement(ts []json.RawMessage, q dto.Quote, i int) (entity.PricePoint, error) {
	arrays := [][]json.RawMessage{q.Open, q.High, q.Low, q.Close, q.Volume}
	for _, a := range arrays {
		if i >= len(a) || isNull(a[i]) {
			return entity.PricePoint{}, errSkip
		}
	}
	if isNull(ts[i]) {
		return entity.PricePoint{}, errSkip
	}

	var sec int64
	if err := json.Unmarshal(ts[i], &sec); err != nil {
		return entity.PricePoint{}, fmt.Errorf("timestamp: %w", err)
	}
	var vals [4]float64
	for k, a := range arrays[:4] {
		if err := json.Unmarshal(a[i], &vals[k]); err != nil {
			return entity.PricePoint{}, fmt.Errorf("price: %w", err)
		}
	}
	var vol float64
	if err := json.Unmarshal(q.Volume[i], &vol); err != nil {
		return entity.PricePoint{}, fmt.Errorf("volume: %w", err)
	}

	return entity.PricePoint{
		Date:   epochDay(sec),
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: int64(vol),
	}, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}

// epochDay は通算日の切り捨てで暦日を求めます（負の秒は過去方向に切り捨て）。
func epochDay(sec int64) time.Time {
	d := sec / secondsPerDay
	if sec%secondsPerDay < 0 {
		d--
	}
	return time.Unix(d*secondsPerDay, 0).UTC()
}
