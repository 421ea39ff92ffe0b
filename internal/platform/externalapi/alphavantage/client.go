package alphavantage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"stockboard_backend/internal/feature/prices/domain"
	"stockboard_backend/internal/feature/prices/domain/entity"
	"stockboard_backend/internal/feature/prices/usecase"
	"stockboard_backend/internal/platform/externalapi/alphavantage/dto"

	"github.com/shopspring/decimal"
)

// SourceName は価格ソースとしての登録名です。
const SourceName = "alphavantage"

// MaxEntries は1レスポンスから変換する最大件数です。
const MaxEntries = 100

// AlphaVantage は Alpha Vantage の日足APIを PriceSource として提供します。
type AlphaVantage struct {
	cfg    Config
	client *http.Client
}

var _ usecase.PriceSource = (*AlphaVantage)(nil)

// NewAlphaVantage は指定された設定とHTTPクライアントで AlphaVantage を生成します。
func NewAlphaVantage(cfg Config, client *http.Client) *AlphaVantage {
	return &AlphaVantage{cfg: cfg, client: client}
}

func (a *AlphaVantage) Name() string { return SourceName }

// FetchDaily は req.Symbol の日足を取得します。req.Range は使いません。
// req.APIKey が空の場合は設定のAPIキーを使います。
func (a *AlphaVantage) FetchDaily(ctx context.Context, req entity.SourceRequest) ([]entity.PricePoint, error) {
	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = a.cfg.APIKey
	}

	q := url.Values{}
	q.Set("function", "TIME_SERIES_DAILY")
	q.Set("symbol", req.Symbol)
	q.Set("apikey", apiKey)
	u := fmt.Sprintf("%s/query?%s", a.cfg.BaseURL, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: alphavantage: %v", domain.ErrSourceUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: alphavantage http %d", domain.ErrSourceUnavailable, res.StatusCode)
	}
	return ParseDaily(res.Body, req.Symbol)
}

// ParseDaily は TIME_SERIES_DAILY のレスポンスを日足に変換します。
//
// "Error Message" は domain.ErrProviderError、"Note" / "Information" は domain.ErrRateLimited です。
// 日付キーはレスポンスに現れた順（通常は新しい順）に処理し、変換に成功したものを最大 MaxEntries 件返します。
// 変換できないエントリは警告を出して読み飛ばします。
func ParseDaily(r io.Reader, symbol string) ([]entity.PricePoint, error) {
	var root map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: alphavantage: %v", domain.ErrMalformedResponse, err)
	}

	if raw, ok := root[dto.KeyErrorMessage]; ok {
		return nil, fmt.Errorf("%w: alphavantage: %s", domain.ErrProviderError, text(raw))
	}
	for _, k := range []string{dto.KeyNote, dto.KeyInformation} {
		if raw, ok := root[k]; ok {
			slog.Warn("alphavantage rate limit notice", "symbol", symbol, "notice", text(raw))
			return nil, fmt.Errorf("%w: alphavantage: %s", domain.ErrRateLimited, text(raw))
		}
	}

	series, ok := root[dto.KeyTimeSeries]
	if !ok {
		return nil, fmt.Errorf("%w: alphavantage: missing %q node", domain.ErrMalformedResponse, dto.KeyTimeSeries)
	}
	points, err := parseSeries(series, symbol)
	if err != nil {
		return nil, err
	}
	slog.Info("parsed alphavantage series", "symbol", symbol, "points", len(points))
	return points, nil
}

// parseSeries はオブジェクトのキー順を保つため、トークン単位で読み進めます。
func parseSeries(series json.RawMessage, symbol string) ([]entity.PricePoint, error) {
	dec := json.NewDecoder(bytes.NewReader(series))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, fmt.Errorf("%w: alphavantage: time series is not an object", domain.ErrMalformedResponse)
	}

	points := make([]entity.PricePoint, 0, MaxEntries)
	for dec.More() && len(points) < MaxEntries {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: alphavantage: %v", domain.ErrMalformedResponse, err)
		}
		dateKey, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: alphavantage: %v", domain.ErrMalformedResponse, err)
		}

		p, err := parseEntry(dateKey, raw)
		if err != nil {
			slog.Warn("skipping malformed alphavantage entry", "symbol", symbol, "date", dateKey, "error", err)
			continue
		}
		p.ID = uint(len(points))
		p.Symbol = symbol
		points = append(points, p)
	}
	return points, nil
}

func parseEntry(dateKey string, raw json.RawMessage) (entity.PricePoint, error) {
	date, err := time.Parse("2006-01-02", dateKey)
	if err != nil {
		return entity.PricePoint{}, fmt.Errorf("parse date: %w", err)
	}
	var e dto.DailyEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return entity.PricePoint{}, err
	}

	var vals [4]float64
	for i, s := range []string{e.Open, e.High, e.Low, e.Close} {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return entity.PricePoint{}, fmt.Errorf("parse price %q: %w", s, err)
		}
		vals[i] = d.InexactFloat64()
	}
	vol, err := decimal.NewFromString(e.Volume)
	if err != nil {
		return entity.PricePoint{}, fmt.Errorf("parse volume %q: %w", e.Volume, err)
	}
	if !vol.IsInteger() {
		return entity.PricePoint{}, errors.New("volume is not an integer: " + e.Volume)
	}

	return entity.PricePoint{
		Date:   date,
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vol.IntPart(),
	}, nil
}

// text はJSON文字列ならその中身を、それ以外なら生のJSONを返します。
func text(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
