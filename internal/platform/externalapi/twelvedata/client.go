package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stockboard_backend/internal/feature/prices/domain"
	"stockboard_backend/internal/feature/prices/domain/entity"
	"stockboard_backend/internal/feature/prices/usecase"
	"stockboard_backend/internal/platform/externalapi/twelvedata/dto"
)

// SourceName は価格ソースとしての登録名です。
const SourceName = "twelvedata"

// DefaultOutputSize は期間トークンが解釈できない場合の取得本数です。
const DefaultOutputSize = 100

// 期間トークンをおおよその営業日数に読み替える
var outputSizes = map[string]int{
	"1d":  1,
	"5d":  5,
	"1mo": 22,
	"3mo": 66,
	"6mo": 126,
	"1y":  252,
	"2y":  504,
	"5y":  1260,
	"10y": 2520,
	"max": 5000,
}

// TwelveData はTwelve Data外部APIの日足を PriceSource として提供します。
type TwelveData struct {
	cfg    Config
	client *http.Client
}

// TwelveDataがPriceSourceを実装していることをコンパイル時に検証します。
var _ usecase.PriceSource = (*TwelveData)(nil)

// NewTwelveData は指定された設定とHTTPクライアントでTwelveDataの新しいインスタンスを生成します。
func NewTwelveData(cfg Config, client *http.Client) *TwelveData {
	return &TwelveData{cfg: cfg, client: client}
}

func (t *TwelveData) Name() string { return SourceName }

// OutputSize は期間トークン（1mo, 1y など）を取得本数に変換します。
func OutputSize(rng string) int {
	if n, ok := outputSizes[strings.ToLower(strings.TrimSpace(rng))]; ok {
		return n
	}
	return DefaultOutputSize
}

// FetchDaily はTwelve Data APIから日足を取得し、entity.PricePointのスライスとして返します。
func (t *TwelveData) FetchDaily(ctx context.Context, req entity.SourceRequest) ([]entity.PricePoint, error) {
	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = t.cfg.APIKey
	}

	q := url.Values{}
	// クエリパラメータを追加
	q.Set("symbol", req.Symbol)
	q.Set("interval", "1day")
	q.Set("outputsize", strconv.Itoa(OutputSize(req.Range)))
	q.Set("apikey", apiKey)

	// URLを生成
	u := fmt.Sprintf("%s/time_series?%s", t.cfg.BaseURL, q.Encode())

	// リクエストオブジェクトを作成
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	// リクエストを実行
	res, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: twelvedata: %v", domain.ErrSourceUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: twelvedata http %d", domain.ErrSourceUnavailable, res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.TimeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: twelvedata: %v", domain.ErrMalformedResponse, err)
	}
	return Convert(body, req.Symbol)
}

// Convert はtime_seriesレスポンスを日足に変換します。変換できない足は警告を出して読み飛ばします。
func Convert(body dto.TimeSeriesResponse, symbol string) ([]entity.PricePoint, error) {
	if body.Status == "error" {
		if body.Code == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: twelvedata: %s", domain.ErrRateLimited, body.Message)
		}
		return nil, fmt.Errorf("%w: twelvedata: %s", domain.ErrProviderError, body.Message)
	}

	points := make([]entity.PricePoint, 0, len(body.Values))
	for _, v := range body.Values {
		p, err := convertValue(v)
		if err != nil {
			slog.Warn("skipping malformed twelvedata value", "symbol", symbol, "datetime", v.Datetime, "error", err)
			continue
		}
		p.ID = uint(len(points))
		p.Symbol = symbol
		points = append(points, p)
	}
	return points, nil
}

func convertValue(v dto.ValueEntry) (entity.PricePoint, error) {
	// タイムスタンプをパース
	tm, err := time.Parse("2006-01-02 15:04:05", v.Datetime)
	if err != nil {
		tm, err = time.Parse("2006-01-02", v.Datetime)
		if err != nil {
			return entity.PricePoint{}, fmt.Errorf("parse time %q: %w", v.Datetime, err)
		}
	}

	var vals [4]float64
	for i, s := range []string{v.Open, v.High, v.Low, v.Close} {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return entity.PricePoint{}, fmt.Errorf("parse price %q: %w", s, err)
		}
		vals[i] = f
	}
	// 出来高をパース
	vol, err := strconv.ParseInt(v.Volume, 10, 64)
	if err != nil {
		return entity.PricePoint{}, fmt.Errorf("parse volume %q: %w", v.Volume, err)
	}

	return entity.PricePoint{
		Date:   entity.CivilDate(tm),
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vol,
	}, nil
}
