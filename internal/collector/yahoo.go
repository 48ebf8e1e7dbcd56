package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"NiftyScreener/internal/model"
)

// YahooFetcher implements Fetcher against the Yahoo Finance public chart
// and spark APIs. NSE symbols are addressed with the ".NS" suffix.
type YahooFetcher struct {
	Client  *http.Client
	BaseURL string
	Suffix  string
}

// NewYahooFetcher creates a Yahoo Finance fetcher for NSE tickers.
func NewYahooFetcher() *YahooFetcher {
	return &YahooFetcher{
		Client:  &http.Client{Timeout: 30 * time.Second},
		BaseURL: "https://query1.finance.yahoo.com",
		Suffix:  ".NS",
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) ticker(symbol string) string {
	if strings.Contains(symbol, ".") || strings.HasPrefix(symbol, "^") {
		return symbol
	}
	return symbol + f.Suffix
}

// yahooChart is the response structure from the chart API.
type yahooChart struct {
	Chart struct {
		Result []yahooResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooResult struct {
	Meta struct {
		Symbol string `json:"symbol"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []any `json:"open"`
			High   []any `json:"high"`
			Low    []any `json:"low"`
			Close  []any `json:"close"`
			Volume []any `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// yahooSpark is the response structure from the multi-symbol spark API.
type yahooSpark struct {
	Spark struct {
		Result []struct {
			Symbol   string        `json:"symbol"`
			Response []yahooResult `json:"response"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"spark"`
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func rangeForDays(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}

func (f *YahooFetcher) get(u string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusNotFound:
		return nil, ErrNoData
	default:
		return nil, fmt.Errorf("yahoo: status %d: %w", resp.StatusCode, ErrMalformed)
	}
}

func barsFromResult(result yahooResult) []model.PriceBar {
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return nil
	}

	bars := make([]model.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, h, l, c := toFloat(quote.Open[i]), toFloat(quote.High[i]), toFloat(quote.Low[i]), toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // null bars on holidays
		}
		bars = append(bars, model.PriceBar{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars
}

func (f *YahooFetcher) FetchDailyBars(symbol string, lookbackDays int) ([]model.PriceBar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.BaseURL, url.PathEscape(f.ticker(symbol)), rangeForDays(lookbackDays))

	body, err := f.get(u)
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", ErrMalformed)
	}
	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == "Not Found" {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("yahoo api error %s: %w", chart.Chart.Error.Code, ErrMalformed)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, ErrNoData
	}

	bars := barsFromResult(chart.Chart.Result[0])
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	if len(bars) > lookbackDays {
		bars = bars[len(bars)-lookbackDays:]
	}
	return bars, nil
}

// FetchDailyBarsBatch fetches a group of symbols in one spark call. Symbols
// absent from the response are simply missing from the returned map.
func (f *YahooFetcher) FetchDailyBarsBatch(symbols []string, lookbackDays int) (map[string][]model.PriceBar, error) {
	if len(symbols) == 0 {
		return map[string][]model.PriceBar{}, nil
	}

	tickers := make([]string, len(symbols))
	bySuffix := make(map[string]string, len(symbols))
	for i, s := range symbols {
		tickers[i] = f.ticker(s)
		bySuffix[tickers[i]] = s
	}

	u := fmt.Sprintf("%s/v8/finance/spark?symbols=%s&interval=1d&range=%s",
		f.BaseURL, url.QueryEscape(strings.Join(tickers, ",")), rangeForDays(lookbackDays))

	body, err := f.get(u)
	if err != nil {
		return nil, err
	}

	var spark yahooSpark
	if err := json.Unmarshal(body, &spark); err != nil {
		return nil, fmt.Errorf("yahoo spark decode: %w", ErrMalformed)
	}
	if spark.Spark.Error != nil {
		return nil, fmt.Errorf("yahoo spark error %s: %w", spark.Spark.Error.Code, ErrMalformed)
	}
	if len(spark.Spark.Result) == 0 {
		return nil, ErrNoData
	}

	out := make(map[string][]model.PriceBar, len(spark.Spark.Result))
	for _, entry := range spark.Spark.Result {
		symbol, ok := bySuffix[entry.Symbol]
		if !ok || len(entry.Response) == 0 {
			continue
		}
		bars := barsFromResult(entry.Response[0])
		if len(bars) == 0 {
			continue
		}
		if len(bars) > lookbackDays {
			bars = bars[len(bars)-lookbackDays:]
		}
		out[symbol] = bars
	}
	return out, nil
}

func (f *YahooFetcher) FetchCurrentPrice(symbol string) (float64, error) {
	bars, err := f.FetchDailyBars(symbol, 5)
	if err != nil {
		return 0, err
	}
	return bars[len(bars)-1].Close, nil
}
