// Package symbols resolves the tradable NSE symbol universe. The exchange
// CSV is the primary source, cached in the store; a curated list of liquid
// names and a minimal hardcoded list back it up.
package symbols

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"NiftyScreener/internal/model"
	"NiftyScreener/internal/store"
)

var defaultSourceURLs = []string{
	"https://archives.nseindia.com/content/equities/EQUITY_L.csv",
	"https://www1.nseindia.com/content/equities/EQUITY_L.csv",
}

// Directory fetches and caches the listed-equity universe.
type Directory struct {
	Client     *http.Client
	SourceURLs []string
	store      *store.Store
}

func NewDirectory(st *store.Store) *Directory {
	return &Directory{
		Client:     &http.Client{Timeout: 15 * time.Second},
		SourceURLs: defaultSourceURLs,
		store:      st,
	}
}

// ListTradable returns the symbol universe, sorted. Resolution order: the
// store cache (unless forceRefresh), then each exchange URL, then the
// curated list. The basic list is the floor; this never returns empty.
func (d *Directory) ListTradable(forceRefresh bool) []string {
	if !forceRefresh {
		if cached, err := d.store.LoadSymbols(); err != nil {
			log.Printf("[WARN] symbol cache read: %v", err)
		} else if len(cached) > 0 {
			out := make([]string, len(cached))
			for i, info := range cached {
				out[i] = info.Symbol
			}
			return out
		}
	}

	for _, u := range d.SourceURLs {
		infos, err := d.fetchEquityList(u)
		if err != nil {
			log.Printf("[WARN] symbol fetch %s: %v", u, err)
			continue
		}
		if len(infos) <= 10 {
			log.Printf("[WARN] symbol fetch %s: suspiciously short list (%d)", u, len(infos))
			continue
		}
		if err := d.store.SaveSymbols(infos); err != nil {
			log.Printf("[WARN] symbol cache write: %v", err)
		}
		out := make([]string, len(infos))
		for i, info := range infos {
			out[i] = info.Symbol
		}
		sort.Strings(out)
		log.Printf("[INFO] fetched %d symbols from exchange", len(out))
		return out
	}

	log.Println("[WARN] exchange unavailable, using curated symbol list")
	return CuratedList()
}

// Metadata returns directory metadata for a symbol from the cache. Unknown
// symbols get a bare record so scoring can proceed without metadata.
func (d *Directory) Metadata(symbol string) model.StockInfo {
	cached, err := d.store.LoadSymbols()
	if err == nil {
		for _, info := range cached {
			if info.Symbol == symbol {
				return info
			}
		}
	}
	return model.StockInfo{Symbol: symbol}
}

// fetchEquityList downloads and parses the exchange's EQUITY_L.csv,
// keeping only the EQ series.
func (d *Directory) fetchEquityList(sourceURL string) ([]model.StockInfo, error) {
	req, err := http.NewRequest(http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "text/csv")

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch equity list: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("equity list: status %d", resp.StatusCode)
	}
	return ParseEquityCSV(resp.Body)
}

// ParseEquityCSV reads the NSE equity master CSV. Column names carry stray
// leading spaces in the exchange file, so headers are trimmed before lookup.
func ParseEquityCSV(r io.Reader) ([]model.StockInfo, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	symIdx, ok := col["SYMBOL"]
	if !ok {
		return nil, fmt.Errorf("csv missing SYMBOL column")
	}
	nameIdx, hasName := col["NAME OF COMPANY"]
	seriesIdx, hasSeries := col["SERIES"]

	var out []model.StockInfo
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if hasSeries && strings.TrimSpace(row[seriesIdx]) != "EQ" {
			continue
		}
		symbol := strings.TrimSpace(row[symIdx])
		if symbol == "" {
			continue
		}
		info := model.StockInfo{Symbol: symbol}
		if hasName {
			info.CompanyName = strings.TrimSpace(row[nameIdx])
		}
		out = append(out, info)
	}
	return out, nil
}

// CuratedList is the fallback universe of liquid large caps.
func CuratedList() []string {
	return []string{
		"RELIANCE", "TCS", "HDFCBANK", "INFY", "ICICIBANK", "BHARTIARTL",
		"SBIN", "ITC", "LT", "HCLTECH", "AXISBANK", "MARUTI", "ASIANPAINT",
		"NESTLEIND", "BAJFINANCE", "WIPRO", "ULTRACEMCO", "TITAN", "POWERGRID",
		"NTPC", "TECHM", "SUNPHARMA", "COALINDIA", "TATAMOTORS", "JSWSTEEL",
		"GRASIM", "HINDALCO", "INDUSINDBK", "BAJAJFINSV", "CIPLA", "DRREDDY",
		"EICHERMOT", "BRITANNIA", "DIVISLAB", "TATACONSUM", "HEROMOTOCO",
		"APOLLOHOSP", "ADANIENT", "UPL", "BPCL", "ONGC", "IOC", "TATASTEEL",
	}
}

// BasicList is the minimal last-resort universe.
func BasicList() []string {
	return []string{"RELIANCE", "TCS", "HDFCBANK", "INFY", "ICICIBANK"}
}
