package model

import "time"

// PriceBar represents a single daily OHLCV candle.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// StockInfo holds directory metadata for a listed symbol.
type StockInfo struct {
	Symbol       string
	CompanyName  string
	Sector       string
	MarketCap    int64
	CurrentPrice float64
}
