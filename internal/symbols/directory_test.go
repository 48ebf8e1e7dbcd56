package symbols

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"NiftyScreener/internal/store"
)

const sampleCSV = `SYMBOL, NAME OF COMPANY, SERIES, DATE OF LISTING, PAID UP VALUE, MARKET LOT, ISIN NUMBER, FACE VALUE
RELIANCE, Reliance Industries Limited, EQ, 29-NOV-1995, 10, 1, INE002A01018, 10
TCS, Tata Consultancy Services Limited, EQ, 25-AUG-2004, 1, 1, INE467B01029, 1
SOMEBOND, Some Bond Issue, N1, 01-JAN-2020, 10, 1, INE000000000, 10
HDFCBANK, HDFC Bank Limited, EQ, 08-NOV-1995, 1, 1, INE040A01034, 1
`

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestParseEquityCSV(t *testing.T) {
	infos, err := ParseEquityCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseEquityCSV: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("expected 3 EQ rows, got %d", len(infos))
	}
	if infos[0].Symbol != "RELIANCE" || infos[0].CompanyName != "Reliance Industries Limited" {
		t.Errorf("first row: %+v", infos[0])
	}
	for _, info := range infos {
		if info.Symbol == "SOMEBOND" {
			t.Error("non-EQ series must be filtered out")
		}
	}
}

func TestListTradableFetchesAndCaches(t *testing.T) {
	// A big enough CSV to pass the short-list sanity check.
	var b strings.Builder
	b.WriteString("SYMBOL, NAME OF COMPANY, SERIES\n")
	for _, s := range CuratedList()[:15] {
		b.WriteString(s + ", " + s + " Ltd, EQ\n")
	}

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(b.String()))
	}))
	defer srv.Close()

	st := openTestStore(t)
	d := NewDirectory(st)
	d.SourceURLs = []string{srv.URL}

	got := d.ListTradable(false)
	if len(got) != 15 {
		t.Fatalf("expected 15 symbols, got %d", len(got))
	}
	if hits != 1 {
		t.Fatalf("expected 1 fetch, got %d", hits)
	}

	// Second call comes from the cache.
	got = d.ListTradable(false)
	if len(got) != 15 || hits != 1 {
		t.Errorf("expected cached read, got %d symbols after %d fetches", len(got), hits)
	}

	// Force refresh goes back to the source.
	d.ListTradable(true)
	if hits != 2 {
		t.Errorf("force refresh should refetch, got %d fetches", hits)
	}
}

func TestListTradableFallsBackToCurated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	st := openTestStore(t)
	d := NewDirectory(st)
	d.SourceURLs = []string{srv.URL}

	got := d.ListTradable(false)
	if len(got) != len(CuratedList()) {
		t.Fatalf("expected curated fallback, got %d symbols", len(got))
	}
}

func TestMetadata(t *testing.T) {
	st := openTestStore(t)
	d := NewDirectory(st)

	infos, _ := ParseEquityCSV(strings.NewReader(sampleCSV))
	if err := st.SaveSymbols(infos); err != nil {
		t.Fatalf("SaveSymbols: %v", err)
	}

	info := d.Metadata("TCS")
	if info.CompanyName != "Tata Consultancy Services Limited" {
		t.Errorf("metadata miss: %+v", info)
	}

	unknown := d.Metadata("NOSUCH")
	if unknown.Symbol != "NOSUCH" || unknown.CompanyName != "" {
		t.Errorf("unknown symbol should yield bare record: %+v", unknown)
	}
}
