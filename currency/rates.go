package currency

import (
	"beacon/bizerror"
	"beacon/common"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	RatesExpiration = 12 * time.Hour

	ratesCacheKey = "rates"
)

// fallbackRates holds units per USD and is used until the first successful
// refresh, and again whenever cached rates expire without a refresh.
var fallbackRates = map[string]float64{
	"USD": 1,
	"BRL": 5.0,
	"EUR": 0.9,
	"GBP": 0.8,
	"JPY": 110,
}

// Service is the explicit currency collaborator: an injected object holding
// the cached rate table and the refresh timestamp, passed to any component
// that needs conversion.
type Service struct {
	Endpoint string

	cache   *gocache.Cache
	limiter *rate.Limiter

	// mu guards refreshTime: the auto refresh goroutine writes it while
	// handler goroutines read it.
	mu          sync.Mutex
	refreshTime time.Time
}

// RefreshTime is the wall clock moment of the last successful refresh, zero
// until the first one.
func (s *Service) RefreshTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshTime
}

// NewServiceFromEnv CURRENCY_API_URL
func NewServiceFromEnv() *Service {
	endpoint := os.ExpandEnv(os.Getenv("CURRENCY_API_URL"))
	if endpoint == "" {
		endpoint = "https://open.er-api.com/v6/latest/USD"
	}
	return NewService(endpoint)
}

func NewService(endpoint string) *Service {
	return &Service{
		Endpoint: endpoint,
		cache:    gocache.New(RatesExpiration, 10*time.Minute),
		limiter:  rate.NewLimiter(rate.Every(time.Minute), 1),
	}
}

// Rates is the active table: refreshed rates when cached, the fallback table
// otherwise.
func (s *Service) Rates() map[string]float64 {
	cached, found := s.cache.Get(ratesCacheKey)
	if !found {
		return fallbackRates
	}
	rates, ok := cached.(map[string]float64)
	if !ok {
		return fallbackRates
	}
	return rates
}

// Convert translates an amount between two supported currencies through the
// USD-based rate table.
func (s *Service) Convert(amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}
	rates := s.Rates()
	fromRate, found := rates[from]
	if !found || fromRate == 0 {
		return 0, bizerror.ErrUnknownCurrency
	}
	toRate, found := rates[to]
	if !found {
		return 0, bizerror.ErrUnknownCurrency
	}
	return amount / fromRate * toRate, nil
}

var symbols = map[string]string{
	"USD": "$",
	"BRL": "R$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// Format renders an amount for display. JPY carries no decimal places.
func (s *Service) Format(amount float64, code string) string {
	symbol, found := symbols[code]
	if !found {
		symbol = code + " "
	}
	decimals := 2
	if code == "JPY" {
		decimals = 0
	}
	return symbol + strconv.FormatFloat(amount, 'f', decimals, 64)
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// RefreshRates fetches the remote table. Failures keep the cached or
// fallback rates and are only logged, freshness is the single casualty.
// Calls are throttled, an over-eager caller is a silent no-op.
func (s *Service) RefreshRates(ctx context.Context) {
	if !s.limiter.Allow() {
		return
	}

	body, err := common.HttpInvokeJson(http.MethodGet, s.Endpoint, nil, "")
	if err != nil {
		logrus.Warnf("currency rates refresh failed, keeping previous rates: %v", err)
		return
	}

	parsed := ratesResponse{}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		logrus.Warnf("currency rates response unparseable, keeping previous rates: %v", err)
		return
	}

	rates := map[string]float64{}
	for code := range fallbackRates {
		if rate, found := parsed.Rates[code]; found && rate > 0 {
			rates[code] = rate
		} else {
			rates[code] = fallbackRates[code]
		}
	}

	s.cache.Set(ratesCacheKey, rates, gocache.DefaultExpiration)
	s.mu.Lock()
	s.refreshTime = time.Now()
	s.mu.Unlock()
	logrus.Infof("currency rates refreshed from %s", s.Endpoint)
}

// AutoRefresh refreshes on a timer until the context is canceled.
func (s *Service) AutoRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RefreshRates(ctx)
		}
	}
}
