package utils

import (
	"log"
	"sync"
	"time"

	"finquest/config"

	"github.com/go-resty/resty/v2"
)

// CurrencyRate is one quote from the daily central bank feed
type CurrencyRate struct {
	CharCode string  `json:"CharCode"`
	Name     string  `json:"Name"`
	Value    float64 `json:"Value"`
	Previous float64 `json:"Previous"`
}

type ratesResponse struct {
	Date   string                  `json:"Date"`
	Valute map[string]CurrencyRate `json:"Valute"`
}

var (
	ratesMu     sync.RWMutex
	cachedRates []CurrencyRate
)

// displayed on the dashboard widget
var widgetCurrencies = []string{"USD", "EUR", "CNY"}

// FetchDailyRates pulls the daily currency feed and refreshes the cache
func FetchDailyRates() error {
	client := resty.New().SetTimeout(10 * time.Second)

	var payload ratesResponse
	resp, err := client.R().SetResult(&payload).Get(config.AppConfig.RatesApiURL)
	if err != nil {
		log.Printf("Error fetching currency rates: %v", err)
		return err
	}
	if resp.IsError() {
		log.Printf("Currency rates feed returned status %d", resp.StatusCode())
		return nil
	}

	rates := make([]CurrencyRate, 0, len(widgetCurrencies))
	for _, code := range widgetCurrencies {
		if rate, ok := payload.Valute[code]; ok {
			rates = append(rates, rate)
		}
	}

	ratesMu.Lock()
	cachedRates = rates
	ratesMu.Unlock()

	return nil
}

// CachedRates returns the last fetched quotes; empty until the first fetch
func CachedRates() []CurrencyRate {
	ratesMu.RLock()
	defer ratesMu.RUnlock()
	return cachedRates
}
