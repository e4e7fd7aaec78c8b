package asx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"trading_backend/internal/feature/accounts/domain"
	"trading_backend/internal/feature/accounts/usecase"
	marketdomain "trading_backend/internal/feature/market/domain"
	"trading_backend/internal/platform/externalapi/asx/dto"
	"trading_backend/internal/platform/metrics"
	"trading_backend/internal/shared/ratelimiter"
)

// QuoteClient fetches live share prices from the ASX feed.
type QuoteClient struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

var _ usecase.QuoteProvider = (*QuoteClient)(nil)

// NewQuoteClient creates a QuoteClient with the given configuration, HTTP
// client and rate limiter. A nil limiter disables rate limiting.
func NewQuoteClient(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *QuoteClient {
	return &QuoteClient{cfg: cfg, client: client, limiter: limiter}
}

// GetQuote returns the quote for one symbol. An unknown symbol maps to
// domain.ErrSymbolNotFound.
func (q *QuoteClient) GetQuote(ctx context.Context, symbol string) (*usecase.Quote, error) {
	quotes, err := q.GetQuotes(ctx, []string{symbol})
	if err != nil {
		return nil, err
	}
	quote, ok := quotes[symbol]
	if !ok {
		return nil, domain.ErrSymbolNotFound
	}
	return &quote, nil
}

// GetQuotes returns quotes for the given symbols, keyed by symbol. Symbols
// the feed does not know are absent from the result.
func (q *QuoteClient) GetQuotes(ctx context.Context, symbols []string) (map[string]usecase.Quote, error) {
	if len(symbols) == 0 {
		return map[string]usecase.Quote{}, nil
	}
	if q.limiter != nil {
		q.limiter.WaitIfNeeded()
	}

	params := url.Values{}
	params.Set("symbols", strings.Join(symbols, ","))
	params.Set("apikey", q.cfg.APIKey)
	u := fmt.Sprintf("%s/quotes?%s", q.cfg.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := q.client.Do(req)
	if err != nil {
		metrics.QuoteLookups.WithLabelValues("error").Inc()
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		metrics.QuoteLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("share price feed http %d", res.StatusCode)
	}

	var body dto.QuotesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		metrics.QuoteLookups.WithLabelValues("error").Inc()
		return nil, err
	}
	if body.Status == "error" {
		metrics.QuoteLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("share price feed: %s", body.Message)
	}

	quotes := make(map[string]usecase.Quote, len(body.Quotes))
	for _, item := range body.Quotes {
		// Quotes below $2 trade in tenths of a cent, so round to the
		// exchange's precision at each price level before handing them out.
		places := int32(marketdomain.NumberOfDecimals(item.Last))
		quotes[item.Symbol] = usecase.Quote{
			Symbol:        item.Symbol,
			Name:          item.Name,
			Ask:           item.Ask.Round(places),
			Bid:           item.Bid.Round(places),
			Last:          item.Last.Round(places),
			Change:        item.Change,
			ChangePercent: item.ChangePercent,
		}
	}
	metrics.QuoteLookups.WithLabelValues("ok").Inc()
	return quotes, nil
}
