// Package market provides the typed read-only client for the exchange's
// public market-data endpoints.
//
// Each method issues one blocking GET through the transport, decodes the
// payload into its wire shape and resolves it into the validated domain
// record. Product resolution needs reference data: callers fetch a
// ReferenceSet first and pass it in explicitly, which keeps resolution
// pure and lets a caller refresh stale reference data and re-resolve
// without re-fetching. The client holds no mutable state and is safe for
// concurrent use; parallel fetches are the caller's business.
package market

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/steveklabnik/coinbaser/internal/models"
	"github.com/steveklabnik/coinbaser/internal/transport"
)

const (
	// DefaultBaseURL is the production exchange host.
	DefaultBaseURL = "https://api.exchange.coinbase.com"
	// SandboxBaseURL is the public sandbox host.
	SandboxBaseURL = "https://api-public.sandbox.exchange.coinbase.com"

	currenciesEndpoint = "/currencies"
	productsEndpoint   = "/products"
)

// Config configures a Client. UserAgent is the only required field; the
// API rejects requests without a descriptive one.
type Config struct {
	// BaseURL overrides the production host. Empty means DefaultBaseURL.
	BaseURL string

	// UserAgent identifies the caller on every request. Required.
	UserAgent string

	// Timeout bounds each request. Zero means the transport default.
	Timeout time.Duration

	// HTTPClient optionally replaces the underlying HTTP client.
	HTTPClient *http.Client

	// Logger receives structured debug logs. Nil means slog.Default().
	Logger *slog.Logger
}

// Client fetches and validates market data.
type Client struct {
	transport *transport.Client
	baseURL   string
	logger    *slog.Logger
}

// New creates a market-data client.
func New(cfg Config) (*Client, error) {
	opts := []transport.Option{}
	if cfg.Timeout > 0 {
		opts = append(opts, transport.WithTimeout(cfg.Timeout))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, transport.WithHTTPClient(cfg.HTTPClient))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	opts = append(opts, transport.WithLogger(logger))

	tc, err := transport.New(cfg.UserAgent, opts...)
	if err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		transport: tc,
		baseURL:   baseURL,
		logger:    logger,
	}, nil
}

// Currencies fetches and validates the full currency listing.
func (c *Client) Currencies(ctx context.Context) ([]models.Currency, error) {
	body, err := c.transport.Get(ctx, c.baseURL+currenciesEndpoint)
	if err != nil {
		return nil, err
	}
	raw, err := models.DecodeCurrencies(body)
	if err != nil {
		return nil, err
	}
	currencies, err := models.ResolveCurrencies(raw)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fetched currencies", "count", len(currencies))
	return currencies, nil
}

// ReferenceSet fetches the currency listing and builds the lookup table
// product resolution depends on. Fetch this once per session before
// resolving products.
func (c *Client) ReferenceSet(ctx context.Context) (*models.ReferenceSet, error) {
	currencies, err := c.Currencies(ctx)
	if err != nil {
		return nil, err
	}
	return models.BuildReferenceSet(currencies), nil
}

// Products fetches the product listing and resolves every record against
// refs.
func (c *Client) Products(ctx context.Context, refs *models.ReferenceSet) ([]models.Product, error) {
	body, err := c.transport.Get(ctx, c.baseURL+productsEndpoint)
	if err != nil {
		return nil, err
	}
	raw, err := models.DecodeProducts(body)
	if err != nil {
		return nil, err
	}
	products, err := models.ResolveProducts(raw, refs)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fetched products", "count", len(products))
	return products, nil
}

// Product fetches a single product by its "BASE-QUOTE" id and resolves it
// against refs.
func (c *Client) Product(ctx context.Context, refs *models.ReferenceSet, id string) (models.Product, error) {
	body, err := c.transport.Get(ctx, c.productURL(id, ""))
	if err != nil {
		return models.Product{}, err
	}
	raw, err := models.DecodeProduct(body)
	if err != nil {
		return models.Product{}, err
	}
	return raw.Resolve(refs)
}

// OrderBook fetches a product's order book at the given verbosity level.
func (c *Client) OrderBook(ctx context.Context, id string, level models.BookLevel) (models.OrderBook, error) {
	if !level.Valid() {
		return models.OrderBook{}, fmt.Errorf("invalid book level %d: want 1, 2 or 3", level)
	}

	u := c.productURL(id, "book")
	params := url.Values{}
	params.Set("level", strconv.Itoa(int(level)))
	u += "?" + params.Encode()

	body, err := c.transport.Get(ctx, u)
	if err != nil {
		return models.OrderBook{}, err
	}
	raw, err := models.DecodeOrderBook(body)
	if err != nil {
		return models.OrderBook{}, err
	}
	book, err := raw.Resolve(level)
	if err != nil {
		return models.OrderBook{}, err
	}
	c.logger.Debug("fetched order book",
		"product", id,
		"level", int(level),
		"bids", len(book.Bids),
		"asks", len(book.Asks))
	return book, nil
}

// Ticker fetches the last-trade snapshot for a product.
func (c *Client) Ticker(ctx context.Context, id string) (models.Ticker, error) {
	body, err := c.transport.Get(ctx, c.productURL(id, "ticker"))
	if err != nil {
		return models.Ticker{}, err
	}
	raw, err := models.DecodeTicker(body)
	if err != nil {
		return models.Ticker{}, err
	}
	return raw.Resolve()
}

// Trades fetches the latest trades for a product, preserving the order
// the exchange returned them in.
func (c *Client) Trades(ctx context.Context, id string) ([]models.Trade, error) {
	body, err := c.transport.Get(ctx, c.productURL(id, "trades"))
	if err != nil {
		return nil, err
	}
	raw, err := models.DecodeTrades(body)
	if err != nil {
		return nil, err
	}
	return models.ResolveTrades(raw)
}

// CandleQuery narrows a Candles request. Zero values are omitted and the
// exchange applies its defaults.
type CandleQuery struct {
	// Start and End bound the requested window, inclusive of Start.
	Start time.Time
	End   time.Time

	// Granularity is the candle width. The exchange accepts one minute up
	// to one day.
	Granularity time.Duration
}

func (q CandleQuery) values() url.Values {
	params := url.Values{}
	if !q.Start.IsZero() {
		params.Set("start", q.Start.UTC().Format(time.RFC3339))
	}
	if !q.End.IsZero() {
		params.Set("end", q.End.UTC().Format(time.RFC3339))
	}
	if q.Granularity > 0 {
		params.Set("granularity", strconv.Itoa(int(q.Granularity/time.Second)))
	}
	return params
}

// Candles fetches historic rates for a product.
func (c *Client) Candles(ctx context.Context, id string, q CandleQuery) ([]models.HistoricRate, error) {
	u := c.productURL(id, "candles")
	if params := q.values(); len(params) > 0 {
		u += "?" + params.Encode()
	}

	body, err := c.transport.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	raw, err := models.DecodeRates(body)
	if err != nil {
		return nil, err
	}
	return models.ResolveRates(raw)
}

// Stats fetches the 24-hour rolling stats for a product.
func (c *Client) Stats(ctx context.Context, id string) (models.DayStat, error) {
	body, err := c.transport.Get(ctx, c.productURL(id, "stats"))
	if err != nil {
		return models.DayStat{}, err
	}
	raw, err := models.DecodeDayStat(body)
	if err != nil {
		return models.DayStat{}, err
	}
	return raw.Resolve()
}

// productURL builds baseURL/products/{id}[/suffix] with the id escaped.
func (c *Client) productURL(id, suffix string) string {
	u := c.baseURL + productsEndpoint + "/" + url.PathEscape(id)
	if suffix != "" {
		u += "/" + suffix
	}
	return u
}
