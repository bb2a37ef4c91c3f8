// coinbaser - read-only market-data CLI for the Coinbase Exchange API.
//
// Usage:
//
//	coinbaser currencies
//	coinbaser products
//	coinbaser book BTC-USD --level 2
//	coinbaser ticker BTC-USD
//	coinbaser trades BTC-USD
//	coinbaser candles BTC-USD --start 2024-01-01 --end 2024-01-31 --granularity 1h
//	coinbaser stats BTC-USD
//
// For detailed help on any command, use: coinbaser <command> --help
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/steveklabnik/coinbaser/internal/config"
	"github.com/steveklabnik/coinbaser/internal/logger"
	"github.com/steveklabnik/coinbaser/internal/market"
	"github.com/steveklabnik/coinbaser/internal/models"
	"github.com/steveklabnik/coinbaser/internal/transport"
)

const (
	Version    = "1.0.0"
	AppName    = "coinbaser"
	ConfigFile = "coinbaser.json"
)

// Exit codes following standard conventions
const (
	ExitSuccess      = 0
	ExitUsageError   = 1
	ExitConfigError  = 2
	ExitTransportErr = 3
	ExitDataError    = 4
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(ExitUsageError)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "--version", "-v":
		fmt.Printf("%s version %s\n", AppName, Version)
		return
	case "--help", "-h", "help":
		printUsage()
		return
	}

	cfg, err := config.Load(ConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitConfigError)
	}

	logManager, err := logger.NewManager(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set up logging: %v\n", err)
		os.Exit(ExitConfigError)
	}
	defer logManager.Close()
	log := logManager.Logger()

	baseURL := cfg.BaseURL
	if baseURL == "" && cfg.Sandbox {
		baseURL = market.SandboxBaseURL
	}

	client, err := market.New(market.Config{
		BaseURL:   baseURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout(),
		Logger:    log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitConfigError)
	}

	app := &cli{client: client}

	var runErr error
	switch command {
	case "currencies":
		runErr = app.handleCurrencies(ctx, args)
	case "products":
		runErr = app.handleProducts(ctx, args)
	case "book":
		runErr = app.handleBook(ctx, args)
	case "ticker":
		runErr = app.handleTicker(ctx, args)
	case "trades":
		runErr = app.handleTrades(ctx, args)
	case "candles":
		runErr = app.handleCandles(ctx, args)
	case "stats":
		runErr = app.handleStats(ctx, args)
	default:
		fmt.Fprintf(os.Stderr, "Error: Unknown command '%s'\n\n", command)
		printUsage()
		os.Exit(ExitUsageError)
	}

	if runErr != nil {
		log.Error("command failed", "command", command, "error", runErr)
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(exitCode(runErr))
	}
}

// exitCode maps the two-tier error taxonomy onto exit codes: transport
// failures are distinguishable from decode/validation failures.
func exitCode(err error) int {
	var (
		badURL    *transport.BadURLError
		badStatus *transport.BadStatusError
		ioErr     *transport.IOError
		internal  *transport.InternalError
	)
	if errors.As(err, &badURL) || errors.As(err, &badStatus) ||
		errors.As(err, &ioErr) || errors.As(err, &internal) {
		return ExitTransportErr
	}
	return ExitDataError
}

type cli struct {
	client *market.Client
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	Format string
	Help   bool
}

// parseArgs walks args, filling the common flags and returning positional
// arguments. extra handles command-specific flags and reports how many
// values it consumed past the flag itself.
func parseArgs(args []string, common *commonFlags, extra func(flag string, rest []string) (int, error)) ([]string, error) {
	var positional []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--format requires a value")
			}
			format := args[i+1]
			if format != "json" && format != "table" {
				return nil, fmt.Errorf("invalid format, must be: json or table")
			}
			common.Format = format
			i++
		case "--help", "-h":
			common.Help = true
		default:
			if strings.HasPrefix(args[i], "-") {
				if extra != nil {
					consumed, err := extra(args[i], args[i+1:])
					if err != nil {
						return nil, err
					}
					if consumed >= 0 {
						i += consumed
						continue
					}
				}
				return nil, fmt.Errorf("unknown flag: %s", args[i])
			}
			positional = append(positional, args[i])
		}
	}
	return positional, nil
}

func (c *cli) handleCurrencies(ctx context.Context, args []string) error {
	common := commonFlags{Format: "table"}
	if _, err := parseArgs(args, &common, nil); err != nil {
		return err
	}
	if common.Help {
		fmt.Printf("%s currencies - list the currencies known to the exchange\n", AppName)
		return nil
	}

	currencies, err := c.client.Currencies(ctx)
	if err != nil {
		return err
	}

	if common.Format == "json" {
		return outputJSON(currencies)
	}
	fmt.Printf("%-10s %-30s %s\n", "ID", "Name", "MinSize")
	for _, cur := range currencies {
		fmt.Printf("%-10s %-30s %s\n", cur.ID, cur.Name, cur.MinSize)
	}
	return nil
}

func (c *cli) handleProducts(ctx context.Context, args []string) error {
	common := commonFlags{Format: "table"}
	if _, err := parseArgs(args, &common, nil); err != nil {
		return err
	}
	if common.Help {
		fmt.Printf("%s products - list trading products, validated against the currency listing\n", AppName)
		return nil
	}

	// Products cannot be validated without the currency reference data.
	refs, err := c.client.ReferenceSet(ctx)
	if err != nil {
		return err
	}
	products, err := c.client.Products(ctx, refs)
	if err != nil {
		return err
	}

	if common.Format == "json" {
		type productRow struct {
			ID             string `json:"id"`
			Base           string `json:"base"`
			Quote          string `json:"quote"`
			BaseMinSize    string `json:"base_min_size"`
			BaseMaxSize    string `json:"base_max_size"`
			QuoteIncrement string `json:"quote_increment"`
		}
		rows := make([]productRow, 0, len(products))
		for _, p := range products {
			rows = append(rows, productRow{
				ID:             p.ID(),
				Base:           p.Base.ID,
				Quote:          p.Quote.ID,
				BaseMinSize:    p.BaseMinSize.String(),
				BaseMaxSize:    p.BaseMaxSize.String(),
				QuoteIncrement: p.QuoteIncrement.String(),
			})
		}
		return outputJSON(rows)
	}

	fmt.Printf("%-12s %-14s %-16s %s\n", "ID", "BaseMinSize", "BaseMaxSize", "QuoteIncrement")
	for _, p := range products {
		fmt.Printf("%-12s %-14s %-16s %s\n", p.ID(), p.BaseMinSize, p.BaseMaxSize, p.QuoteIncrement)
	}
	return nil
}

func (c *cli) handleBook(ctx context.Context, args []string) error {
	common := commonFlags{Format: "table"}
	level := 1
	positional, err := parseArgs(args, &common, func(flag string, rest []string) (int, error) {
		if flag == "--level" || flag == "-l" {
			if len(rest) == 0 {
				return 0, fmt.Errorf("--level requires a value")
			}
			parsed, err := strconv.Atoi(rest[0])
			if err != nil {
				return 0, fmt.Errorf("invalid level value: %w", err)
			}
			level = parsed
			return 1, nil
		}
		return -1, nil
	})
	if err != nil {
		return err
	}
	if common.Help {
		fmt.Printf("%s book <pair> --level 1|2|3 - fetch a product's order book\n", AppName)
		return nil
	}
	if len(positional) != 1 {
		return fmt.Errorf("book requires exactly one product id, e.g. BTC-USD")
	}

	book, err := c.client.OrderBook(ctx, positional[0], models.BookLevel(level))
	if err != nil {
		return err
	}

	if common.Format == "json" {
		return outputJSON(bookRows(book))
	}

	fmt.Printf("Sequence: %d\n\n", book.Sequence)
	printSide("Bids", book.Bids)
	fmt.Println()
	printSide("Asks", book.Asks)
	return nil
}

func bookRows(book models.OrderBook) map[string]interface{} {
	row := func(o models.Order) map[string]interface{} {
		r := map[string]interface{}{
			"price": o.Price.String(),
			"size":  o.Size.String(),
		}
		if count, ok := o.NumOrders(); ok {
			r["num_orders"] = count
		}
		if id, ok := o.OrderID(); ok {
			r["order_id"] = id.String()
		}
		return r
	}
	bids := make([]map[string]interface{}, 0, len(book.Bids))
	for _, o := range book.Bids {
		bids = append(bids, row(o))
	}
	asks := make([]map[string]interface{}, 0, len(book.Asks))
	for _, o := range book.Asks {
		asks = append(asks, row(o))
	}
	return map[string]interface{}{
		"sequence": book.Sequence,
		"bids":     bids,
		"asks":     asks,
	}
}

func printSide(name string, orders []models.Order) {
	fmt.Printf("%s:\n%-14s %-14s %s\n", name, "Price", "Size", "Orders")
	for _, o := range orders {
		detail := ""
		if count, ok := o.NumOrders(); ok {
			detail = strconv.FormatInt(count, 10)
		} else if id, ok := o.OrderID(); ok {
			detail = id.String()
		}
		fmt.Printf("%-14s %-14s %s\n", o.Price, o.Size, detail)
	}
}

func (c *cli) handleTicker(ctx context.Context, args []string) error {
	common := commonFlags{Format: "table"}
	positional, err := parseArgs(args, &common, nil)
	if err != nil {
		return err
	}
	if common.Help {
		fmt.Printf("%s ticker <pair> - fetch the last-trade snapshot for a product\n", AppName)
		return nil
	}
	if len(positional) != 1 {
		return fmt.Errorf("ticker requires exactly one product id, e.g. BTC-USD")
	}

	ticker, err := c.client.Ticker(ctx, positional[0])
	if err != nil {
		return err
	}

	if common.Format == "json" {
		return outputJSON(map[string]interface{}{
			"trade_id": ticker.TradeID,
			"price":    ticker.Price.String(),
			"size":     ticker.Size.String(),
			"time":     ticker.Time.Format(time.RFC3339),
		})
	}
	fmt.Println(ticker)
	return nil
}

func (c *cli) handleTrades(ctx context.Context, args []string) error {
	common := commonFlags{Format: "table"}
	positional, err := parseArgs(args, &common, nil)
	if err != nil {
		return err
	}
	if common.Help {
		fmt.Printf("%s trades <pair> - fetch the latest trades for a product\n", AppName)
		return nil
	}
	if len(positional) != 1 {
		return fmt.Errorf("trades requires exactly one product id, e.g. BTC-USD")
	}

	trades, err := c.client.Trades(ctx, positional[0])
	if err != nil {
		return err
	}

	if common.Format == "json" {
		rows := make([]map[string]interface{}, 0, len(trades))
		for _, t := range trades {
			rows = append(rows, map[string]interface{}{
				"trade_id": t.TradeID,
				"side":     t.Side.String(),
				"price":    t.Price.String(),
				"size":     t.Size.String(),
				"time":     t.Time.Format(time.RFC3339),
			})
		}
		return outputJSON(rows)
	}

	fmt.Printf("%-12s %-6s %-14s %-14s %s\n", "TradeID", "Side", "Price", "Size", "Time")
	for _, t := range trades {
		fmt.Printf("%-12d %-6s %-14s %-14s %s\n",
			t.TradeID, t.Side, t.Price, t.Size, t.Time.Format(time.RFC3339))
	}
	return nil
}

func (c *cli) handleCandles(ctx context.Context, args []string) error {
	common := commonFlags{Format: "table"}
	var query market.CandleQuery
	positional, err := parseArgs(args, &common, func(flag string, rest []string) (int, error) {
		switch flag {
		case "--start", "-s":
			if len(rest) == 0 {
				return 0, fmt.Errorf("--start requires a value")
			}
			start, err := time.Parse("2006-01-02", rest[0])
			if err != nil {
				return 0, fmt.Errorf("invalid start date format, use YYYY-MM-DD: %w", err)
			}
			query.Start = start
			return 1, nil
		case "--end", "-e":
			if len(rest) == 0 {
				return 0, fmt.Errorf("--end requires a value")
			}
			end, err := time.Parse("2006-01-02", rest[0])
			if err != nil {
				return 0, fmt.Errorf("invalid end date format, use YYYY-MM-DD: %w", err)
			}
			query.End = end
			return 1, nil
		case "--granularity", "-g":
			if len(rest) == 0 {
				return 0, fmt.Errorf("--granularity requires a value")
			}
			granularity, err := time.ParseDuration(rest[0])
			if err != nil {
				return 0, fmt.Errorf("invalid granularity, use a duration like 1m or 1h: %w", err)
			}
			query.Granularity = granularity
			return 1, nil
		}
		return -1, nil
	})
	if err != nil {
		return err
	}
	if common.Help {
		fmt.Printf("%s candles <pair> [--start YYYY-MM-DD] [--end YYYY-MM-DD] [--granularity 1h] - fetch historic rates\n", AppName)
		return nil
	}
	if len(positional) != 1 {
		return fmt.Errorf("candles requires exactly one product id, e.g. BTC-USD")
	}

	rates, err := c.client.Candles(ctx, positional[0], query)
	if err != nil {
		return err
	}

	if common.Format == "json" {
		rows := make([]map[string]interface{}, 0, len(rates))
		for _, r := range rates {
			rows = append(rows, map[string]interface{}{
				"time":   r.Time.Format(time.RFC3339),
				"low":    r.Low.String(),
				"high":   r.High.String(),
				"open":   r.Open.String(),
				"close":  r.Close.String(),
				"volume": r.Volume.String(),
			})
		}
		return outputJSON(rows)
	}

	fmt.Printf("%-22s %-12s %-12s %-12s %-12s %s\n", "Time", "Low", "High", "Open", "Close", "Volume")
	for _, r := range rates {
		fmt.Printf("%-22s %-12s %-12s %-12s %-12s %s\n",
			r.Time.Format(time.RFC3339), r.Low, r.High, r.Open, r.Close, r.Volume)
	}
	return nil
}

func (c *cli) handleStats(ctx context.Context, args []string) error {
	common := commonFlags{Format: "table"}
	positional, err := parseArgs(args, &common, nil)
	if err != nil {
		return err
	}
	if common.Help {
		fmt.Printf("%s stats <pair> - fetch 24-hour rolling stats for a product\n", AppName)
		return nil
	}
	if len(positional) != 1 {
		return fmt.Errorf("stats requires exactly one product id, e.g. BTC-USD")
	}

	stats, err := c.client.Stats(ctx, positional[0])
	if err != nil {
		return err
	}

	if common.Format == "json" {
		return outputJSON(map[string]string{
			"open":   stats.Open.String(),
			"high":   stats.High.String(),
			"low":    stats.Low.String(),
			"volume": stats.Volume.String(),
		})
	}
	fmt.Printf("Open:   %s\nHigh:   %s\nLow:    %s\nVolume: %s\n",
		stats.Open, stats.High, stats.Low, stats.Volume)
	return nil
}

func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printUsage() {
	fmt.Printf(`%s - Coinbase Exchange market-data CLI v%s

USAGE:
    %s <command> [options]

COMMANDS:
    currencies  List the currencies known to the exchange
    products    List trading products, validated against the currency listing
    book        Fetch a product's order book (--level 1|2|3)
    ticker      Fetch the last-trade snapshot for a product
    trades      Fetch the latest trades for a product
    candles     Fetch historic rates (--start, --end, --granularity)
    stats       Fetch 24-hour rolling stats for a product

GLOBAL OPTIONS:
    --format, -f   Output format: table, json (default: table)
    --help, -h     Show help information
    --version, -v  Show version information

EXAMPLES:
    %s currencies
    %s book BTC-USD --level 2
    %s candles BTC-USD --start 2024-01-01 --end 2024-01-31 --granularity 1h

CONFIGURATION:
    Configuration can be provided via:
    - Config file: %s (JSON format)
    - Environment variables: COINBASER_* (e.g., COINBASER_USER_AGENT)

    Example config file:
    {
        "user_agent": "my-trading-dashboard/2.1",
        "sandbox": false,
        "logging": {"level": "info"}
    }
`, AppName, Version, AppName, AppName, AppName, AppName, ConfigFile)
}
